package ai

import (
	"encoding/json"
	"fmt"
	"strings"

	"goals-tracker-backend/internal/goals"
)

type promptGoal struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	TargetPhrase string `json:"targetPhrase"`
	Description  string `json:"description"`
}

// BuildUserPrompt renders the per-request instructions with the goal list.
func BuildUserPrompt(goalList []goals.Goal) string {
	pg := make([]promptGoal, 0, len(goalList))
	for _, g := range goalList {
		pg = append(pg, promptGoal{
			ID:           g.ID,
			Title:        g.Title,
			TargetPhrase: g.TargetPhrase,
			Description:  g.GeneralDescription,
		})
	}
	goalsJSON, _ := json.MarshalIndent(pg, "", "  ")

	var b strings.Builder

	b.WriteString("Analyze this handwritten journal page image.\n\n")
	b.WriteString("User Goals (JSON):\n")
	b.Write(goalsJSON)
	b.WriteString("\n\n")
	b.WriteString("1. Transcribe all handwritten text\n")
	b.WriteString("2. Identify which lines are tasks\n")
	b.WriteString("3. Detect checkbox completion for each task\n")
	b.WriteString("4. Match tasks to goals and assign relevance scores\n\n")
	b.WriteString("Return your analysis as JSON only.")

	return b.String()
}

func BuildPhrasesPrompt(title string) string {
	return fmt.Sprintf(phrasesPromptTemplate, strings.TrimSpace(title))
}

// SplitDataURL separates "data:<mime>;base64,<payload>" into its parts.
// Plain base64 is assumed to be JPEG.
func SplitDataURL(image string) (mimeType, data string) {
	const fallback = "image/jpeg"

	if !strings.HasPrefix(image, "data:") {
		return fallback, image
	}
	header, payload, ok := strings.Cut(strings.TrimPrefix(image, "data:"), ",")
	if !ok {
		return fallback, image
	}
	mt, enc, ok := strings.Cut(header, ";")
	if !ok || enc != "base64" || mt == "" {
		return fallback, image
	}
	return mt, payload
}
