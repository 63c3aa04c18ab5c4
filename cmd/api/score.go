package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"goals-tracker-backend/internal/goals"
	"goals-tracker-backend/internal/scoring"
	"goals-tracker-backend/internal/tasks"
)

var scoreJSON bool

var scoreCmd = &cobra.Command{
	Use:   "score [snapshot.json]",
	Short: "Score a saved task snapshot offline",
	Long: `Score a snapshot of goals and tasks without a database.

The file holds {"goals": [...], "tasks": [...]} in the API's JSON shape.
Reads stdin when no file is given.

Examples:
  api score day.json
  cat day.json | api score --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		in := io.Reader(os.Stdin)
		if len(args) == 1 {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			in = f
		}
		return scoreSnapshot(in, cmd.OutOrStdout(), scoreJSON)
	},
}

func init() {
	scoreCmd.Flags().BoolVarP(&scoreJSON, "json", "j", false, "print the summary as JSON")
}

type snapshot struct {
	Goals []goals.Goal `json:"goals"`
	Tasks []tasks.Task `json:"tasks"`
}

func scoreSnapshot(in io.Reader, out io.Writer, asJSON bool) error {
	var snap snapshot
	if err := json.NewDecoder(in).Decode(&snap); err != nil {
		return fmt.Errorf("decode snapshot: %w", err)
	}

	s := scoring.Summarize(snap.Tasks, snap.Goals)

	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TASK\tDONE\tPOINTS\tBAND")
	for i, ts := range s.Tasks {
		t := snap.Tasks[i]
		fmt.Fprintf(tw, "%s\t%v\t%s\t%s\n", t.Text, t.IsCompleted, ts.Label, ts.Band)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(out, "\nTotal: %d (%d/%d completed)\n%s\n", s.Total, s.Completed, s.TaskCount, s.Message)
	return nil
}
