package goals

import "time"

// Goal is a user-defined target behaviour that journal tasks are scored against.
// TargetPhrase is matched as a single literal needle; commas inside it are not separators.
type Goal struct {
	ID                 string    `json:"id"`
	Title              string    `json:"title"`
	TargetPhrase       string    `json:"targetPhrase"`
	GeneralDescription string    `json:"generalDescription"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// Find returns the goal with the given id. Unknown ids are not an error.
func Find(list []Goal, id string) (Goal, bool) {
	for _, g := range list {
		if g.ID == id {
			return g, true
		}
	}
	return Goal{}, false
}
