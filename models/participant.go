package models

// Participant is one competitor (player or team) in a stage. The position of
// a participant in the input list is its seed; there is no separate rank
// field.
type Participant struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}
