package models

type MatchState string

const (
	MatchStatePending    MatchState = "pending"
	MatchStateInProgress MatchState = "in_progress"
	MatchStateCompleted  MatchState = "completed"
	MatchStateCanceled   MatchState = "canceled"
)

// BracketType tags the bracket segment a match belongs to.
type BracketType string

const (
	BracketMain             BracketType = "main"
	BracketWinners          BracketType = "winners"
	BracketLosers           BracketType = "losers"
	BracketGrandFinals      BracketType = "grand_finals"
	BracketGrandFinalsReset BracketType = "grand_finals_reset"
)

// SlotKind distinguishes the three states a match side can be in. Keeping
// this explicit (instead of a nullable id plus a "BYE"/"TBD" display string)
// removes the "is it unset or is it a bye" ambiguity.
type SlotKind string

const (
	SlotResolved SlotKind = "resolved"
	SlotTBD      SlotKind = "tbd"
	SlotBye      SlotKind = "bye"
)

const (
	tbdDisplayName = "TBD"
	byeDisplayName = "BYE"
)

// Slot is one side of a match: a bound participant, a to-be-determined slot
// awaiting upstream advancement, or a bye.
type Slot struct {
	Kind          SlotKind `json:"kind"`
	ParticipantID *int     `json:"participant_id,omitempty"`
	Name          string   `json:"name"`
}

func ResolvedSlot(p *Participant) Slot {
	id := p.ID
	return Slot{Kind: SlotResolved, ParticipantID: &id, Name: p.Name}
}

func TBDSlot() Slot {
	return Slot{Kind: SlotTBD, Name: tbdDisplayName}
}

func ByeSlot() Slot {
	return Slot{Kind: SlotBye, Name: byeDisplayName}
}

func (s Slot) IsResolved() bool { return s.Kind == SlotResolved }
func (s Slot) IsBye() bool      { return s.Kind == SlotBye }

// Match is a single generated match record. ID stays nil until the caller
// persists the record; round numbers are 1-based and monotonic within a
// bracket segment, match numbers are a contiguous 1-based sequence within a
// round. Metadata carries generator provenance (bracket_type, has_bye,
// is_conditional, ...).
type Match struct {
	ID           *int           `json:"id,omitempty"`
	TournamentID int            `json:"tournament_id"`
	StageID      int            `json:"stage_id"`
	Round        int            `json:"round_number"`
	MatchNumber  int            `json:"match_number"`
	BracketType  BracketType    `json:"bracket_type"`
	TeamA        Slot           `json:"team_a"`
	TeamB        Slot           `json:"team_b"`
	State        MatchState     `json:"state"`
	Metadata     map[string]any `json:"metadata,omitempty"`
}
