package models

import "time"

// TournamentStatus mirrors the tournament life cycle ENUM used by the
// persistence layer.
type TournamentStatus string

const (
	StatusSoon         TournamentStatus = "soon"
	StatusRegistration TournamentStatus = "registration"
	StatusActive       TournamentStatus = "active"
	StatusCompleted    TournamentStatus = "completed"
	StatusCanceled     TournamentStatus = "canceled"
)

// Tournament is the immutable descriptor handed to the bracket engine.
// Format is only a fallback hint for format resolution; the stage type
// takes precedence.
type Tournament struct {
	ID        int              `json:"id"`
	Name      string           `json:"name"`
	GameSlug  string           `json:"game_slug"`
	Format    string           `json:"format,omitempty"`
	TeamSize  int              `json:"team_size,omitempty"`
	MaxTeams  int              `json:"max_teams,omitempty"`
	Status    TournamentStatus `json:"status,omitempty"`
	StartTime time.Time        `json:"start_time,omitempty"`
}
