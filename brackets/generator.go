package brackets

import (
	"context"

	"github.com/Dosada05/bracket-engine/models"
)

type GenerateParams struct {
	Tournament   *models.Tournament
	Stage        *models.Stage
	Participants []*models.Participant
}

// Generator turns an ordered participant list into the complete match
// topology for one stage. Implementations are pure: no I/O, no randomness,
// no state kept between calls, so a single instance is safe to share across
// goroutines.
type Generator interface {
	// Name returns the canonical registry key of the format, in
	// lowercase underscore form ("single_elim", "round_robin", ...).
	Name() string

	// Validate checks the participant count against the format bounds and
	// the stage config against the format's requirements. It returns false
	// together with every problem found; the orchestrator never calls
	// Generate after a failed validation.
	Validate(tournament *models.Tournament, stage *models.Stage, participantCount int) (bool, []error)

	// Generate produces the full match list for the stage. The input list
	// order is the seed order. Matches are returned in (round, match
	// number) order and are owned by the caller afterwards.
	Generate(ctx context.Context, params GenerateParams) ([]*models.Match, error)

	// SupportsThirdPlace reports whether the format can emit a third place
	// match.
	SupportsThirdPlace() bool
}
