package brackets

import (
	"context"
	"fmt"

	"github.com/Dosada05/bracket-engine/models"
)

const (
	roundRobinMinParticipants = 3
	// Practical scheduling limit: beyond 20 the schedule length makes a
	// league phase unmanageable.
	roundRobinMaxParticipants = 20
)

type RoundRobinGenerator struct{}

func NewRoundRobinGenerator() Generator {
	return &RoundRobinGenerator{}
}

func (g *RoundRobinGenerator) Name() string {
	return "round_robin"
}

func (g *RoundRobinGenerator) SupportsThirdPlace() bool {
	return false
}

func (g *RoundRobinGenerator) Validate(_ *models.Tournament, _ *models.Stage, participantCount int) (bool, []error) {
	var errs []error
	if participantCount < roundRobinMinParticipants {
		errs = append(errs, fmt.Errorf("round robin requires at least %d participants, got %d", roundRobinMinParticipants, participantCount))
	}
	if participantCount > roundRobinMaxParticipants {
		errs = append(errs, fmt.Errorf("round robin supports at most %d participants, got %d", roundRobinMaxParticipants, participantCount))
	}
	return len(errs) == 0, errs
}

// Generate schedules all C(n,2) pairings with the circle method: the first
// entry stays fixed while the rest rotate around it each round, giving every
// participant at most one match per round. Odd fields get a ghost entry; the
// participant drawn against the ghost sits the round out and no bye match is
// emitted for it.
func (g *RoundRobinGenerator) Generate(_ context.Context, params GenerateParams) ([]*models.Match, error) {
	n := len(params.Participants)
	if ok, errs := g.Validate(params.Tournament, params.Stage, n); !ok {
		return nil, errs[0]
	}

	circle := make([]*models.Participant, n)
	copy(circle, params.Participants)
	if n%2 != 0 {
		circle = append(circle, nil) // ghost
	}
	size := len(circle)
	rounds := size - 1

	matches := make([]*models.Match, 0, n*(n-1)/2)

	for r := 1; r <= rounds; r++ {
		matchNumber := 0
		for i := 0; i < size/2; i++ {
			a, b := circle[i], circle[size-1-i]
			if a == nil || b == nil {
				continue
			}
			matchNumber++
			matches = append(matches, &models.Match{
				TournamentID: params.Tournament.ID,
				StageID:      params.Stage.ID,
				Round:        r,
				MatchNumber:  matchNumber,
				BracketType:  models.BracketMain,
				TeamA:        models.ResolvedSlot(a),
				TeamB:        models.ResolvedSlot(b),
				State:        models.MatchStatePending,
				Metadata:     map[string]any{"bracket_type": string(models.BracketMain)},
			})
		}

		// Rotate everyone but the anchor one position clockwise.
		last := circle[size-1]
		copy(circle[2:], circle[1:size-1])
		circle[1] = last
	}

	return matches, nil
}
