package brackets

import (
	"context"
	"fmt"

	"github.com/Dosada05/bracket-engine/models"
)

const (
	singleElimMinParticipants = 2
	singleElimMaxParticipants = 256
)

type SingleEliminationGenerator struct{}

func NewSingleEliminationGenerator() Generator {
	return &SingleEliminationGenerator{}
}

func (g *SingleEliminationGenerator) Name() string {
	return "single_elim"
}

func (g *SingleEliminationGenerator) SupportsThirdPlace() bool {
	return true
}

func (g *SingleEliminationGenerator) Validate(_ *models.Tournament, _ *models.Stage, participantCount int) (bool, []error) {
	var errs []error
	if participantCount < singleElimMinParticipants {
		errs = append(errs, fmt.Errorf("single elimination requires at least %d participants, got %d", singleElimMinParticipants, participantCount))
	}
	if participantCount > singleElimMaxParticipants {
		errs = append(errs, fmt.Errorf("single elimination supports at most %d participants, got %d", singleElimMaxParticipants, participantCount))
	}
	return len(errs) == 0, errs
}

// Generate builds the elimination skeleton. Round 1 pairs consecutive seeded
// slots; a pair containing a bye produces no match record, the seeded
// participant simply advances (the total is therefore exactly n-1). Rounds
// after the first are all-TBD placeholders of halving size; upstream
// advancement logic fills them in as results arrive.
func (g *SingleEliminationGenerator) Generate(_ context.Context, params GenerateParams) ([]*models.Match, error) {
	n := len(params.Participants)
	if ok, errs := g.Validate(params.Tournament, params.Stage, n); !ok {
		return nil, errs[0]
	}

	slots := SeedWithByes(params.Participants)
	size := len(slots)
	rounds := roundsForBracketSize(size)
	hasByes := size > n

	matches := make([]*models.Match, 0, n)

	matchNumber := 0
	for i := 0; i < size; i += 2 {
		a, b := slots[i], slots[i+1]
		if a.IsBye() && b.IsBye() {
			// Cannot occur with the canonical seed table.
			continue
		}
		if a.IsBye() || b.IsBye() {
			// The live participant advances without playing.
			continue
		}
		matchNumber++
		matches = append(matches, g.newMatch(params, 1, matchNumber, a, b, hasByes))
	}

	for r := 2; r <= rounds; r++ {
		count := size >> r
		for m := 1; m <= count; m++ {
			matches = append(matches, g.newMatch(params, r, m, models.TBDSlot(), models.TBDSlot(), false))
		}
	}

	if rounds >= 2 && params.Stage.SingleElimConfig().ThirdPlaceMatch {
		third := g.newMatch(params, rounds+1, 1, models.TBDSlot(), models.TBDSlot(), false)
		third.Metadata["third_place"] = true
		matches = append(matches, third)
	}

	return matches, nil
}

func (g *SingleEliminationGenerator) newMatch(params GenerateParams, round, number int, a, b models.Slot, hasBye bool) *models.Match {
	metadata := map[string]any{"bracket_type": string(models.BracketMain)}
	if hasBye {
		metadata["has_bye"] = true
	}
	return &models.Match{
		TournamentID: params.Tournament.ID,
		StageID:      params.Stage.ID,
		Round:        round,
		MatchNumber:  number,
		BracketType:  models.BracketMain,
		TeamA:        a,
		TeamB:        b,
		State:        models.MatchStatePending,
		Metadata:     metadata,
	}
}
