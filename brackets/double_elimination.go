package brackets

import (
	"context"
	"fmt"

	"github.com/Dosada05/bracket-engine/models"
)

const (
	doubleElimMinParticipants = 4
	doubleElimMaxParticipants = 128

	grandFinalsResetCondition = "only played if the losers-bracket champion wins the first grand-finals match"
)

type DoubleEliminationGenerator struct{}

func NewDoubleEliminationGenerator() Generator {
	return &DoubleEliminationGenerator{}
}

func (g *DoubleEliminationGenerator) Name() string {
	return "double_elim"
}

func (g *DoubleEliminationGenerator) SupportsThirdPlace() bool {
	// Third place is decided by the losers bracket itself.
	return false
}

func (g *DoubleEliminationGenerator) Validate(_ *models.Tournament, _ *models.Stage, participantCount int) (bool, []error) {
	var errs []error
	if participantCount < doubleElimMinParticipants {
		errs = append(errs, fmt.Errorf("double elimination requires at least %d participants, got %d", doubleElimMinParticipants, participantCount))
	}
	if participantCount > doubleElimMaxParticipants {
		errs = append(errs, fmt.Errorf("double elimination supports at most %d participants, got %d", doubleElimMaxParticipants, participantCount))
	}
	return len(errs) == 0, errs
}

// Generate emits four segments: the winners bracket (a full
// NextPowerOfTwo(n)-1 match skeleton, byes included), the losers bracket,
// the grand finals, and the conditional grand finals reset.
func (g *DoubleEliminationGenerator) Generate(_ context.Context, params GenerateParams) ([]*models.Match, error) {
	n := len(params.Participants)
	if ok, errs := g.Validate(params.Tournament, params.Stage, n); !ok {
		return nil, errs[0]
	}

	slots := SeedWithByes(params.Participants)
	size := len(slots)
	wbRounds := roundsForBracketSize(size)

	matches := make([]*models.Match, 0, 2*size)

	// Winners bracket. Unlike single elimination, round-1 bye pairs are
	// emitted here (one live slot against an explicit bye) so the segment
	// always holds the full size-1 matches.
	for i := 0; i < size; i += 2 {
		m := g.newMatch(params, models.BracketWinners, 1, i/2+1, slots[i], slots[i+1])
		if slots[i].IsBye() || slots[i+1].IsBye() {
			m.Metadata["has_bye"] = true
		}
		matches = append(matches, m)
	}
	for r := 2; r <= wbRounds; r++ {
		count := size >> r
		for i := 1; i <= count; i++ {
			matches = append(matches, g.newMatch(params, models.BracketWinners, r, i, models.TBDSlot(), models.TBDSlot()))
		}
	}

	// Losers bracket. Two winners-round-1 losers feed one losers-round-1
	// match, so round 1 holds n/4 matches. After that the count holds
	// through the round in which the next wave of winners-bracket droppers
	// enters and halves once that round is done (2,2,1,1 for an 8 bracket).
	lbRounds := 2 * (wbRounds - 1)
	count := size / 4
	for r := 1; r <= lbRounds; r++ {
		inRound := count
		if r == 1 {
			inRound = n / 4
			if inRound < 1 {
				inRound = 1
			}
		}
		for i := 1; i <= inRound; i++ {
			matches = append(matches, g.newMatch(params, models.BracketLosers, r, i, models.TBDSlot(), models.TBDSlot()))
		}
		if r%2 == 0 && count > 1 {
			count /= 2
		}
	}

	// Grand finals: winners-bracket champion against losers-bracket
	// champion, both unresolved until the brackets play out.
	matches = append(matches, g.newMatch(params, models.BracketGrandFinals, wbRounds+1, 1, models.TBDSlot(), models.TBDSlot()))

	if params.Stage.DoubleElimConfig().GrandFinalsReset {
		reset := g.newMatch(params, models.BracketGrandFinalsReset, wbRounds+2, 1, models.TBDSlot(), models.TBDSlot())
		reset.Metadata["is_conditional"] = true
		reset.Metadata["condition"] = grandFinalsResetCondition
		matches = append(matches, reset)
	}

	return matches, nil
}

func (g *DoubleEliminationGenerator) newMatch(params GenerateParams, bracket models.BracketType, round, number int, a, b models.Slot) *models.Match {
	return &models.Match{
		TournamentID: params.Tournament.ID,
		StageID:      params.Stage.ID,
		Round:        round,
		MatchNumber:  number,
		BracketType:  bracket,
		TeamA:        a,
		TeamB:        b,
		State:        models.MatchStatePending,
		Metadata:     map[string]any{"bracket_type": string(bracket)},
	}
}
