package brackets

import (
	"context"
	"testing"

	"github.com/Dosada05/bracket-engine/models"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func singleElimParams(n int, config map[string]any) GenerateParams {
	return GenerateParams{
		Tournament:   &models.Tournament{ID: 1, Name: "Test Cup"},
		Stage:        &models.Stage{ID: 10, Name: "Playoffs", Type: "single_elim", Order: 1, Config: config},
		Participants: testParticipants(n),
	}
}

func matchesByRound(matches []*models.Match) map[int][]*models.Match {
	byRound := make(map[int][]*models.Match)
	for _, m := range matches {
		byRound[m.Round] = append(byRound[m.Round], m)
	}
	return byRound
}

func assertContiguousNumbering(t *testing.T, matches []*models.Match) {
	t.Helper()
	type roundKey struct {
		bracket models.BracketType
		round   int
	}
	counts := make(map[roundKey]int)
	for _, m := range matches {
		key := roundKey{m.BracketType, m.Round}
		counts[key]++
		assert.Equal(t, counts[key], m.MatchNumber,
			"bracket %s round %d: match numbers must be contiguous from 1", m.BracketType, m.Round)
	}
}

func TestSingleElimination_FourParticipants(t *testing.T) {
	g := NewSingleEliminationGenerator()
	matches, err := g.Generate(context.Background(), singleElimParams(4, nil))
	require.NoError(t, err)
	require.Len(t, matches, 3)

	byRound := matchesByRound(matches)
	require.Len(t, byRound[1], 2)
	require.Len(t, byRound[2], 1)

	for _, m := range byRound[1] {
		assert.True(t, m.TeamA.IsResolved())
		assert.True(t, m.TeamB.IsResolved())
		assert.Equal(t, models.BracketMain, m.BracketType)
		assert.Equal(t, models.MatchStatePending, m.State)
	}
	final := byRound[2][0]
	assert.Equal(t, models.SlotTBD, final.TeamA.Kind)
	assert.Equal(t, "TBD", final.TeamA.Name)
	assert.Equal(t, models.SlotTBD, final.TeamB.Kind)
}

func TestSingleElimination_TotalMatches(t *testing.T) {
	g := NewSingleEliminationGenerator()
	for n := 2; n <= 64; n++ {
		matches, err := g.Generate(context.Background(), singleElimParams(n, nil))
		require.NoError(t, err, "n=%d", n)
		assert.Len(t, matches, n-1, "n=%d: total must be n-1 without a third place match", n)
		assertContiguousNumbering(t, matches)

		for _, m := range matches {
			assert.False(t, m.TeamA.IsBye(), "n=%d: single elimination emits no bye matches", n)
			assert.False(t, m.TeamB.IsBye(), "n=%d: single elimination emits no bye matches", n)
			assert.Nil(t, m.ID, "ids are assigned on persistence, not by the generator")
		}
	}
}

func TestSingleElimination_ByesReduceRoundOne(t *testing.T) {
	g := NewSingleEliminationGenerator()
	matches, err := g.Generate(context.Background(), singleElimParams(6, nil))
	require.NoError(t, err)
	require.Len(t, matches, 5)

	byRound := matchesByRound(matches)
	// Bracket of 8 with 2 byes: seeds 1 and 2 sit out round 1.
	require.Len(t, byRound[1], 2)
	require.Len(t, byRound[2], 2)
	require.Len(t, byRound[3], 1)
	for _, m := range byRound[1] {
		assert.True(t, m.TeamA.IsResolved())
		assert.True(t, m.TeamB.IsResolved())
		assert.Equal(t, true, m.Metadata["has_bye"])
	}
}

func TestSingleElimination_ThirdPlaceMatch(t *testing.T) {
	g := NewSingleEliminationGenerator()
	require.True(t, g.SupportsThirdPlace())

	matches, err := g.Generate(context.Background(), singleElimParams(8, map[string]any{"third_place_match": true}))
	require.NoError(t, err)
	require.Len(t, matches, 8, "n participants with a third place match yields n matches")

	third := matches[len(matches)-1]
	assert.Equal(t, 4, third.Round, "third place match sits one round past the final")
	assert.Equal(t, 1, third.MatchNumber)
	assert.Equal(t, true, third.Metadata["third_place"])
	assert.Equal(t, models.SlotTBD, third.TeamA.Kind)
	assert.Equal(t, models.SlotTBD, third.TeamB.Kind)
}

func TestSingleElimination_NoThirdPlaceForTwo(t *testing.T) {
	g := NewSingleEliminationGenerator()
	matches, err := g.Generate(context.Background(), singleElimParams(2, map[string]any{"third_place_match": true}))
	require.NoError(t, err)
	assert.Len(t, matches, 1, "a two-participant bracket has no semifinal losers to rank")
}

func TestSingleElimination_ValidateBounds(t *testing.T) {
	g := NewSingleEliminationGenerator()
	tournament := &models.Tournament{ID: 1}
	stage := &models.Stage{ID: 10}

	ok, errs := g.Validate(tournament, stage, 1)
	assert.False(t, ok)
	assert.NotEmpty(t, errs)

	ok, errs = g.Validate(tournament, stage, 257)
	assert.False(t, ok)
	assert.NotEmpty(t, errs)

	ok, errs = g.Validate(tournament, stage, 2)
	assert.True(t, ok)
	assert.Empty(t, errs)
	ok, _ = g.Validate(tournament, stage, 256)
	assert.True(t, ok)
}

func TestSingleElimination_Idempotent(t *testing.T) {
	g := NewSingleEliminationGenerator()
	params := singleElimParams(13, map[string]any{"third_place_match": true})

	first, err := g.Generate(context.Background(), params)
	require.NoError(t, err)
	second, err := g.Generate(context.Background(), params)
	require.NoError(t, err)

	assert.Empty(t, cmp.Diff(first, second), "identical input must produce structurally identical output")
}
