package brackets

import (
	"context"
	"fmt"
	"sort"

	"github.com/Dosada05/bracket-engine/models"
)

const (
	swissMinParticipants = 4
	swissMaxParticipants = 64
)

// Standing is the per-participant snapshot the caller supplies when pairing
// rounds after the first. HadBye marks participants that already received a
// bye in an earlier round.
type Standing struct {
	ParticipantID int     `json:"participant_id"`
	Name          string  `json:"name"`
	Wins          int     `json:"wins"`
	Points        float64 `json:"points"`
	HadBye        bool    `json:"had_bye,omitempty"`
}

// Pairing records that two participants have already met.
type Pairing struct {
	A int `json:"a"`
	B int `json:"b"`
}

type SwissSystemGenerator struct{}

func NewSwissSystemGenerator() Generator {
	return &SwissSystemGenerator{}
}

func (g *SwissSystemGenerator) Name() string {
	return "swiss"
}

func (g *SwissSystemGenerator) SupportsThirdPlace() bool {
	return false
}

func (g *SwissSystemGenerator) Validate(_ *models.Tournament, stage *models.Stage, participantCount int) (bool, []error) {
	var errs []error
	if participantCount < swissMinParticipants {
		errs = append(errs, fmt.Errorf("swiss system requires at least %d participants, got %d", swissMinParticipants, participantCount))
	}
	if participantCount > swissMaxParticipants {
		errs = append(errs, fmt.Errorf("swiss system supports at most %d participants, got %d", swissMaxParticipants, participantCount))
	}
	if _, err := stage.SwissConfig(); err != nil {
		errs = append(errs, err)
	}
	return len(errs) == 0, errs
}

// Generate computes round 1 only: the seeded order is folded in half and
// seed i plays seed i+ceil(n/2). With an odd field the last top-half seed
// receives an explicit bye match. Rounds after the first depend on results
// and are paired with PairNextRound once the caller has standings.
func (g *SwissSystemGenerator) Generate(_ context.Context, params GenerateParams) ([]*models.Match, error) {
	n := len(params.Participants)
	if ok, errs := g.Validate(params.Tournament, params.Stage, n); !ok {
		return nil, errs[0]
	}

	half := (n + 1) / 2
	matches := make([]*models.Match, 0, half)

	matchNumber := 0
	for i := 0; i+half < n; i++ {
		matchNumber++
		matches = append(matches, g.newMatch(params.Tournament, params.Stage, 1, matchNumber,
			models.ResolvedSlot(params.Participants[i]),
			models.ResolvedSlot(params.Participants[i+half])))
	}

	if n%2 != 0 {
		matchNumber++
		bye := g.newMatch(params.Tournament, params.Stage, 1, matchNumber,
			models.ResolvedSlot(params.Participants[half-1]), models.ByeSlot())
		bye.Metadata["has_bye"] = true
		matches = append(matches, bye)
	}

	return matches, nil
}

// PairNextRound pairs one subsequent round from a standings snapshot.
// Participants are sorted by wins then points, bucketed by win count, and
// paired inside each bucket avoiding every prior pairing; participants a
// bucket cannot place float down into the next one. With an odd field the
// lowest-standing participant without a prior bye receives the bye. Only
// when no rematch-free pairing exists at all does the pairing fall back to
// sequential order, and such matches carry rematch metadata.
func (g *SwissSystemGenerator) PairNextRound(tournament *models.Tournament, stage *models.Stage, round int, standings []Standing, prior []Pairing) ([]*models.Match, error) {
	if round < 2 {
		return nil, fmt.Errorf("PairNextRound pairs rounds 2 and later, got round %d", round)
	}
	if len(standings) < 2 {
		return nil, fmt.Errorf("not enough participants in standings to pair round %d (got %d)", round, len(standings))
	}

	played := make(map[Pairing]bool, len(prior))
	for _, p := range prior {
		played[Pairing{A: p.A, B: p.B}] = true
		played[Pairing{A: p.B, B: p.A}] = true
	}

	ranked := make([]Standing, len(standings))
	copy(ranked, standings)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Wins != ranked[j].Wins {
			return ranked[i].Wins > ranked[j].Wins
		}
		return ranked[i].Points > ranked[j].Points
	})

	var byeRecipient *Standing
	if len(ranked)%2 != 0 {
		idx := byeIndex(ranked)
		recipient := ranked[idx]
		byeRecipient = &recipient
		ranked = append(ranked[:idx:idx], ranked[idx+1:]...)
	}

	pairs, ok := pairBuckets(ranked, played)
	if !ok {
		// No rematch-free perfect matching exists; pair the ranked order
		// sequentially and let the rematches stand.
		pairs = pairs[:0]
		for i := 0; i+1 < len(ranked); i += 2 {
			pairs = append(pairs, [2]Standing{ranked[i], ranked[i+1]})
		}
	}

	matches := make([]*models.Match, 0, len(pairs)+1)
	for i, pair := range pairs {
		m := g.newMatch(tournament, stage, round, i+1,
			standingSlot(pair[0]), standingSlot(pair[1]))
		if played[Pairing{A: pair[0].ParticipantID, B: pair[1].ParticipantID}] {
			m.Metadata["rematch"] = true
		}
		matches = append(matches, m)
	}

	if byeRecipient != nil {
		bye := g.newMatch(tournament, stage, round, len(pairs)+1,
			standingSlot(*byeRecipient), models.ByeSlot())
		bye.Metadata["has_bye"] = true
		matches = append(matches, bye)
	}

	return matches, nil
}

// byeIndex picks the lowest-ranked participant that has not had a bye yet,
// falling back to the very last one when everyone has.
func byeIndex(ranked []Standing) int {
	for i := len(ranked) - 1; i >= 0; i-- {
		if !ranked[i].HadBye {
			return i
		}
	}
	return len(ranked) - 1
}

// pairBuckets walks the win-count buckets from the top down. Each bucket is
// paired together with the floaters carried from the bucket above; an odd
// pool floats its lowest member down. Within a pool a backtracking search
// finds a rematch-free perfect matching if one exists.
func pairBuckets(ranked []Standing, played map[Pairing]bool) ([][2]Standing, bool) {
	var pairs [][2]Standing
	var carry []Standing

	i := 0
	for i < len(ranked) {
		j := i
		for j < len(ranked) && ranked[j].Wins == ranked[i].Wins {
			j++
		}
		pool := append(append([]Standing{}, carry...), ranked[i:j]...)
		carry = nil

		if len(pool)%2 != 0 {
			// Float the lowest member down to the next bucket. On the last
			// bucket the pool is always even because the caller removed the
			// bye recipient up front.
			carry = []Standing{pool[len(pool)-1]}
			pool = pool[:len(pool)-1]
		}

		poolPairs, ok := matchPool(pool, played)
		if !ok {
			// Let the whole pool float down and retry merged with the next
			// bucket; on the last bucket this is a hard failure.
			if j >= len(ranked) {
				return nil, false
			}
			carry = append(pool, carry...)
			i = j
			continue
		}
		pairs = append(pairs, poolPairs...)
		i = j
	}

	if len(carry) > 0 {
		// Leftover floaters with no bucket below; pair them among
		// themselves or give up.
		tailPairs, ok := matchPool(carry, played)
		if !ok {
			return nil, false
		}
		pairs = append(pairs, tailPairs...)
	}

	return pairs, true
}

// matchPool finds a rematch-free perfect matching of the pool by
// backtracking, preferring pairings close to the ranked order. Pools are
// bounded by the 64-participant cap, so the search stays small in practice.
func matchPool(pool []Standing, played map[Pairing]bool) ([][2]Standing, bool) {
	if len(pool) == 0 {
		return nil, true
	}
	if len(pool)%2 != 0 {
		return nil, false
	}
	first := pool[0]
	for k := 1; k < len(pool); k++ {
		if played[Pairing{A: first.ParticipantID, B: pool[k].ParticipantID}] {
			continue
		}
		rest := make([]Standing, 0, len(pool)-2)
		rest = append(rest, pool[1:k]...)
		rest = append(rest, pool[k+1:]...)
		restPairs, ok := matchPool(rest, played)
		if !ok {
			continue
		}
		return append([][2]Standing{{first, pool[k]}}, restPairs...), true
	}
	return nil, false
}

func standingSlot(s Standing) models.Slot {
	return models.ResolvedSlot(&models.Participant{ID: s.ParticipantID, Name: s.Name})
}

func (g *SwissSystemGenerator) newMatch(tournament *models.Tournament, stage *models.Stage, round, number int, a, b models.Slot) *models.Match {
	return &models.Match{
		TournamentID: tournament.ID,
		StageID:      stage.ID,
		Round:        round,
		MatchNumber:  number,
		BracketType:  models.BracketMain,
		TeamA:        a,
		TeamB:        b,
		State:        models.MatchStatePending,
		Metadata:     map[string]any{"bracket_type": string(models.BracketMain)},
	}
}
