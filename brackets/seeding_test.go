package brackets

import (
	"fmt"
	"testing"

	"github.com/Dosada05/bracket-engine/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testParticipants(n int) []*models.Participant {
	participants := make([]*models.Participant, n)
	for i := 0; i < n; i++ {
		participants[i] = &models.Participant{ID: i + 1, Name: fmt.Sprintf("Team %d", i+1)}
	}
	return participants
}

func TestNextPowerOfTwo(t *testing.T) {
	for n := 1; n <= 256; n++ {
		p := NextPowerOfTwo(n)
		assert.GreaterOrEqual(t, p, n, "n=%d", n)
		assert.Zero(t, p&(p-1), "n=%d: %d is not a power of two", n, p)
		if p > 1 {
			assert.Less(t, p/2, n, "n=%d: %d is not the smallest power of two", n, p)
		}
	}

	assert.Equal(t, 1, NextPowerOfTwo(1))
	assert.Equal(t, 8, NextPowerOfTwo(5))
	assert.Equal(t, 8, NextPowerOfTwo(8))
	assert.Equal(t, 16, NextPowerOfTwo(9))
}

func TestByeCount(t *testing.T) {
	for _, n := range []int{2, 4, 8, 16, 32, 64, 128, 256} {
		assert.Zero(t, ByeCount(n), "power of two n=%d", n)
	}
	for n := 2; n <= 256; n++ {
		byes := ByeCount(n)
		assert.GreaterOrEqual(t, byes, 0, "n=%d", n)
		assert.LessOrEqual(t, byes, n-1, "n=%d", n)
	}
	assert.Equal(t, 3, ByeCount(5))
	assert.Equal(t, 2, ByeCount(6))
}

func TestSeedWithByes(t *testing.T) {
	for n := 2; n <= 64; n++ {
		participants := testParticipants(n)
		slots := SeedWithByes(participants)

		size := NextPowerOfTwo(n)
		require.Len(t, slots, size, "n=%d", n)

		byes := 0
		seen := make(map[int]bool)
		for _, slot := range slots {
			if slot.IsBye() {
				byes++
				continue
			}
			require.True(t, slot.IsResolved(), "n=%d: slot must be resolved or bye", n)
			require.NotNil(t, slot.ParticipantID)
			assert.False(t, seen[*slot.ParticipantID], "n=%d: participant %d placed twice", n, *slot.ParticipantID)
			seen[*slot.ParticipantID] = true
		}
		assert.Equal(t, ByeCount(n), byes, "n=%d", n)
		assert.Len(t, seen, n, "n=%d", n)

		// Byes go to the top seeds, and never face each other.
		for i := 0; i < size; i += 2 {
			a, b := slots[i], slots[i+1]
			require.False(t, a.IsBye() && b.IsBye(), "n=%d: two byes paired at slot %d", n, i)
			if a.IsBye() || b.IsBye() {
				live := a
				if a.IsBye() {
					live = b
				}
				assert.LessOrEqual(t, *live.ParticipantID, ByeCount(n),
					"n=%d: bye awarded to seed %d instead of a top seed", n, *live.ParticipantID)
			}
		}
	}
}

func TestSeedWithByes_TopSeedsInOppositeHalves(t *testing.T) {
	for _, n := range []int{4, 8, 11, 16, 23, 32} {
		slots := SeedWithByes(testParticipants(n))

		half := len(slots) / 2
		seedHalf := func(id int) int {
			for i, slot := range slots {
				if slot.IsResolved() && *slot.ParticipantID == id {
					return i / half
				}
			}
			t.Fatalf("n=%d: seed %d not placed", n, id)
			return -1
		}
		assert.NotEqual(t, seedHalf(1), seedHalf(2),
			"n=%d: seeds 1 and 2 must not be able to meet before the final", n)
	}
}

func TestBracketSeedOrder(t *testing.T) {
	assert.Equal(t, []int{1, 2}, bracketSeedOrder(2))
	assert.Equal(t, []int{1, 4, 2, 3}, bracketSeedOrder(4))
	assert.Equal(t, []int{1, 8, 4, 5, 2, 7, 3, 6}, bracketSeedOrder(8))

	// Every round-1 pair sums to size+1.
	for _, size := range []int{2, 4, 8, 16, 32, 64} {
		order := bracketSeedOrder(size)
		require.Len(t, order, size)
		for i := 0; i < size; i += 2 {
			assert.Equal(t, size+1, order[i]+order[i+1], "size=%d pair %d", size, i/2)
		}
	}
}
