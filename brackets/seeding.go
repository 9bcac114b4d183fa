package brackets

import "github.com/Dosada05/bracket-engine/models"

// NextPowerOfTwo returns the smallest power of two >= n, for n >= 1.
func NextPowerOfTwo(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

// ByeCount returns the number of phantom slots needed to fill a bracket of
// size NextPowerOfTwo(n).
func ByeCount(n int) int {
	return NextPowerOfTwo(n) - n
}

// bracketSeedOrder builds the canonical seed placement table for a bracket
// of the given size (a power of two). Each doubling step mirrors the
// previous order, pairing seed s with 2*len+1-s:
//
//	[1] -> [1 2] -> [1 4 2 3] -> [1 8 4 5 2 7 3 6] -> ...
//
// Every round-1 pair sums to size+1, which keeps seed 1 and seed 2 in
// opposite halves and guarantees at most one seed of any pair exceeds the
// real participant count.
func bracketSeedOrder(size int) []int {
	order := []int{1}
	for len(order) < size {
		mirror := len(order)*2 + 1
		next := make([]int, 0, len(order)*2)
		for _, s := range order {
			next = append(next, s, mirror-s)
		}
		order = next
	}
	return order
}

// SeedWithByes places the participants into a slot list of length
// NextPowerOfTwo(n) per the canonical seeded placement table. Seeds beyond
// the participant count become bye slots, so top seeds are matched against
// byes first and two byes are never paired against each other.
func SeedWithByes(participants []*models.Participant) []models.Slot {
	size := NextPowerOfTwo(len(participants))
	slots := make([]models.Slot, size)
	for i, seed := range bracketSeedOrder(size) {
		if seed <= len(participants) {
			slots[i] = models.ResolvedSlot(participants[seed-1])
		} else {
			slots[i] = models.ByeSlot()
		}
	}
	return slots
}

// log2 of a power of two.
func roundsForBracketSize(size int) int {
	rounds := 0
	for size > 1 {
		size >>= 1
		rounds++
	}
	return rounds
}
