package bracket

import "math/rand/v2"

// Shuffler permutes items in place. It runs once on the initial list and
// again on the survivors of every round.
type Shuffler func(items []Item)

// RandShuffler shuffles with r. Pass a seeded source for reproducible
// brackets.
func RandShuffler(r *rand.Rand) Shuffler {
	return func(items []Item) {
		r.Shuffle(len(items), func(i, j int) {
			items[i], items[j] = items[j], items[i]
		})
	}
}

// DefaultShuffler uses the global random source.
func DefaultShuffler() Shuffler {
	return func(items []Item) {
		rand.Shuffle(len(items), func(i, j int) {
			items[i], items[j] = items[j], items[i]
		})
	}
}

// Identity leaves the order untouched.
func Identity(items []Item) {}
