// Package history remembers which words have been played so the next pick
// avoids them until the whole bank has been used.
package history

import (
	"errors"
	"math/rand"

	"wordguess-go/internal/wordbank"
)

var ErrEmptyBank = errors.New("history: no words to pick from")

// Tracker records word identities in play order. Within a cycle no identity
// appears twice; once every word has been played the cycle starts over.
type Tracker struct {
	played []string
	seen   map[string]bool
	rng    *rand.Rand
}

// New returns an empty Tracker. A nil rng falls back to a time-seeded source.
func New(rng *rand.Rand) *Tracker {
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}
	return &Tracker{seen: make(map[string]bool), rng: rng}
}

// PickNext chooses uniformly among entries not yet played this cycle and
// records the choice.
func (t *Tracker) PickNext(all []wordbank.WordEntry) (wordbank.WordEntry, error) {
	if len(all) == 0 {
		return wordbank.WordEntry{}, ErrEmptyBank
	}

	eligible := make([]wordbank.WordEntry, 0, len(all))
	for _, e := range all {
		if !t.seen[e.Key()] {
			eligible = append(eligible, e)
		}
	}
	if len(eligible) == 0 {
		t.Reset()
		eligible = all
	}

	chosen := eligible[t.rng.Intn(len(eligible))]
	t.played = append(t.played, chosen.Key())
	t.seen[chosen.Key()] = true
	return chosen, nil
}

// Played returns the identities picked this cycle, oldest first.
func (t *Tracker) Played() []string {
	out := make([]string, len(t.played))
	copy(out, t.played)
	return out
}

func (t *Tracker) Len() int { return len(t.played) }

// Reset starts a fresh cycle.
func (t *Tracker) Reset() {
	t.played = t.played[:0]
	t.seen = make(map[string]bool)
}
