// Package hints picks which hint to reveal for a word.
//
// A Ranker holds a TF-IDF vector space built once over every hint in the bank.
// Once letters have been guessed, the hint least similar to those letters is
// surfaced, so each reveal tends to add something new.
package hints

import (
	"errors"
	"math"
	"math/rand"
	"strings"
	"unicode"

	"wordguess-go/internal/wordbank"
)

var ErrNoHintsAvailable = errors.New("no hints available for this word")

// vector is a sparse, L2-normalized term weight vector keyed by vocabulary index.
type vector map[int]float64

// Ranker is read-only after Prepare. Its random source is not safe for
// concurrent use.
type Ranker struct {
	vocab map[string]int
	idf   []float64
	docs  map[string]vector
	rng   *rand.Rand
}

// Prepare builds the vector space over the full hint corpus. It must be called
// again whenever the bank changes. A nil rng falls back to a time-seeded source.
func Prepare(corpus []string, rng *rand.Rand) *Ranker {
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}
	r := &Ranker{
		vocab: make(map[string]int),
		docs:  make(map[string]vector, len(corpus)),
		rng:   rng,
	}

	var df []int
	tokenized := make([][]string, len(corpus))
	for i, doc := range corpus {
		tokens := tokenize(doc)
		tokenized[i] = tokens
		seen := make(map[int]bool, len(tokens))
		for _, tok := range tokens {
			idx, ok := r.vocab[tok]
			if !ok {
				idx = len(df)
				r.vocab[tok] = idx
				df = append(df, 0)
			}
			if !seen[idx] {
				seen[idx] = true
				df[idx]++
			}
		}
	}

	// Smoothed idf: ln((1+n)/(1+df)) + 1.
	n := float64(len(corpus))
	r.idf = make([]float64, len(df))
	for i, d := range df {
		r.idf[i] = math.Log((1+n)/(1+float64(d))) + 1
	}

	for i, doc := range corpus {
		r.docs[doc] = r.weigh(tokenized[i])
	}
	return r
}

// VocabularySize is the number of distinct terms in the corpus.
func (r *Ranker) VocabularySize() int { return len(r.vocab) }

// NextHint chooses the hint to reveal for word given the letters guessed so far.
// With nothing guessed any hint is fair game. Otherwise the hint with the lowest
// cosine similarity to the guessed letters wins, ties going to the earlier hint.
func (r *Ranker) NextHint(word wordbank.WordEntry, guessed []rune) (string, error) {
	candidates := word.HintList()
	if len(candidates) == 0 {
		return "", ErrNoHintsAvailable
	}
	if len(guessed) == 0 {
		return candidates[r.rng.Intn(len(candidates))], nil
	}

	letters := make([]string, len(guessed))
	for i, g := range guessed {
		letters[i] = string(g)
	}
	query := r.transform(strings.Join(letters, " "))

	best, bestSim := 0, math.Inf(1)
	for i, h := range candidates {
		sim := cosine(query, r.docVector(h))
		if sim < bestSim {
			best, bestSim = i, sim
		}
	}
	return candidates[best], nil
}

// Similarity is the cosine similarity of two texts in this space, in [0,1].
func (r *Ranker) Similarity(a, b string) float64 {
	return cosine(r.transform(a), r.transform(b))
}

// transform projects text into the vector space. Unknown terms are dropped.
func (r *Ranker) transform(text string) vector {
	return r.weigh(tokenize(text))
}

func (r *Ranker) docVector(doc string) vector {
	if v, ok := r.docs[doc]; ok {
		return v
	}
	return r.transform(doc)
}

func (r *Ranker) weigh(tokens []string) vector {
	v := make(vector)
	for _, tok := range tokens {
		if idx, ok := r.vocab[tok]; ok {
			v[idx]++
		}
	}
	var norm float64
	for idx, tf := range v {
		w := tf * r.idf[idx]
		v[idx] = w
		norm += w * w
	}
	if norm == 0 {
		return v
	}
	norm = math.Sqrt(norm)
	for idx := range v {
		v[idx] /= norm
	}
	return v
}

// cosine assumes both vectors are already normalized. A zero vector scores 0.
func cosine(a, b vector) float64 {
	if len(b) < len(a) {
		a, b = b, a
	}
	var dot float64
	for idx, w := range a {
		dot += w * b[idx]
	}
	// Rounding can push a self-match a hair past 1.
	return math.Min(math.Max(dot, 0), 1)
}

// tokenize lowercases text and splits it into runs of letters and digits.
// Single-character tokens are kept so guessed letters can match.
func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}
