package bank

import "math/rand/v2"

// Shuffle returns a new slice holding the questions in Fisher-Yates order.
// The input slice and the answers of each question are left untouched.
func Shuffle(questions []Question, rng *rand.Rand) []Question {
	out := make([]Question, len(questions))
	for i, q := range questions {
		out[i] = q.Clone()
	}
	for i := len(out) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// Renumber returns a copy of questions numbered 1..N by position.
func Renumber(questions []Question) []Question {
	out := make([]Question, len(questions))
	for i, q := range questions {
		c := q.Clone()
		c.Number = i + 1
		out[i] = c
	}
	return out
}

// ShuffleAndRenumber shuffles and then renumbers questions.
func ShuffleAndRenumber(questions []Question, rng *rand.Rand) []Question {
	return Renumber(Shuffle(questions, rng))
}

// NewRand returns a random source. A zero seed picks a random one.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
