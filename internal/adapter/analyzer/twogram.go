package analyzer

import "freq/internal/domain"

// TwoGrammer turns a word stream into a stream of adjacent pairs.
// n words yield max(0, n-1) two-grams; pairs cross line boundaries.
type TwoGrammer struct {
	prev    string
	hasPrev bool
	emit    func(domain.TwoGram)
}

func NewTwoGrammer(emit func(domain.TwoGram)) *TwoGrammer {
	return &TwoGrammer{emit: emit}
}

// Push feeds the next word.
func (g *TwoGrammer) Push(word string) {
	if g.hasPrev {
		g.emit(domain.TwoGram{First: g.prev, Second: word})
	}
	g.prev = word
	g.hasPrev = true
}
