package domain

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Mode selects the tokenization strategy for one invocation.
type Mode int

const (
	ModeWord    Mode = 1
	ModeTwoGram Mode = 2
)

// ParseMode parses a mode given on the command line or in config. Any
// integer spelling of 1 or 2 is accepted ("01", "+2"), as are the names.
func ParseMode(s string) (Mode, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	if n, err := strconv.Atoi(v); err == nil {
		if m := Mode(n); m.Valid() {
			return m, nil
		}
		return 0, &Error{Kind: InvalidMode, Path: s, Err: fmt.Errorf("mode must be 1 (word) or 2 (twogram)")}
	}

	switch v {
	case "word":
		return ModeWord, nil
	case "twogram":
		return ModeTwoGram, nil
	default:
		return 0, &Error{Kind: InvalidMode, Path: s, Err: fmt.Errorf("mode must be 1 (word) or 2 (twogram)")}
	}
}

func (m Mode) Valid() bool {
	return m == ModeWord || m == ModeTwoGram
}

func (m Mode) String() string {
	switch m {
	case ModeWord:
		return "word"
	case ModeTwoGram:
		return "twogram"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// TwoGram is an ordered pair of adjacent words.
type TwoGram struct {
	First  string
	Second string
}

func (g TwoGram) String() string {
	return g.First + " " + g.Second
}

type Frequency struct {
	Token string
	Count int
}

func (f Frequency) String() string {
	return fmt.Sprintf("%s:%d", f.Token, f.Count)
}

// FrequencyTable accumulates token counts for a single input file.
type FrequencyTable struct {
	counts map[string]int
	total  int
}

func NewFrequencyTable() *FrequencyTable {
	return &FrequencyTable{counts: make(map[string]int)}
}

func (t *FrequencyTable) Add(token string) {
	t.counts[token]++
	t.total++
}

func (t *FrequencyTable) Count(token string) int {
	return t.counts[token]
}

// Len returns the number of unique tokens.
func (t *FrequencyTable) Len() int {
	return len(t.counts)
}

// Total returns the sum of all counts.
func (t *FrequencyTable) Total() int {
	return t.total
}

// Sorted returns the table ordered by count descending, ties broken by
// token ascending in byte order.
func (t *FrequencyTable) Sorted() []Frequency {
	freqs := make([]Frequency, 0, len(t.counts))
	for token, count := range t.counts {
		freqs = append(freqs, Frequency{Token: token, Count: count})
	}
	sort.Slice(freqs, func(i, j int) bool {
		if freqs[i].Count != freqs[j].Count {
			return freqs[i].Count > freqs[j].Count
		}
		return freqs[i].Token < freqs[j].Token
	})
	return freqs
}
