package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		input   string
		want    Mode
		wantErr bool
	}{
		{"1", ModeWord, false},
		{"2", ModeTwoGram, false},
		{"word", ModeWord, false},
		{" TwoGram ", ModeTwoGram, false},
		{"01", ModeWord, false},
		{"+1", ModeWord, false},
		{"+2", ModeTwoGram, false},
		{"0", 0, true},
		{"-1", 0, true},
		{"1.0", 0, true},
		{"3", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseMode(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidMode))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMode_Valid(t *testing.T) {
	assert.True(t, ModeWord.Valid())
	assert.True(t, ModeTwoGram.Valid())
	assert.False(t, Mode(0).Valid())
	assert.False(t, Mode(7).Valid())
	assert.Equal(t, "mode(7)", Mode(7).String())
}

func TestTwoGram(t *testing.T) {
	a := TwoGram{First: "you", Second: "know"}
	assert.Equal(t, "you know", a.String())
}

func TestFrequencyTable_SortedExample(t *testing.T) {
	table := NewFrequencyTable()
	for _, w := range []string{"this", "sentence", "repeats", "the", "word", "sentence"} {
		table.Add(w)
	}

	want := []Frequency{
		{"sentence", 2},
		{"repeats", 1},
		{"the", 1},
		{"this", 1},
		{"word", 1},
	}
	if diff := cmp.Diff(want, table.Sorted()); diff != "" {
		t.Errorf("Sorted() mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 6, table.Total())
	assert.Equal(t, 5, table.Len())
	assert.Equal(t, 2, table.Count("sentence"))
	assert.Equal(t, 0, table.Count("missing"))
}

func TestFrequencyTable_Empty(t *testing.T) {
	table := NewFrequencyTable()
	assert.Empty(t, table.Sorted())
	assert.Equal(t, 0, table.Total())
	assert.Equal(t, 0, table.Len())
}

func TestFrequencyTable_TieBreakStable(t *testing.T) {
	words := []string{"zeta", "alpha", "mu", "beta", "alpha", "mu"}

	var first []Frequency
	for i := 0; i < 20; i++ {
		table := NewFrequencyTable()
		for _, w := range words {
			table.Add(w)
		}
		got := table.Sorted()
		if first == nil {
			first = got
			continue
		}
		require.Equal(t, first, got)
	}
	assert.Equal(t, []Frequency{{"alpha", 2}, {"mu", 2}, {"beta", 1}, {"zeta", 1}}, first)
}

func TestError_Format(t *testing.T) {
	err := &Error{Kind: InputNotFound, Path: "missing.txt", Err: fmt.Errorf("no such file or directory")}
	assert.Equal(t, "input not found: missing.txt: no such file or directory", err.Error())
	assert.Equal(t, 10, err.ExitCode())

	wrapped := fmt.Errorf("count: %w", err)
	assert.True(t, errors.Is(wrapped, ErrInputNotFound))
	assert.False(t, errors.Is(wrapped, ErrOutputWriteFailed))
	assert.Equal(t, InputNotFound, KindOf(wrapped))
	assert.Equal(t, ErrorKind(0), KindOf(errors.New("plain")))
}

func TestErrorKind_ExitCodesDisjoint(t *testing.T) {
	seen := map[int]ErrorKind{}
	for _, k := range []ErrorKind{InputNotFound, OutputWriteFailed, InvalidMode, EncodingError} {
		code := k.ExitCode()
		assert.GreaterOrEqual(t, code, 10, "kind %s", k)
		_, dup := seen[code]
		assert.False(t, dup, "duplicate exit code %d", code)
		seen[code] = k
	}
}
