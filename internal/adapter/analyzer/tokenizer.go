package analyzer

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"freq/internal/domain"
	"golang.org/x/text/unicode/norm"
)

// Options controls the word policy of a Tokenizer.
type Options struct {
	Lowercase       bool
	Apostrophes     bool
	NormalizeNFC    bool
	RemoveStopwords bool
	StopwordsLang   string
}

// DefaultOptions lowercases, keeps apostrophes inside tokens and applies NFC.
// Stopwords are kept.
func DefaultOptions() Options {
	return Options{
		Lowercase:     true,
		Apostrophes:   true,
		NormalizeNFC:  true,
		StopwordsLang: "english",
	}
}

// Tokenizer splits text into word tokens. A token is a maximal run of
// letters, digits, combining marks and (optionally) the ASCII apostrophe.
// Every other rune is a delimiter and is discarded. Tokens never span lines.
type Tokenizer struct {
	opts      Options
	stopwords map[string]struct{}
}

// NewTokenizer creates a new Tokenizer. It fails when stopword removal is
// requested for a language without a stopword list.
func NewTokenizer(opts Options) (*Tokenizer, error) {
	t := &Tokenizer{opts: opts}
	if opts.RemoveStopwords {
		stops, err := Stopwords(opts.StopwordsLang)
		if err != nil {
			return nil, err
		}
		t.stopwords = stops
	}
	return t, nil
}

// Scan streams r line by line and calls fn for every token in order.
// A line that is not valid UTF-8 stops the scan with an EncodingError.
func (t *Tokenizer) Scan(ctx context.Context, r io.Reader, fn func(token string)) error {
	br := bufio.NewReader(r)
	lineNo := 0

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		line, err := br.ReadBytes('\n')
		if len(line) > 0 {
			lineNo++
			if !utf8.Valid(line) {
				return &domain.Error{
					Kind: domain.EncodingError,
					Err:  fmt.Errorf("invalid UTF-8 on line %d", lineNo),
				}
			}
			if t.opts.NormalizeNFC {
				line = norm.NFC.Bytes(line)
			}
			t.tokenizeLine(string(line), fn)
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
	}
}

func (t *Tokenizer) tokenizeLine(line string, fn func(string)) {
	var current strings.Builder

	flush := func() {
		if current.Len() == 0 {
			return
		}
		tok := current.String()
		current.Reset()
		if t.opts.Lowercase {
			tok = strings.ToLower(tok)
		}
		if t.isStopword(tok) {
			return
		}
		fn(tok)
	}

	for _, r := range line {
		if t.isTokenRune(r) {
			current.WriteRune(r)
		} else {
			flush()
		}
	}
	flush()
}

func (t *Tokenizer) isTokenRune(r rune) bool {
	if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r) {
		return true
	}
	return t.opts.Apostrophes && r == '\''
}

func (t *Tokenizer) isStopword(tok string) bool {
	if t.stopwords == nil {
		return false
	}
	_, ok := t.stopwords[strings.ToLower(tok)]
	return ok
}
