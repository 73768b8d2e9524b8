package analyzer

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"freq/internal/domain"
)

func newTokenizer(t *testing.T, opts Options) *Tokenizer {
	t.Helper()
	tok, err := NewTokenizer(opts)
	if err != nil {
		t.Fatalf("NewTokenizer failed: %v", err)
	}
	return tok
}

func collect(t *testing.T, tok *Tokenizer, text string) []string {
	t.Helper()
	var words []string
	err := tok.Scan(context.Background(), strings.NewReader(text), func(w string) {
		words = append(words, w)
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return words
}

func TestTokenizer_Tokenize_Example(t *testing.T) {
	tok := newTokenizer(t, DefaultOptions())

	got := collect(t, tok, "An input string, this is! (or isn't it?) 123-45")
	want := []string{"an", "input", "string", "this", "is", "or", "isn't", "it", "123", "45"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestTokenizer_Multilingual(t *testing.T) {
	tok := newTokenizer(t, DefaultOptions())

	text := "這是一個輸入字符串，還是？\n" +
		"هذا هو سلسلة المدخلات، أو هو؟\n" +
		"C'est une chaîne d'entrée, ou est-ce?\n" +
		"¿Esta es una cadena de entrada, o es?"
	want := []string{
		"這是一個輸入字符串", "還是",
		"هذا", "هو", "سلسلة", "المدخلات", "أو", "هو",
		"c'est", "une", "chaîne", "d'entrée", "ou", "est", "ce",
		"esta", "es", "una", "cadena", "de", "entrada", "o", "es",
	}

	got := collect(t, tok, text)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestTokenizer_NormalizesDecomposedForms(t *testing.T) {
	tok := newTokenizer(t, DefaultOptions())

	// "chaîne" with a combining circumflex.
	got := collect(t, tok, "chai\u0302ne cha\u00eene")
	if len(got) != 2 || got[0] != got[1] {
		t.Errorf("expected both spellings to normalize to one token, got %q", got)
	}
}

func TestTokenizer_PreserveCase(t *testing.T) {
	tok := newTokenizer(t, Options{Apostrophes: true})

	got := collect(t, tok, "Hello hello HELLO")
	want := []string{"Hello", "hello", "HELLO"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestTokenizer_DropApostrophes(t *testing.T) {
	tok := newTokenizer(t, Options{Lowercase: true})

	got := collect(t, tok, "isn't")
	want := []string{"isn", "t"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestTokenizer_EmptyInput(t *testing.T) {
	tok := newTokenizer(t, DefaultOptions())

	for _, text := range []string{"", "   \n\t\n  ", "!!! ... ---"} {
		if got := collect(t, tok, text); len(got) != 0 {
			t.Errorf("expected 0 tokens for %q, got %v", text, got)
		}
	}
}

func TestTokenizer_TokensDoNotSpanLines(t *testing.T) {
	tok := newTokenizer(t, DefaultOptions())

	got := collect(t, tok, "foo\nbar\r\nbaz")
	want := []string{"foo", "bar", "baz"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestTokenizer_InvalidUTF8(t *testing.T) {
	tok := newTokenizer(t, DefaultOptions())

	err := tok.Scan(context.Background(), strings.NewReader("fine line\nbad \xff\xfe line\n"), func(string) {})
	if err == nil {
		t.Fatal("expected an encoding error")
	}
	if !errors.Is(err, domain.ErrEncoding) {
		t.Errorf("expected EncodingError, got %v", err)
	}
	if !strings.Contains(err.Error(), "line 2") {
		t.Errorf("expected line number in error, got %q", err.Error())
	}
}

func TestTokenizer_ScanCanceled(t *testing.T) {
	tok := newTokenizer(t, DefaultOptions())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := tok.Scan(ctx, strings.NewReader("a b c"), func(string) {})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestSplitCases(t *testing.T) {
	tests := []struct {
		input    string
		expected int
	}{
		{"hello world", 2},
		{"hello_world", 2},
		{"hello-world", 2},
		{"func(x, y)", 3},
		{"CamelCase", 1},
		{"123numbers456", 1},
		{"rock'n'roll", 1},
	}

	tok := newTokenizer(t, DefaultOptions())
	for _, tt := range tests {
		words := collect(t, tok, tt.input)
		if len(words) != tt.expected {
			t.Errorf("Tokenize(%q) = %d words, want %d: %v", tt.input, len(words), tt.expected, words)
		}
	}
}

func TestTwoGrammer(t *testing.T) {
	tests := []struct {
		words []string
		want  []domain.TwoGram
	}{
		{nil, nil},
		{[]string{"solo"}, nil},
		{[]string{"a", "b", "a"}, []domain.TwoGram{{First: "a", Second: "b"}, {First: "b", Second: "a"}}},
	}

	for _, tt := range tests {
		var got []domain.TwoGram
		g := NewTwoGrammer(func(tg domain.TwoGram) {
			got = append(got, tg)
		})
		for _, w := range tt.words {
			g.Push(w)
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("two-grams of %v = %v, want %v", tt.words, got, tt.want)
		}
		if n := len(tt.words) - 1; n > 0 && len(got) != n {
			t.Errorf("expected %d two-grams, got %d", n, len(got))
		}
	}
}

func TestTokenizer_RemoveStopwords(t *testing.T) {
	text := "This is the house that Jack built"
	all := collect(t, newTokenizer(t, DefaultOptions()), text)

	opts := DefaultOptions()
	opts.RemoveStopwords = true
	got := collect(t, newTokenizer(t, opts), text)

	want := []string{"house", "jack", "built"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
	if dropped := len(all) - len(got); dropped != 4 {
		t.Errorf("expected 4 stopwords dropped, got %d", dropped)
	}
}

func TestTokenizer_StopwordsIgnoreCase(t *testing.T) {
	opts := Options{Apostrophes: true, RemoveStopwords: true}
	got := collect(t, newTokenizer(t, opts), "The Cat AND the Hat")

	want := []string{"Cat", "Hat"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestNewTokenizer_UnknownStopwordLanguage(t *testing.T) {
	_, err := NewTokenizer(Options{RemoveStopwords: true, StopwordsLang: "klingon"})
	if err == nil {
		t.Error("expected error for unknown stopword language")
	}

	// The language is ignored when nothing is removed.
	if _, err := NewTokenizer(Options{StopwordsLang: "klingon"}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
