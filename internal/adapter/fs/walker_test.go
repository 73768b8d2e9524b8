package fs

import (
	"os"
	"path/filepath"
	"testing"

	"freq/internal/domain"
)

func writeFiles(t *testing.T, root string, names ...string) {
	t.Helper()
	for _, name := range names {
		path := filepath.Join(root, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("text"), 0644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestWalker_IncludesExcludes(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root,
		"data/word_01.in.txt",
		"data/word_00.in.txt",
		"data/notes.md",
		"data/skip/word_02.in.txt",
		"twogram_00.in.txt",
	)

	w := NewWalker([]string{"**/*.in.txt"}, []string{"**/skip/**"})
	files, err := w.Walk(root)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{
		filepath.Join(root, "data", "word_00.in.txt"),
		filepath.Join(root, "data", "word_01.in.txt"),
		filepath.Join(root, "twogram_00.in.txt"),
	}
	if len(files) != len(want) {
		t.Fatalf("expected %d files, got %d: %v", len(want), len(files), files)
	}
	for i, f := range files {
		if f.Path != want[i] {
			t.Errorf("file %d: expected %s, got %s", i, want[i], f.Path)
		}
		if rel, _ := filepath.Rel(root, f.Path); filepath.ToSlash(rel) != f.Rel {
			t.Errorf("file %d: expected rel %s, got %s", i, filepath.ToSlash(rel), f.Rel)
		}
		if f.Size != 4 {
			t.Errorf("expected size 4, got %d", f.Size)
		}
	}
}

func TestWalker_DefaultIncludesEverything(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "a.txt", "b/c.txt")

	files, err := NewWalker(nil, nil).Walk(root)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(files) != 2 {
		t.Errorf("expected 2 files, got %d", len(files))
	}
}

func TestWalker_MissingRoot(t *testing.T) {
	_, err := NewWalker(nil, nil).Walk(filepath.Join(t.TempDir(), "missing"))
	if err == nil {
		t.Error("expected error for missing root")
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		input string
		mode  domain.Mode
		want  string
	}{
		{"word_01.in.txt", domain.ModeWord, filepath.Join("out", "word_01.word.out.txt")},
		{"data/word_01.in.txt", domain.ModeWord, filepath.Join("out", "data", "word_01.word.out.txt")},
		{"data/word_01.in.txt", domain.ModeTwoGram, filepath.Join("out", "data", "word_01.twogram.out.txt")},
		{"a/b/sample.txt", domain.ModeWord, filepath.Join("out", "a", "b", "sample.word.out.txt")},
		{"/abs/sample.txt", domain.ModeWord, filepath.Join("out", "sample.word.out.txt")},
	}

	for _, tt := range tests {
		got := OutputPath("out", tt.input, tt.mode, ".in.txt", ".out.txt")
		if got != tt.want {
			t.Errorf("OutputPath(%q, %s) = %s, want %s", tt.input, tt.mode, got, tt.want)
		}
	}
}

func TestOutputPath_SameNameInDifferentDirs(t *testing.T) {
	a := OutputPath("out", "a/sample.in.txt", domain.ModeWord, ".in.txt", ".out.txt")
	b := OutputPath("out", "b/sample.in.txt", domain.ModeWord, ".in.txt", ".out.txt")
	if a == b {
		t.Errorf("expected distinct report paths, both are %s", a)
	}
}
