package crawler

import (
	"errors"
	"testing"
)

func TestNewFrontier_NoSeeds(t *testing.T) {
	for _, seeds := range [][]string{nil, {}} {
		if _, err := NewFrontier(seeds); !errors.Is(err, ErrNoSeeds) {
			t.Errorf("NewFrontier(%v): expected ErrNoSeeds, got %v", seeds, err)
		}
	}
}

func TestFrontier_FIFO(t *testing.T) {
	f, err := NewFrontier([]string{"a.html", "b.html"})
	if err != nil {
		t.Fatal(err)
	}
	f.Push(URI{URI: "c.html", Parent: "a.html"})

	if f.Len() != 3 {
		t.Fatalf("expected 3 queued, got %d", f.Len())
	}
	if u, ok := f.Peek(); !ok || u.URI != "a.html" {
		t.Errorf("Peek = %v, %v; want a.html", u, ok)
	}
	if f.Len() != 3 {
		t.Errorf("Peek must not remove, len=%d", f.Len())
	}

	var got []string
	for f.Len() > 0 {
		u, _ := f.Pop()
		got = append(got, u.URI)
	}
	want := []string{"a.html", "b.html", "c.html"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("pop %d: expected %s, got %s", i, want[i], got[i])
		}
	}

	if _, ok := f.Pop(); ok {
		t.Error("Pop on empty frontier should report false")
	}
	if _, ok := f.Peek(); ok {
		t.Error("Peek on empty frontier should report false")
	}
}

func TestFrontier_ManyPushPop(t *testing.T) {
	f, _ := NewFrontier([]string{"seed"})
	for i := 0; i < 1000; i++ {
		f.Push(URI{URI: string(rune('a' + i%26))})
		if i%2 == 0 {
			f.Pop()
		}
	}
	if f.Len() != 1001-500 {
		t.Errorf("expected %d queued, got %d", 1001-500, f.Len())
	}
}

func TestSeen(t *testing.T) {
	s := NewSeen()
	if !s.Add("x") {
		t.Error("first Add should report new")
	}
	if s.Add("x") {
		t.Error("second Add should report seen")
	}
	if !s.Contains("x") || s.Contains("y") {
		t.Error("Contains mismatch")
	}
	if s.Len() != 1 {
		t.Errorf("expected 1 key, got %d", s.Len())
	}
}
