package crawler

import "errors"

// ErrNoSeeds is returned when a frontier is created without seeds.
var ErrNoSeeds = errors.New("crawl needs at least one seed")

// URI is a frontier entry. Parent is the page the link was found on and is
// empty for seeds.
type URI struct {
	URI    string
	Parent string
}

// Frontier is a FIFO queue of URIs still to visit. It does no
// prioritization and is not safe for concurrent use.
type Frontier struct {
	queue []URI
	head  int
}

// NewFrontier creates a frontier holding seeds in order.
func NewFrontier(seeds []string) (*Frontier, error) {
	if len(seeds) == 0 {
		return nil, ErrNoSeeds
	}
	f := &Frontier{queue: make([]URI, 0, len(seeds))}
	for _, s := range seeds {
		f.Push(URI{URI: s})
	}
	return f, nil
}

// Len returns the number of queued URIs.
func (f *Frontier) Len() int {
	return len(f.queue) - f.head
}

// Push adds u to the back.
func (f *Frontier) Push(u URI) {
	f.queue = append(f.queue, u)
}

// Peek returns the front URI without removing it.
func (f *Frontier) Peek() (URI, bool) {
	if f.Len() == 0 {
		return URI{}, false
	}
	return f.queue[f.head], true
}

// Pop removes and returns the front URI.
func (f *Frontier) Pop() (URI, bool) {
	u, ok := f.Peek()
	if !ok {
		return u, false
	}
	f.queue[f.head] = URI{}
	f.head++

	// Reclaim the consumed prefix once it dominates the slice.
	if f.head > 64 && f.head*2 > len(f.queue) {
		f.queue = append(f.queue[:0:0], f.queue[f.head:]...)
		f.head = 0
	}
	return u, true
}
