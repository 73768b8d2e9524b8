package crawler

// Seen records artifacts already processed during a crawl: URIs, or page
// fingerprints.
type Seen struct {
	keys map[string]struct{}
}

func NewSeen() *Seen {
	return &Seen{keys: make(map[string]struct{})}
}

// Add records key and reports whether it was new.
func (s *Seen) Add(key string) bool {
	if _, ok := s.keys[key]; ok {
		return false
	}
	s.keys[key] = struct{}{}
	return true
}

func (s *Seen) Contains(key string) bool {
	_, ok := s.keys[key]
	return ok
}

func (s *Seen) Len() int {
	return len(s.keys)
}
