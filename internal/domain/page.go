package domain

import (
	"crypto/sha256"
	"encoding/hex"
)

// Page is one crawled document.
type Page struct {
	URI     string
	Title   string
	Content string
	Links   []string // resolved, in document order

	fingerprint string
}

// Fingerprint identifies the page text. Two pages with the same content
// share a fingerprint whatever their URI or title.
func (p *Page) Fingerprint() string {
	if p.fingerprint == "" {
		sum := sha256.Sum256([]byte(p.Content))
		p.fingerprint = hex.EncodeToString(sum[:])
	}
	return p.fingerprint
}
