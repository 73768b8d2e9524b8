package crawler

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"freq/internal/domain"
	"github.com/PuerkitoBio/goquery"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

var (
	// ErrExternal marks a URI that matches one of the external markers.
	ErrExternal = errors.New("external link")
	// ErrNotHTML marks a local file that is not an .html page.
	ErrNotHTML = errors.New("not an html page")
)

// AgentOptions configures an Agent.
type AgentOptions struct {
	External []string
	Encoding string

	TitleSelector   string
	ContentSelector string
	LinkSelector    string
}

// Agent reads local HTML pages. It never touches the network: any link that
// contains one of the external markers is refused.
type Agent struct {
	opts AgentOptions
	enc  encoding.Encoding
}

// NewAgent creates an Agent. Empty selectors default to the document title,
// the body text and every a[href].
func NewAgent(opts AgentOptions) (*Agent, error) {
	label := opts.Encoding
	if label == "" {
		label = "utf-8"
	}
	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, fmt.Errorf("unsupported page encoding %q: %w", opts.Encoding, err)
	}

	if opts.TitleSelector == "" {
		opts.TitleSelector = "title"
	}
	if opts.ContentSelector == "" {
		opts.ContentSelector = "body"
	}
	if opts.LinkSelector == "" {
		opts.LinkSelector = "a[href]"
	}

	return &Agent{opts: opts, enc: enc}, nil
}

// IsExternal reports whether link contains any external marker.
func (a *Agent) IsExternal(link string) bool {
	for _, marker := range a.opts.External {
		if marker != "" && strings.Contains(link, marker) {
			return true
		}
	}
	return false
}

// Fetch opens the page at uri, a local file path, and extracts its title,
// text and links. Links are resolved against the page's directory.
func (a *Agent) Fetch(ctx context.Context, uri string) (*domain.Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if a.IsExternal(uri) {
		return nil, ErrExternal
	}
	switch strings.ToLower(filepath.Ext(uri)) {
	case ".html", ".htm":
	default:
		return nil, ErrNotHTML
	}

	f, err := os.Open(uri)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	doc, err := goquery.NewDocumentFromReader(transform.NewReader(f, a.enc.NewDecoder()))
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", uri, err)
	}
	doc.Find("script, style, noscript, template").Remove()

	page := &domain.Page{
		URI:   uri,
		Title: strings.TrimSpace(doc.Find(a.opts.TitleSelector).First().Text()),
	}

	var parts []string
	doc.Find(a.opts.ContentSelector).Each(func(_ int, s *goquery.Selection) {
		if text := strings.TrimSpace(s.Text()); text != "" {
			parts = append(parts, text)
		}
	})
	page.Content = strings.Join(parts, "\n")

	doc.Find(a.opts.LinkSelector).Each(func(_ int, s *goquery.Selection) {
		href, ok := s.Attr("href")
		if !ok {
			return
		}
		if link, ok := a.resolve(uri, href); ok {
			page.Links = append(page.Links, link)
		}
	})

	return page, nil
}

// resolve turns href found on the page at base into a crawlable URI.
// External links are kept verbatim so the crawl can count and skip them;
// fragments and queries are dropped from local ones.
func (a *Agent) resolve(base, href string) (string, bool) {
	href = strings.TrimSpace(href)
	if href == "" {
		return "", false
	}
	if a.IsExternal(href) {
		return href, true
	}

	u, err := url.Parse(href)
	if err != nil || u.Scheme != "" || u.Host != "" || u.Path == "" {
		// Unparsable, another scheme (mailto:), or a same-page fragment.
		return "", false
	}

	p := filepath.FromSlash(u.Path)
	if !filepath.IsAbs(p) {
		p = filepath.Join(filepath.Dir(base), p)
	}
	return filepath.Clean(p), true
}
