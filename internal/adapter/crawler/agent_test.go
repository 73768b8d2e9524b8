package crawler

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePage(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func newAgent(t *testing.T, opts AgentOptions) *Agent {
	t.Helper()
	a, err := NewAgent(opts)
	require.NoError(t, err)
	return a
}

func TestAgent_Fetch(t *testing.T) {
	dir := t.TempDir()
	index := writePage(t, dir, "index.html", `<!DOCTYPE html>
<html><head><title> Home </title><style>p { color: red }</style></head>
<body>
<p>Hello local world</p>
<script>var ignored = "script text";</script>
<a href="about.html#team">About</a>
<a href="docs/guide.html?x=1">Guide</a>
<a href="https://example.com/page.html">Out</a>
<a href="mailto:someone@example.com">Mail</a>
<a href="#top">Top</a>
<a>no href</a>
</body></html>`)

	a := newAgent(t, AgentOptions{External: []string{"https://", "http://"}})
	page, err := a.Fetch(context.Background(), index)
	require.NoError(t, err)

	assert.Equal(t, index, page.URI)
	assert.Equal(t, "Home", page.Title)
	assert.Contains(t, page.Content, "Hello local world")
	assert.NotContains(t, page.Content, "script text")
	assert.NotContains(t, page.Content, "color")

	assert.Equal(t, []string{
		filepath.Join(dir, "about.html"),
		filepath.Join(dir, "docs", "guide.html"),
		"https://example.com/page.html",
	}, page.Links)
}

func TestAgent_Selectors(t *testing.T) {
	dir := t.TempDir()
	path := writePage(t, dir, "a.html", `<html><body>
<nav><a href="skip.html">menu entry</a></nav>
<h1>Heading</h1><p>first para</p><p>second para</p>
<div class="links"><a href="b.html">b</a></div>
</body></html>`)

	a := newAgent(t, AgentOptions{
		TitleSelector:   "h1",
		ContentSelector: "p",
		LinkSelector:    "div.links a[href]",
	})
	page, err := a.Fetch(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, "Heading", page.Title)
	assert.Equal(t, "first para\nsecond para", page.Content)
	assert.Equal(t, []string{filepath.Join(dir, "b.html")}, page.Links)
}

func TestAgent_Encoding(t *testing.T) {
	dir := t.TempDir()
	// "café" in ISO-8859-1
	path := writePage(t, dir, "latin.html", "<html><body><p>caf\xe9</p></body></html>")

	page, err := newAgent(t, AgentOptions{Encoding: "iso-8859-1"}).Fetch(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "café", page.Content)

	_, err = NewAgent(AgentOptions{Encoding: "no-such-charset"})
	assert.Error(t, err)
}

func TestAgent_Refusals(t *testing.T) {
	dir := t.TempDir()
	txt := writePage(t, dir, "notes.txt", "plain")

	a := newAgent(t, AgentOptions{External: []string{"www."}})

	_, err := a.Fetch(context.Background(), "www.example.com/index.html")
	assert.True(t, errors.Is(err, ErrExternal))

	_, err = a.Fetch(context.Background(), txt)
	assert.True(t, errors.Is(err, ErrNotHTML))

	_, err = a.Fetch(context.Background(), filepath.Join(dir, "missing.html"))
	assert.True(t, errors.Is(err, os.ErrNotExist))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = a.Fetch(ctx, filepath.Join(dir, "missing.html"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAgent_IsExternal(t *testing.T) {
	a := newAgent(t, AgentOptions{External: []string{"http", "", "www."}})

	assert.True(t, a.IsExternal("https://example.com"))
	assert.True(t, a.IsExternal("see www.example.com"))
	assert.False(t, a.IsExternal("local/page.html"))
}
