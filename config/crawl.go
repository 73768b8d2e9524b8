package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
)

// CrawlConfig describes one local crawl, read from a JSON file.
type CrawlConfig struct {
	Seeds   []string     `json:"seeds"`
	Options CrawlOptions `json:"options"`
	Agent   AgentConfig  `json:"agent_config"`
}

// CrawlOptions controls how crawled text is counted.
type CrawlOptions struct {
	RemoveStopwords bool   `json:"remove_stopwords"`
	StopwordsLang   string `json:"stopwords_lang"`
}

// AgentConfig controls how pages are read.
type AgentConfig struct {
	External []string          `json:"external"` // links containing any of these are never opened
	Encoding string            `json:"encoding"` // WHATWG label, "" means utf-8
	Parser   string            `json:"parser"`   // accepted for compatibility, pages are always parsed as HTML5
	Tags     map[string]string `json:"tags"`     // selectors for "title", "content" and "links"
	Debug    bool              `json:"debug"`
}

// crawlSchema lists the keys every crawl config must carry. A nested map
// means the value is an object with required keys of its own.
var crawlSchema = map[string]any{
	"seeds": nil,
	"options": map[string]any{
		"remove_stopwords": nil,
		"stopwords_lang":   nil,
	},
	"agent_config": map[string]any{
		"external": nil,
		"encoding": nil,
		"parser":   nil,
		"tags":     nil,
		"debug":    nil,
	},
}

// LoadCrawl reads and validates a crawl config. Every missing key is
// reported, not just the first.
func LoadCrawl(path string) (*CrawlConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := checkKeys(raw, crawlSchema, ""); err != nil {
		return nil, fmt.Errorf("invalid crawl config %s: %w", path, err)
	}

	var cfg CrawlConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid crawl config %s: %w", path, err)
	}
	return &cfg, nil
}

// Validate checks values the key check cannot.
func (c *CrawlConfig) Validate() error {
	if len(c.Seeds) == 0 {
		return fmt.Errorf("seeds must list at least one page")
	}
	if c.Options.RemoveStopwords && !hasStopwords(c.Options.StopwordsLang) {
		return fmt.Errorf("options.stopwords_lang: no stopword list for %q", c.Options.StopwordsLang)
	}
	return nil
}

func checkKeys(got map[string]any, schema map[string]any, prefix string) error {
	keys := make([]string, 0, len(schema))
	for k := range schema {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var errs []error
	for _, key := range keys {
		v, ok := got[key]
		if !ok {
			errs = append(errs, fmt.Errorf("required key %s%s is missing", prefix, key))
			continue
		}
		sub, nested := schema[key].(map[string]any)
		if !nested {
			continue
		}
		obj, isObj := v.(map[string]any)
		if !isObj {
			errs = append(errs, fmt.Errorf("key %s%s must be an object", prefix, key))
			continue
		}
		if err := checkKeys(obj, sub, prefix+key+"."); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
