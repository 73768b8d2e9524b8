package usecase

import (
	"bytes"
	"context"
	"errors"
	"io"
	"time"

	"freq/internal/adapter/crawler"
	"freq/internal/domain"
	"freq/internal/logging"
	"freq/internal/port"
	"go.uber.org/zap"
)

// CrawlUseCase walks local HTML pages breadth first and counts two-grams over
// the text of every distinct page.
type CrawlUseCase struct {
	fetcher port.PageFetcher
	counter *CountUseCase
	writer  port.ReportWriter
	logger  *zap.Logger
}

// NewCrawlUseCase creates a crawl use case.
func NewCrawlUseCase(fetcher port.PageFetcher, counter *CountUseCase, writer port.ReportWriter, logger *zap.Logger) *CrawlUseCase {
	return &CrawlUseCase{
		fetcher: fetcher,
		counter: counter,
		writer:  writer,
		logger:  logging.OrNop(logger),
	}
}

// CrawlRequest names one crawl. The report goes to OutputPath, atomically,
// or to Stdout when OutputPath is empty.
type CrawlRequest struct {
	Seeds      []string
	OutputPath string
	Stdout     io.Writer
}

// CrawlResult summarizes a crawl.
type CrawlResult struct {
	Visited       int // pages opened and parsed
	Documents     int // pages whose text was counted
	DuplicateDocs int // pages whose text was already seen under another URI
	DuplicateURIs int // queued URIs that had already been visited
	Skipped       int // external links and non-html files
	Failed        int // pages that could not be opened or parsed
	Total         int
	Unique        int
	Output        string
	Checksum      string
	Duration      time.Duration
}

// Run crawls from req.Seeds and writes the two-gram report. A page that
// cannot be read is counted as failed and the crawl goes on.
func (u *CrawlUseCase) Run(ctx context.Context, req CrawlRequest) (*CrawlResult, error) {
	start := time.Now()

	frontier, err := crawler.NewFrontier(req.Seeds)
	if err != nil {
		return nil, err
	}
	uris := crawler.NewSeen()
	docs := crawler.NewSeen()

	result := &CrawlResult{Output: req.OutputPath}
	var text bytes.Buffer

	for frontier.Len() > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		next, _ := frontier.Pop()
		if !uris.Add(next.URI) {
			result.DuplicateURIs++
			continue
		}

		page, err := u.fetcher.Fetch(ctx, next.URI)
		switch {
		case err == nil:
		case isContextErr(err):
			return nil, err
		case errors.Is(err, crawler.ErrExternal), errors.Is(err, crawler.ErrNotHTML):
			result.Skipped++
			u.logger.Debug("Skipping link", zap.String("uri", next.URI), zap.String("parent", next.Parent), zap.Error(err))
			continue
		default:
			result.Failed++
			u.logger.Debug("Link failed to open", zap.String("uri", next.URI), zap.String("parent", next.Parent), zap.Error(err))
			continue
		}
		result.Visited++

		for _, link := range page.Links {
			if !uris.Contains(link) {
				frontier.Push(crawler.URI{URI: link, Parent: next.URI})
			}
		}

		if !docs.Add(page.Fingerprint()) {
			result.DuplicateDocs++
			u.logger.Debug("Duplicate document", zap.String("uri", next.URI), zap.String("fingerprint", page.Fingerprint()[:16]))
			continue
		}
		result.Documents++
		u.logger.Debug("Document",
			zap.Int("n", result.Documents),
			zap.String("uri", next.URI),
			zap.String("title", page.Title),
			zap.String("fingerprint", page.Fingerprint()[:16]))

		text.WriteString(page.Content)
		text.WriteByte('\n')
	}

	table, err := u.counter.Count(ctx, domain.ModeTwoGram, &text)
	if err != nil {
		return nil, err
	}
	result.Total = table.Total()
	result.Unique = table.Len()

	if req.OutputPath != "" {
		checksum, err := u.writer.WriteFile(req.OutputPath, table)
		if err != nil {
			return nil, err
		}
		result.Checksum = checksum
	} else if req.Stdout != nil {
		if err := u.writer.Write(req.Stdout, table); err != nil {
			return nil, err
		}
	}

	result.Duration = time.Since(start)
	u.logger.Info("Crawl finished",
		zap.Int("visited", result.Visited),
		zap.Int("documents", result.Documents),
		zap.Int("duplicates", result.DuplicateDocs),
		zap.Int("skipped", result.Skipped),
		zap.Int("failed", result.Failed),
		zap.Int("twograms", result.Total),
		zap.Duration("took", result.Duration))

	return result, nil
}
