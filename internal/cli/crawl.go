package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"freq/config"
	"freq/internal/adapter/crawler"
	"freq/internal/adapter/report"
	"freq/internal/logging"
	"freq/internal/usecase"
	"github.com/spf13/cobra"
)

var crawlCmd = &cobra.Command{
	Use:   "crawl <config.json> [output]",
	Short: "Crawl local HTML pages and count two-grams over their text",
	Long: `Start from the seed pages in a crawl config, follow links to other local
.html files breadth first, and count two-grams over the text of every
distinct page. Links containing one of agent_config.external are never
opened. Pages with identical text are counted once.

The report is written to output, or to stdout when output is omitted.

Example config:
  {
    "seeds": ["site/index.html"],
    "options": {"remove_stopwords": true, "stopwords_lang": "english"},
    "agent_config": {
      "external": ["http://", "https://"],
      "encoding": "utf-8",
      "parser": "html.parser",
      "tags": {"content": "p, h1, h2, li"},
      "debug": false
    }
  }`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runCrawl,
}

func init() {
	rootCmd.AddCommand(crawlCmd)
}

func runCrawl(cmd *cobra.Command, args []string) error {
	crawlCfg, err := config.LoadCrawl(args[0])
	if err != nil {
		return err
	}

	logger := GetLogger()
	if crawlCfg.Agent.Debug {
		if logger, err = logging.New("debug"); err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()
	}

	agent, err := crawler.NewAgent(crawler.AgentOptions{
		External:        crawlCfg.Agent.External,
		Encoding:        crawlCfg.Agent.Encoding,
		TitleSelector:   crawlCfg.Agent.Tags["title"],
		ContentSelector: crawlCfg.Agent.Tags["content"],
		LinkSelector:    crawlCfg.Agent.Tags["links"],
	})
	if err != nil {
		return err
	}

	countCfg := *GetConfig()
	countCfg.Count.RemoveStopwords = crawlCfg.Options.RemoveStopwords
	countCfg.Count.StopwordsLang = crawlCfg.Options.StopwordsLang
	counter, err := newCounter(&countCfg, logger)
	if err != nil {
		return err
	}
	format, err := report.ParseFormat(countCfg.Report.Format)
	if err != nil {
		return err
	}

	seeds := make([]string, 0, len(crawlCfg.Seeds))
	for _, s := range crawlCfg.Seeds {
		if !agent.IsExternal(s) && !filepath.IsAbs(s) {
			s = filepath.Join(GetRootDir(), s)
		}
		seeds = append(seeds, s)
	}

	req := usecase.CrawlRequest{Seeds: seeds, Stdout: os.Stdout}
	if len(args) > 1 {
		req.OutputPath = args[1]
	}

	crawlUC := usecase.NewCrawlUseCase(agent, counter, report.NewWriter(format), logger)
	result, err := crawlUC.Run(cmd.Context(), req)
	if err != nil {
		return err
	}

	if req.OutputPath != "" {
		fmt.Printf("Crawled %d pages (%d distinct, %d skipped, %d failed); %d two-grams written to %s\n",
			result.Visited, result.Documents, result.Skipped, result.Failed, result.Total, req.OutputPath)
	}
	return nil
}
