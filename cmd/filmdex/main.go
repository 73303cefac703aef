package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/alecthomas/kong"
	"github.com/filmdex/filmdex"
	"github.com/filmdex/filmdex/crawl"
	"github.com/filmdex/filmdex/gemini"
	"github.com/filmdex/filmdex/goquery"
	"github.com/filmdex/filmdex/htmltomarkdown"
	fdhttp "github.com/filmdex/filmdex/http"
	"github.com/filmdex/filmdex/rod"
	fdslog "github.com/filmdex/filmdex/slog"
	"github.com/filmdex/filmdex/sqlite"
	"github.com/filmdex/filmdex/trafilatura"
	"google.golang.org/genai"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	SiteService    filmdex.SiteService
	ReleaseService filmdex.ReleaseService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("filmdex"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'filmdex --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set FILMDEX_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	m.SiteService = sqlite.NewSiteService(m.DB)
	m.ReleaseService = sqlite.NewReleaseService(m.DB)
	deps.DB = m.DB
	deps.Sites = m.SiteService
	deps.Releases = m.ReleaseService
	deps.Sitemaps = fdhttp.NewSitemapService(nil)

	if cmd == "crawl" {
		logger := newLogger(stderr, cli.Verbose)

		fetcher, err := newFetcher(cli, logger)
		if err != nil {
			return err
		}
		defer fetcher.Close()

		limiter := crawl.NewDomainLimiter(cli.Crawl.Rate).WithJitter(500 * time.Millisecond)
		hosts := filmdex.DefaultResolverHosts()

		var resolver filmdex.Resolver = crawl.NewResolver(fetcher, limiter, hosts)
		detector := filmdex.LayoutDetector(goquery.NewLayoutDetector())
		if cli.Verbose {
			resolver = fdslog.NewLoggingResolver(resolver, logger)
			detector = fdslog.NewLoggingLayoutDetector(detector, logger)
		}

		deps.Crawler = &crawl.Crawler{
			Sitemaps: deps.Sitemaps,
			Fetcher:  fetcher,
			Pipeline: &crawl.Pipeline{
				Detector:  detector,
				Metadata:  goquery.NewMetadataExtractor(),
				Fallback:  trafilatura.NewExtractor(),
				Converter: htmltomarkdown.NewConverter(),
				Resolver:  resolver,
				Hosts:     hosts,
			},
			Releases:    m.ReleaseService,
			Tagger:      newTagger(ctx, stderr),
			RateLimiter: limiter,
			Concurrency: cli.Crawl.Concurrency,
		}
	}

	return kongCtx.Run(deps)
}

// tokenizerModel is used for token counting; the tagger's own model is
// chosen in the gemini package.
const tokenizerModel = "gemini-2.5-flash"

// newFetcher builds the document fetcher: headless Chrome when
// requested, otherwise plain HTTP with retry.
func newFetcher(cli *CLI, logger *slog.Logger) (filmdex.Fetcher, error) {
	var base filmdex.Fetcher
	if cli.Crawl.Browser {
		browser, err := rod.NewFetcher()
		if err != nil {
			return nil, fmt.Errorf("failed to start browser (is Chrome or Chromium installed?): %w", err)
		}
		base = browser
	} else {
		base = fdhttp.NewFetcher()
	}

	fetcher := filmdex.Fetcher(crawl.NewRetryFetcher(base).WithOnRetry(
		func(url string, attempt int, err error) {
			logger.Warn("retrying fetch", "url", url, "attempt", attempt, "err", err)
		}))
	if cli.Verbose {
		fetcher = fdslog.NewLoggingFetcher(fetcher, logger)
	}
	return fetcher, nil
}

// newTagger builds the optional Gemini tagger. Crawls proceed untagged
// when no API key is configured.
func newTagger(ctx context.Context, stderr io.Writer) filmdex.Tagger {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		fmt.Fprintf(stderr, "warning: tagging disabled: %v\n", err)
		return nil
	}

	var opts []gemini.TaggerOption
	if tc, err := gemini.NewTokenCounter(tokenizerModel); err == nil {
		opts = append(opts, gemini.WithTokenCounter(tc))
	}
	return gemini.NewTagger(client, opts...)
}

func newLogger(stderr io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
}

func defaultDBPath() string {
	if path := os.Getenv("FILMDEX_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "filmdex.db"
	}
	dir := filepath.Join(home, ".filmdex")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "filmdex.db")
}
