package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"atrezzo/internal/cache"
	"atrezzo/internal/config"
	"atrezzo/internal/crawler"
	"atrezzo/internal/db"
	"atrezzo/internal/export"
	"atrezzo/internal/logging"
	"atrezzo/internal/observability"
	"atrezzo/internal/repository"
)

var cfg = config.Load()

var (
	outPath    string
	preview    int
	store      bool
	useCache   bool
	metrics    bool
	allowExtra bool
	runID      string
)

// go run ./cmd/crawler --url "https://atrezzovazquez.es/shop.php?search_type=-1&page=" --out output/productos.csv
var rootCmd = &cobra.Command{
	Use:          "crawler",
	Short:        "Extracts the product catalog into one table.",
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	f := rootCmd.Flags()
	f.StringVar(&cfg.CatalogURL, "url", cfg.CatalogURL, "catalog URL the page number is appended to")
	f.StringVar(&cfg.SiteRoot, "site-root", cfg.SiteRoot, "root that relative image sources are resolved against")
	f.IntVar(&cfg.FirstPage, "first", cfg.FirstPage, "first page index")
	f.IntVar(&cfg.MaxPages, "pages", cfg.MaxPages, "number of pages to walk")
	f.IntVar(&cfg.WorkerCount, "workers", cfg.WorkerCount, "pages fetched concurrently")
	f.DurationVar(&cfg.RequestTimeout, "timeout", cfg.RequestTimeout, "per-request timeout")
	f.DurationVar(&cfg.RequestDelay, "delay", cfg.RequestDelay, "minimum spacing between requests")
	f.IntVar(&cfg.LayoutSegments, "segments", cfg.LayoutSegments, "expected text lines per product card")
	f.BoolVar(&allowExtra, "allow-extra", cfg.LayoutExtra, "accept cards with more lines than expected")
	f.StringVar(&outPath, "out", "", "write the table to a .csv or .xlsx file")
	f.IntVar(&preview, "preview", 10, "rows to print as a table (0 prints all, -1 none)")
	f.BoolVar(&store, "store", false, "save the rows to Postgres (DATABASE_URL)")
	f.BoolVar(&useCache, "cache", false, "cache fetched pages in Redis (REDIS_URL)")
	f.BoolVar(&metrics, "metrics", false, "serve Prometheus metrics on METRICS_PORT")
	f.StringVar(&runID, "run", "", "read the rows of a stored run back from Postgres instead of crawling")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, _ []string) error {
	logger, err := logging.Setup(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer logger.Sync()

	if runID != "" {
		return replay(cmd.Context(), runID)
	}

	if cfg.CatalogURL == "" {
		return errors.New("missing catalog URL (--url or CATALOG_URL)")
	}

	layout := crawler.DefaultLayout()
	layout.Segments = cfg.LayoutSegments
	layout.AllowExtra = allowExtra
	if err := layout.Validate(); err != nil {
		return err
	}

	extractor := crawler.NewExtractor(cfg.SiteRoot)

	var fetcher crawler.Fetcher = crawler.NewHTTPFetcher(cfg.RequestTimeout, cfg.RequestDelay)
	if useCache {
		pages := cache.New(cfg.RedisURL, cfg.CacheTTL)
		defer pages.Close()
		fetcher = crawler.NewCachedFetcher(fetcher, pages, extractor)
	}

	if metrics {
		observability.Start(cfg.MetricsPort)
	}

	pager := crawler.NewPager(fetcher, extractor, cfg.CatalogURL)
	pager.Layout = layout
	pager.FirstPage = cfg.FirstPage
	pager.LastPage = cfg.LastPage()
	pager.Workers = cfg.WorkerCount
	pager.OnPage = func(page, rows int) {
		fmt.Fprintf(os.Stderr, "page %d/%d: %d products\n", page, pager.LastPage, rows)
	}

	res := pager.Run(cmd.Context())
	report(res)

	if err := consume(context.WithoutCancel(cmd.Context()), res); err != nil {
		return err
	}
	if res.State == crawler.Failed {
		return fmt.Errorf("crawl failed at page %d: %w", res.Page, res.Err)
	}
	return nil
}

func report(res crawler.Result) {
	var fe *crawler.FetchError
	switch {
	case res.Reason == crawler.NoMoreProducts:
		fmt.Fprintf(os.Stderr, "page %d has no products: end of catalog\n", res.Page)
	case errors.As(res.Err, &fe) && fe.StatusCode != 0:
		fmt.Fprintf(os.Stderr, "connection error on page %d\nstatus code: %d\n", res.Page, fe.StatusCode)
	case res.Err != nil:
		fmt.Fprintf(os.Stderr, "page %d: %v\n", res.Page, res.Err)
	}
	fmt.Fprintf(os.Stderr, "%s (%s): %d products\n", res.State, res.Reason, len(res.Products))
}

// consume hands the collected rows, partial or not, to the requested outputs.
func consume(ctx context.Context, res crawler.Result) error {
	if preview >= 0 {
		export.Preview(os.Stdout, res.Products, preview)
	}

	if outPath != "" {
		if err := export.Write(outPath, res.Products); err != nil {
			return err
		}
		zap.L().Info("table written", zap.String("path", outPath), zap.Int("rows", len(res.Products)))
	}

	if store {
		pool, err := db.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer pool.Close()

		repo := &repository.ProductRepository{DB: pool}
		if err := repo.EnsureSchema(ctx); err != nil {
			return err
		}
		runID := uuid.New()
		if err := repo.SaveBatch(ctx, runID, res.Products); err != nil {
			return err
		}
		zap.L().Info("rows stored", zap.String("run_id", runID.String()), zap.Int("rows", len(res.Products)))
	}
	return nil
}

// replay loads a stored run and sends it to the same outputs as a fresh crawl.
func replay(ctx context.Context, id string) error {
	rid, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid run id %q: %w", id, err)
	}

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer pool.Close()

	products, err := (&repository.ProductRepository{DB: pool}).ListRun(ctx, rid)
	if err != nil {
		return fmt.Errorf("list run %s: %w", rid, err)
	}
	fmt.Fprintf(os.Stderr, "run %s: %d products\n", rid, len(products))

	store = false
	return consume(ctx, crawler.Result{State: crawler.Done, Products: products})
}
