package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

var (
	PagesFetched = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "catalog_pages_fetched_total",
			Help: "Catalog pages downloaded",
		},
	)
	ProductsExtracted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "catalog_products_extracted_total",
			Help: "Product rows assembled from catalog pages",
		},
	)
	CrawlStops = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_crawl_stops_total",
			Help: "Finished crawls by stop reason",
		},
		[]string{"reason"},
	)
)

func Start(port string) {
	prometheus.MustRegister(PagesFetched, ProductsExtracted, CrawlStops)
	http.Handle("/metrics", promhttp.Handler())
	go func() {
		if err := http.ListenAndServe(":"+port, nil); err != nil {
			zap.L().Error("metrics server stopped", zap.Error(err))
		}
	}()
}
