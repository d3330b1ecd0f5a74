package util

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/pprof"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/relex/gotils/logger"
	"github.com/relex/ndjson-transformer/defs"
)

const metricsIndexPage = `
<html>
	<head>
		<title>ndjson-transformer metrics listener</title>
	</head>
	<body>
		<h1>Metrics listener for ndjson-transformer</h1>
		<ul>
			<li><a href='/debug/pprof/'>/debug/pprof/</a></li>
			<li><a href='/metrics'>/metrics</a></li>
		</ul>
	</body>
</html>`

// NewMetricsHandler creates a HTTP handler serving metrics from the gatherer and pprof debug information
func NewMetricsHandler(gatherer prometheus.Gatherer) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, metricsIndexPage)
	})
	return mux
}

// LaunchMetricsListener starts a HTTP server for Prometheus metrics in background
func LaunchMetricsListener(address string, gatherer prometheus.Gatherer) *http.Server {
	mlogger := logger.WithField(defs.LabelComponent, "MetricsListener")
	server := &http.Server{
		Addr:    address,
		Handler: NewMetricsHandler(gatherer),
	}
	go func() {
		mlogger.Infof("listening on %s for metrics...", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			mlogger.Error("Prometheus listener error: ", err)
		}
	}()
	return server
}
