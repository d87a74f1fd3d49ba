package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	_ "github.com/lintang-b-s/roadnav/docs"
	"github.com/lintang-b-s/roadnav/pkg/engine"
	"github.com/lintang-b-s/roadnav/pkg/kv"
	"github.com/lintang-b-s/roadnav/pkg/logger"
	"github.com/lintang-b-s/roadnav/pkg/routecache"
	"github.com/lintang-b-s/roadnav/pkg/server/rest"
	"github.com/lintang-b-s/roadnav/pkg/server/rest/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

var (
	listenAddr = flag.String("listenaddr", ":5000", "server listen address")
	graphFile  = flag.String("f", "", "graph json file loaded at startup, see cmd/preprocessing")
	dbDir      = flag.String("db", "./roadnav_db", "badger directory for saved graphs, empty disables saving")
	cacheDir   = flag.String("cachedir", "./roadnav_cache", "pebble directory for the route cache, empty disables caching")
	traceSteps = flag.Int("tracesteps", 5000, "maximum number of search steps recorded by /api/route/trace")
)

//	@title			roadnav API
//	@version		1.0
//	@description	interactive shortest path engine over a road network with blocked and congested roads.

//	@contact.name	lintang birda saputra

//	@license.name	GNU Affero General Public License v3.0
//	@license.url	https://www.gnu.org/licenses/gpl-3.0.en.html

// @host		localhost:5000
// @BasePath	/api
// @schemes	http
func main() {
	flag.Parse()

	log, err := logger.New()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	if err := run(log); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

func run(log *zap.Logger) error {
	eng := engine.NewEngine(log)
	if *graphFile != "" {
		data, err := os.ReadFile(*graphFile)
		if err != nil {
			return fmt.Errorf("read graph file: %w", err)
		}
		if err := eng.LoadGraph(data); err != nil {
			return fmt.Errorf("load graph file %s: %w", *graphFile, err)
		}
		st := eng.Stats()
		log.Info("graph loaded", zap.String("file", *graphFile), zap.Int("nodes", st.Nodes),
			zap.Int("edges", st.Edges))
	}

	var store service.SnapshotStore
	if *dbDir != "" {
		kvDB, err := kv.OpenKVDB(*dbDir, log)
		if err != nil {
			return err
		}
		defer kvDB.Close()
		store = kvDB
	}

	var cache service.RouteCache
	if *cacheDir != "" {
		rc, err := routecache.Open(*cacheDir, log)
		if err != nil {
			return err
		}
		defer rc.Close()
		cache = rc
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := rest.NewMetrics(reg)

	navigatorSvc := service.NewNavigationService(eng, store, cache, log, *traceSteps)
	navigatorSvc.SetRouteObserver(m)

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(rest.PromeHttpMiddleware(m)) // prometheus http middleware
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Mount("/debug", middleware.Profiler())

	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("http://localhost:5000/swagger/doc.json"), //The url pointing to API definition
	))

	rest.NavigatorRouter(r, navigatorSvc, log)

	srv := &http.Server{
		Addr:              *listenAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("server started", zap.String("addr", *listenAddr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
