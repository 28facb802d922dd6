package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/graphacademy/journey/internal/app"
	"github.com/graphacademy/journey/internal/config"
	"github.com/graphacademy/journey/internal/course"
	"github.com/graphacademy/journey/internal/course/cache"
	"github.com/graphacademy/journey/internal/logging"
	"github.com/graphacademy/journey/internal/mission"
	"github.com/graphacademy/journey/internal/progress"
	"github.com/graphacademy/journey/internal/transport/httptransport"
)

func main() {
	cfg := config.Load()
	logging.Init(logging.ParseLevel(cfg.LogLevel), cfg.LogFormat)

	catalog := mission.DefaultCatalog()
	if cfg.CatalogPath != "" {
		loaded, err := mission.LoadCatalog(cfg.CatalogPath)
		if err != nil {
			log.Fatalf("load catalog %s: %v", cfg.CatalogPath, err)
		}
		catalog = loaded
	}

	opts := []app.Option{
		app.WithCourseCache(cache.NewInMemory(cfg.CourseCacheMax)),
		app.WithDebounce(cfg.Debounce()),
	}

	if cfg.CoursePath != "" {
		dot, err := os.ReadFile(cfg.CoursePath)
		if err != nil {
			log.Fatalf("read course %s: %v", cfg.CoursePath, err)
		}
		c, err := course.Compile(string(dot))
		if err != nil {
			log.Fatalf("compile course %s: %v", cfg.CoursePath, err)
		}
		opts = append(opts, app.WithCourse(c))
	}

	if cfg.ProgressDSN != "" {
		pool, err := pgxpool.New(context.Background(), cfg.ProgressDSN)
		if err != nil {
			log.Fatalf("connect progress store: %v", err)
		}
		defer pool.Close()

		store := progress.NewPgStore(pool)
		if err := store.EnsureTable(context.Background()); err != nil {
			log.Fatalf("prepare progress store: %v", err)
		}
		opts = append(opts, app.WithProgressStore(store))
	}

	listener := app.NewAsyncListener(app.NewLogListener(), cfg.ObsBuffer)
	defer listener.Close()
	opts = append(opts, app.WithListener(listener))

	svc := app.NewService(catalog, opts...)
	h := httptransport.NewHandler(svc)

	log.Printf("listening on %s", cfg.HTTPAddr)
	log.Fatal(http.ListenAndServe(cfg.HTTPAddr, h.Mux()))
}
