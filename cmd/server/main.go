package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/sirupsen/logrus"

	"github.com/kiwiland/railquery/internal/api"
	"github.com/kiwiland/railquery/internal/cache"
	"github.com/kiwiland/railquery/internal/config"
	"github.com/kiwiland/railquery/internal/db"
	"github.com/kiwiland/railquery/internal/edgelist"
	"github.com/kiwiland/railquery/internal/graph"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.FromFlagsServer()
	if err != nil {
		log.WithError(err).Fatal("load config")
	}

	var (
		g      *graph.Graph
		loader *edgelist.Loader
	)
	switch {
	case cfg.MySQLDSN != "":
		conn, err := sql.Open("mysql", cfg.MySQLDSN)
		if err != nil {
			log.WithError(err).Fatal("open mysql")
		}
		defer conn.Close()

		edges, err := db.Store{DB: conn}.LoadEdges()
		if err != nil {
			log.WithError(err).Fatal("load edges from mysql")
		}
		g, err = graph.New(edges)
		if err != nil {
			log.WithError(err).Fatal("build graph")
		}
		log.WithField("edges", len(edges)).Info("graph loaded from mysql")

	default:
		loader, err = edgelist.NewLoader(cfg.EdgeFile)
		if err != nil {
			log.WithError(err).Fatal("load edge file")
		}
		g = loader.Graph()
		log.WithFields(logrus.Fields{
			"file":     cfg.EdgeFile,
			"stations": g.StationCount(),
			"edges":    g.EdgeCount(),
		}).Info("graph loaded from file")
	}

	srv := api.New(g, cache.NewQueryCacheWithCap(cfg.CacheCapacity), log)

	if cfg.Watch && loader != nil {
		loader.OnSwap(srv.SwapGraph)
		stop, err := loader.Watch()
		if err != nil {
			log.WithError(err).Warn("edge watcher unavailable, live rebuild disabled")
		} else {
			defer stop()
			log.WithField("file", cfg.EdgeFile).Info("watching edge file")
		}
	}

	httpSrv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.WithField("addr", cfg.Addr).Info("railquery listening")
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down")

	shutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	_ = httpSrv.Shutdown(shutCtx)
}
