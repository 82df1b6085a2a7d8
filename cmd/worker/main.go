package main

import (
	"context"
	"time"

	"buildlens/internal/activities"
	"buildlens/internal/config"
	"buildlens/internal/storage"
	"buildlens/internal/workflows"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/worker"
)

func main() {
	_ = godotenv.Load(".env")
	cfg := config.Load()
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	c, err := client.Dial(client.Options{HostPort: cfg.TemporalAddress})
	if err != nil {
		log.Fatal(err)
	}
	defer c.Close()

	w := worker.New(c, cfg.TemporalTaskQueue, worker.Options{})
	workflows.Register(w)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	db, err := storage.NewDB(ctx, cfg.PostgresURL)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()
	if err := db.EnsureSchema(ctx); err != nil {
		log.Fatal(err)
	}
	a, err := activities.New(cfg, db, log)
	if err != nil {
		log.Fatal(err)
	}
	activities.Register(w, a)

	log.WithFields(logrus.Fields{
		"temporal":  cfg.TemporalAddress,
		"queue":     cfg.TemporalTaskQueue,
		"providers": cfg.LLMProviders,
	}).Info("buildlens worker started")
	if err := w.Run(worker.InterruptCh()); err != nil {
		log.Fatal(err)
	}
}
