package main

import (
	"net/http"

	"buildlens/internal/api"
	"buildlens/internal/config"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	_ = godotenv.Load(".env")
	cfg := config.Load()
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	h := api.NewServer(cfg, log)
	log.WithFields(logrus.Fields{
		"addr":      cfg.APIAddr,
		"providers": cfg.LLMProviders,
	}).Info("buildlens api listening")
	if err := http.ListenAndServe(cfg.APIAddr, h.Routes()); err != nil {
		log.Fatal(err)
	}
}
