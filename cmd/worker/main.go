package main

import (
	"flag"

	"go-leave/internal/app"
	"go-leave/internal/config"
	"go-leave/internal/shared/logger"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	requeue := flag.Bool("requeue", false, "requeue leave events that exhausted their retries, then exit")
	flag.Parse()

	_ = godotenv.Load()
	cfg, err := config.Load(*configPath)
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		panic(err)
	}
	defer log.Sync()
	zap.ReplaceGlobals(log)

	if *requeue {
		if _, err := app.RequeueOutbox(cfg, log); err != nil {
			log.Fatal("requeue outbox failed", zap.Error(err))
		}
		return
	}

	if err := app.RunWorker(cfg, log); err != nil {
		log.Fatal("run worker failed", zap.Error(err))
	}
}
