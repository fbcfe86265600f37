package main

import (
	"flag"
	"fmt"
	"os"

	"go-leave/internal/config"
	"go-leave/internal/shared/connection"
	"go-leave/internal/shared/database"
	"go-leave/internal/shared/logger"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func usage() {
	fmt.Fprintln(os.Stderr, "usage: migrate [-config path] up | down [-steps n] | version")
	flag.PrintDefaults()
}

func main() {
	configPath := flag.String("config", "", "path to config file")
	steps := flag.Int("steps", 1, "number of migrations to roll back with down")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() != 1 {
		usage()
		os.Exit(2)
	}

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

	gormDB, err := connection.ConnectGORMWithRetry(cfg.Database, log)
	if err != nil {
		log.Fatal("connect database failed", zap.Error(err))
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		log.Fatal("get sql.DB failed", zap.Error(err))
	}
	defer sqlDB.Close()

	switch flag.Arg(0) {
	case "up":
		err = database.RunMigrations(sqlDB, log)
	case "down":
		err = database.RollbackMigrations(sqlDB, *steps, log)
	case "version":
		var (
			v     uint
			dirty bool
		)
		v, dirty, err = database.MigrationVersion(sqlDB)
		if err == nil {
			log.Info("current migration version", zap.Uint("version", v), zap.Bool("dirty", dirty))
		}
	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		log.Fatal("migration failed", zap.String("command", flag.Arg(0)), zap.Error(err))
	}
}
