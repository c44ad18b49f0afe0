package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"revtriage/calendar"
	"revtriage/config"
	"revtriage/db"
	"revtriage/exception"
	"revtriage/record"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	cfg := config.Load()
	logger := logrus.New()
	if cfg.LogJSON {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}

	thresholds, err := config.LoadThresholds(cfg.ThresholdsPath)
	if err != nil {
		log.Fatalf("load thresholds: %v", err)
	}

	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("bootstrap database pool: %v", err)
	}
	defer pool.Close()

	store := record.NewCachedStore(record.NewPGStore(pool), 30*time.Second)
	aggregator := exception.NewAggregator(thresholds).WithLogger(logger)
	runner := exception.NewRunner(store, aggregator)

	// One-shot triage sweep over the current quarter's deals.
	year, quarter := calendar.QuarterOf(time.Now())
	result, err := runner.Run(ctx, record.Filters{
		Kind:    record.KindDeal,
		Year:    year,
		Quarter: quarter,
	}, nil)
	if err != nil {
		log.Fatalf("triage sweep: %v", err)
	}

	for typ, count := range result.Counts {
		logger.WithFields(logrus.Fields{
			"type":  typ,
			"count": count,
		}).Info("exception count")
	}
	logger.WithFields(logrus.Fields{
		"records":  len(result.Reports),
		"failures": len(result.Failures),
	}).Info("triage sweep complete")
}
