package main

import (
	"context"
	"flag"
	"os"
	"time"

	"readiness/internal/app"
	"readiness/internal/assessment"
	"readiness/internal/config"
	"readiness/internal/repository"
)

func main() {
	path := flag.String("file", "deploy/variants.yaml", "variant definition file")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}
	logger := cfg.NewLogger()

	f, err := os.Open(*path)
	if err != nil {
		logger.Error("failed to open variant file", "file", *path, "error", err)
		os.Exit(1)
	}
	defer f.Close()

	variants, err := loadVariants(f, assessment.NewFactory())
	if err != nil {
		logger.Error("invalid variant file", "file", *path, "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := app.ConnectMongo(ctx, cfg)
	if err != nil {
		logger.Error("mongo unavailable", "error", err)
		os.Exit(1)
	}
	defer client.Disconnect(ctx)

	repo := repository.NewVariantRepo(client.Database(cfg.MongoDatabase))
	for _, v := range variants {
		id, err := repo.Upsert(ctx, v)
		if err != nil {
			logger.Error("failed to upsert variant", "name", v.Name, "error", err)
			os.Exit(1)
		}
		logger.Info("variant seeded",
			"id", id,
			"name", v.Name,
			"type", v.AssessmentType,
			"weight", v.Weight,
			"active", v.Active,
		)
	}

	logger.Info("seed complete", "variants", len(variants))
}
