package main

import (
	"log"

	"github.com/joho/godotenv"

	"yakugen/adapters/llm"
	"yakugen/adapters/postgres"
	"yakugen/adapters/scoring"
	"yakugen/app"
	"yakugen/internal/api"
	"yakugen/internal/config"
	"yakugen/internal/rng"
	"yakugen/ports"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	llmConfig := llm.Config{
		Model:       cfg.AI.OpenAIModel,
		APIKey:      cfg.AI.OpenAIKey,
		BaseURL:     cfg.AI.BaseURL,
		Temperature: cfg.AI.Temperature,
		MaxTokens:   cfg.AI.MaxTokens,
		Timeout:     cfg.AI.Timeout,
	}
	generator, err := llm.NewQuestionAdapter(llmConfig)
	if err != nil {
		log.Fatalf("failed to create question adapter: %v", err)
	}
	extractor, err := llm.NewExtractorAdapter(llmConfig)
	if err != nil {
		log.Fatalf("failed to create extractor adapter: %v", err)
	}

	var judge ports.ComplianceJudge
	if cfg.Sampling.EnableJudge {
		j, err := llm.NewJudgeAdapter(llmConfig)
		if err != nil {
			log.Fatalf("failed to create judge adapter: %v", err)
		}
		judge = j
	}

	var repo ports.PuzzleRepository
	if cfg.Database.URL != "" {
		db, err := postgres.Connect(cfg.Database.URL)
		if err != nil {
			log.Printf("WARNING: persistence disabled: %v", err)
		} else {
			defer db.Close()
			repo = postgres.NewPuzzleRepository(db)
		}
	}

	pipeline := app.NewCandidatePipeline(generator, extractor, app.NewClassifier(scoring.NewEngine()))
	sampler := app.NewSampler(pipeline, rng.NewSeededSource(cfg.Sampling.Seed), app.SamplerConfig{
		MaxConcurrent: cfg.Sampling.MaxConcurrent,
		Timeout:       cfg.Sampling.InstructionTimeout,
	})
	coordinator := app.NewBatchCoordinator(sampler, judge, repo, app.BatchConfig{
		MaxParallel: cfg.Sampling.MaxParallelBatch,
	})

	server := api.NewServer(sampler, coordinator, repo, api.Config{
		DefaultCandidateCount: cfg.Sampling.CandidateCount,
	})
	if err := server.ListenAndServe(":" + cfg.Server.Port); err != nil {
		log.Fatal("Server failed:", err)
	}
}
