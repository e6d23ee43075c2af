package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"yakugen/adapters/instructions"
	"yakugen/adapters/llm"
	"yakugen/adapters/postgres"
	"yakugen/adapters/scoring"
	"yakugen/app"
	"yakugen/domain/mahjong"
	"yakugen/internal/config"
	"yakugen/internal/report"
	"yakugen/internal/rng"
	"yakugen/ports"
)

func main() {
	// Missing .env is fine; environment variables may be set directly.
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "yakugen",
		Short: "Mahjong scoring-puzzle generator with repeated-sampling validation",
	}

	rootCmd.AddCommand(
		newGenerateCmd(),
		newSampleCmd(),
		newBatchCmd(),
		newValidateCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate [instruction]",
		Short: "Generate a single puzzle question without validation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			generator, err := llm.NewQuestionAdapter(llm.Config{
				Model:       cfg.AI.OpenAIModel,
				APIKey:      cfg.AI.OpenAIKey,
				BaseURL:     cfg.AI.BaseURL,
				Temperature: cfg.AI.Temperature,
				MaxTokens:   cfg.AI.MaxTokens,
				Timeout:     cfg.AI.Timeout,
			})
			if err != nil {
				return err
			}

			question, err := generator.Generate(cmd.Context(), app.ParseInstruction(args[0]))
			if err != nil {
				return err
			}
			fmt.Println(question)
			return nil
		},
	}
	return cmd
}

func newSampleCmd() *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "sample [instruction]",
		Short: "Generate candidates for one instruction and pick a winner",
		Long: `Run the full candidate pipeline N times for a single instruction and
print the sampling result as JSON.

Example: yakugen sample "create a tanyao hand worth 5200 points" --count 5`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if count == 0 {
				count = cfg.Sampling.CandidateCount
			}

			sampler, _, err := buildSampler(cfg)
			if err != nil {
				return err
			}

			result, err := sampler.Sample(cmd.Context(), app.ParseInstruction(args[0]), count)
			if err != nil {
				return err
			}
			return printJSON(result)
		},
	}

	cmd.Flags().IntVar(&count, "count", 0, "Candidates per instruction (default from CANDIDATE_COUNT)")
	return cmd
}

func newBatchCmd() *cobra.Command {
	var count, sampleSize int
	var outputDir string
	var judge bool

	cmd := &cobra.Command{
		Use:   "batch [instruction-file]",
		Short: "Run the sampler over a CSV/XLSX instruction list",
		Long: `Load instructions from a file, sample candidates for each, and write the
batch artifacts (raw payload, selected puzzles, markdown and HTML reports).

Example: yakugen batch instructions.csv --count 5 --sample-size 20 --judge`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if count == 0 {
				count = cfg.Sampling.CandidateCount
			}
			path := cfg.Paths.InstructionFile
			if len(args) > 0 {
				path = args[0]
			}
			if outputDir == "" {
				outputDir = cfg.Paths.OutputDir
			}

			texts, err := instructions.NewDataReader().Load(path)
			if err != nil {
				return err
			}
			sampler, source, err := buildSampler(cfg)
			if err != nil {
				return err
			}
			if sampleSize > 0 {
				texts = instructions.Sample(texts, sampleSize, source.Stream("instruction-subset", 0))
			}

			coordinator, err := buildCoordinator(cfg, sampler, judge || cfg.Sampling.EnableJudge)
			if err != nil {
				return err
			}

			result, err := coordinator.RunBatch(cmd.Context(), app.ParseInstructions(texts), count)
			if err != nil {
				return err
			}

			paths, err := report.NewWriter(outputDir).WriteBatch(result)
			if err != nil {
				return err
			}
			for _, p := range paths {
				fmt.Println(p)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&count, "count", 0, "Candidates per instruction (default from CANDIDATE_COUNT)")
	cmd.Flags().IntVar(&sampleSize, "sample-size", 0, "Randomly sub-sample this many instructions (0 = all)")
	cmd.Flags().StringVar(&outputDir, "output", "", "Output directory (default from OUTPUT_DIR)")
	cmd.Flags().BoolVar(&judge, "judge", false, "Run the LLM compliance judge on selected candidates")
	return cmd
}

func newValidateCmd() *cobra.Command {
	var expectedScore int

	cmd := &cobra.Command{
		Use:   "validate [hand-file]",
		Short: "Classify a hand JSON file without any LLM calls",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			var hand mahjong.Hand
			if err := json.Unmarshal(data, &hand); err != nil {
				return fmt.Errorf("invalid hand JSON: %w", err)
			}

			classifier := app.NewClassifier(scoring.NewEngine())
			classification := classifier.Classify(cmd.Context(), &hand, expectedScore)
			return printJSON(classification)
		},
	}

	cmd.Flags().IntVar(&expectedScore, "expected-score", 0, "Expected score (0 disables the comparison)")
	return cmd
}

func buildSampler(cfg *config.Config) (*app.Sampler, ports.RNG, error) {
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
		return nil, nil, err
	}
	extractor, err := llm.NewExtractorAdapter(llmConfig)
	if err != nil {
		return nil, nil, err
	}

	pipeline := app.NewCandidatePipeline(generator, extractor, app.NewClassifier(scoring.NewEngine()))
	source := rng.NewSeededSource(cfg.Sampling.Seed)
	sampler := app.NewSampler(pipeline, source, app.SamplerConfig{
		MaxConcurrent: cfg.Sampling.MaxConcurrent,
		Timeout:       cfg.Sampling.InstructionTimeout,
	})
	return sampler, source, nil
}

func buildCoordinator(cfg *config.Config, sampler *app.Sampler, enableJudge bool) (*app.BatchCoordinator, error) {
	var judge ports.ComplianceJudge
	if enableJudge {
		j, err := llm.NewJudgeAdapter(llm.Config{
			Model:     cfg.AI.OpenAIModel,
			APIKey:    cfg.AI.OpenAIKey,
			BaseURL:   cfg.AI.BaseURL,
			MaxTokens: cfg.AI.MaxTokens,
			Timeout:   cfg.AI.Timeout,
		})
		if err != nil {
			return nil, err
		}
		judge = j
	}

	var repo ports.PuzzleRepository
	if cfg.Database.URL != "" {
		db, err := postgres.Connect(cfg.Database.URL)
		if err != nil {
			log.Printf("[CLI] WARNING: persistence disabled: %v", err)
		} else {
			repo = postgres.NewPuzzleRepository(db)
		}
	}

	return app.NewBatchCoordinator(sampler, judge, repo, app.BatchConfig{
		MaxParallel: cfg.Sampling.MaxParallelBatch,
	}), nil
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
