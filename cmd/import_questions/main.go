package main

import (
	"encoding/json"
	"fmt"
	"os"

	"english-placement/internal/adapter"
	"english-placement/internal/cache"
	"english-placement/internal/config"
	"english-placement/internal/database"
	"english-placement/internal/domain"
	"english-placement/internal/logger"
	"english-placement/internal/repository"
	"english-placement/internal/service"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var rootCmd = &cobra.Command{
	Use:          "import_questions --file bank.xlsx",
	Short:        "Load an Excel question bank into the english_test_questions table",
	Long:         "Reads every sheet carrying a Question / Correct Response / Distractor header (or only --sheet) and upserts the rows keyed on question text. Prints a JSON report.",
	SilenceUsage: true,
	RunE:         runImport,
}

func init() {
	rootCmd.Flags().String("file", "", "Path to the .xlsx workbook (required)")
	rootCmd.Flags().String("sheet", "", "Only read this sheet")
	rootCmd.Flags().Bool("dry-run", false, "Parse and report without writing")
	_ = rootCmd.MarkFlagRequired("file")
}

func runImport(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("file")
	sheet, _ := cmd.Flags().GetString("sheet")
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := logger.Initialize(cfg.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()
	log := logger.Get()

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	var repo domain.QuestionRepository
	if dryRun {
		repo = repository.NewMemoryQuestionBank()
	} else {
		if cfg.Bank.Driver != config.BankDriverOracle {
			return fmt.Errorf("importing requires the %s bank driver, got %q", config.BankDriverOracle, cfg.Bank.Driver)
		}
		db, err := database.NewSQLXOracleDB(cfg.GetDSN())
		if err != nil {
			return err
		}
		defer db.Close()
		repo = repository.NewQuestionDatabaseAdapter(db)
	}

	var cacheAdapter domain.Cache
	if !dryRun && cache.Enabled(cfg.Redis) {
		redisClient, err := cache.NewRedisClient(cmd.Context(), cfg.Redis)
		if err != nil {
			log.Warn("Redis unavailable; cached questions will expire on their own", zap.Error(err))
		} else {
			defer redisClient.Close()
			cacheAdapter = adapter.NewRedisCacheAdapter(redisClient)
		}
	}

	report, err := service.NewImportService(repo, cacheAdapter, log).ImportWorkbook(cmd.Context(), f, service.ImportOptions{
		Sheet:  sheet,
		DryRun: dryRun,
	})
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
