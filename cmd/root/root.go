// Package root contains the root command and the shared wiring that every
// subcommand builds on: configuration, logging, and the extraction pipeline.
package root

import (
	"context"
	"fmt"

	"taxmaster/statement-extractor/internal/banks"
	"taxmaster/statement-extractor/internal/config"
	"taxmaster/statement-extractor/internal/logging"
	"taxmaster/statement-extractor/internal/pdfreader"
	"taxmaster/statement-extractor/internal/pipeline"
	"taxmaster/statement-extractor/internal/refiner"

	"github.com/spf13/cobra"
)

// CommonFlags holds the flags shared across subcommands.
type CommonFlags struct {
	Input  string
	Output string
}

var (
	// Log is the shared logger instance for commands. Replaced with the
	// configured adapter in PersistentPreRunE.
	Log logging.Logger = logging.NewLogrusAdapter("info", "text")

	// AppConfig is the loaded configuration, available after PersistentPreRunE.
	AppConfig *config.Config

	// SharedFlags are the persistent flags common to all commands.
	SharedFlags = CommonFlags{}

	// Cmd is the root command.
	Cmd = &cobra.Command{
		Use:   "statement-extractor",
		Short: "Extract transactions from Nigerian bank statement PDFs.",
		Long: `statement-extractor turns bank statement PDFs into structured JSON.
It reconstructs transaction rows from the PDF text layout, optionally refines
ambiguous rows with Gemini, and reports a debit/credit summary.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to statement-extractor!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config.LoadEnv()

			cfg, err := config.Initialize()
			if err != nil {
				return err
			}
			AppConfig = cfg
			Log = logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format)
			return nil
		},
	}
)

// Init registers the persistent flags on the root command.
func Init() {
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Input, "input", "i", "", "Input PDF file")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Output, "output", "o", "", "Output CSV file")
}

// GetConfig returns the loaded configuration, or nil before initialization.
func GetConfig() *config.Config {
	return AppConfig
}

// BuildPipeline assembles the extraction pipeline from the loaded
// configuration. The returned cleanup function releases the model client and
// must be called when the pipeline is no longer needed.
func BuildPipeline(ctx context.Context) (*pipeline.Pipeline, func(), error) {
	if AppConfig == nil {
		return nil, nil, fmt.Errorf("configuration not initialized")
	}

	registry := banks.DefaultRegistry()
	if AppConfig.Extract.CalibrationFile != "" {
		loaded, err := banks.LoadRegistry(AppConfig.Extract.CalibrationFile)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load calibration file: %w", err)
		}
		registry = loaded
		Log.Info("Loaded column calibrations",
			logging.Field{Key: logging.FieldFilename, Value: AppConfig.Extract.CalibrationFile})
	}

	cleanup := func() {}
	var rowRefiner pipeline.RowRefiner
	if AppConfig.AI.Enabled {
		client, err := refiner.NewGeminiClient(ctx, AppConfig.AI.APIKey, AppConfig.AI.Model)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create Gemini client: %w", err)
		}
		cleanup = func() {
			_ = client.Close()
		}
		rowRefiner = refiner.New(client, AppConfig.AI.Model, Log)
		Log.Info("AI refinement enabled",
			logging.Field{Key: logging.FieldModel, Value: AppConfig.AI.Model})
	} else {
		Log.Warn("AI refinement disabled, ambiguous rows will be dropped")
	}

	p := pipeline.New(pdfreader.NewLayoutExtractor(), rowRefiner, registry, Log)
	return p, cleanup, nil
}
