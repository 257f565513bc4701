package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"jobposting/internal/config"
	"jobposting/internal/llm"
	"jobposting/internal/logging"
	"jobposting/internal/pipeline"
	"jobposting/internal/sheet"
)

// app サブコマンド共通の設定
type app struct {
	configPath string
	provider   string
	model      string
	logLevel   string

	cfg    *config.AppConfig
	info   config.LoadConfigInfo
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "jobposting-cli",
		Short: "Turn a hearing sheet into a job posting",
		Long: `jobposting-cli reads a hearing sheet workbook (.xlsx / .xlsm / .csv),
flattens the target sheet into text and runs the two LLM phases on it.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "Config file path (default: config.toml next to the executable)")
	rootCmd.PersistentFlags().StringVar(&a.provider, "provider", "", "LLM provider: openai, anthropic, fake")
	rootCmd.PersistentFlags().StringVar(&a.model, "model", "", "LLM model name")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "warn", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(
		newFlattenCmd(a),
		newTextifyCmd(a),
		newMapCmd(a),
		newGenerateCmd(a),
		newConfigCmd(a),
	)
	return rootCmd
}

func (a *app) load() error {
	cfg, info, err := config.LoadConfigFrom(a.configPath)
	if err != nil {
		return err
	}
	if a.provider != "" {
		cfg.LLM.Provider = a.provider
	}
	if a.model != "" {
		cfg.LLM.Model = a.model
	}
	cfg.Log.Level = a.logLevel
	cfg.Log.Format = "console"

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.info = info
	a.logger = logger
	return nil
}

// orchestrator 設定からオーケストレータを作る（API キーが無ければエラー）
func (a *app) orchestrator() (*pipeline.Orchestrator, error) {
	provider, err := llm.New(a.cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", config.ErrConfiguration, err)
	}
	policy, err := config.LoadMediaPolicy(a.cfg, a.info)
	if err != nil {
		return nil, err
	}
	return pipeline.New(provider, pipeline.Options{
		Model:       a.cfg.LLM.ModelOrDefault(),
		Guard:       a.cfg.Budget,
		MediaPolicy: policy,
	}, a.logger), nil
}

// extract ファイルを開いて対象シートをテキスト化する
func (a *app) extract(path string) (*sheet.Extraction, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	wb, err := sheet.OpenWorkbook(f, path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	defer wb.Close()

	return sheet.Extract(wb, a.cfg.Sheet)
}
