package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"jobposting/internal/config"
	"jobposting/internal/logging"
	"jobposting/internal/server"
)

var (
	port       = flag.Int("port", 0, "サーバポート（config.toml に port が無い場合のみ有効）")
	devMode    = flag.Bool("dev", false, "開発モード（コンソールログ・gin debug）")
	dataDir    = flag.String("dataDir", "", "データディレクトリ（設定ファイルより優先）")
	configPath = flag.String("config", "", "設定ファイルのパス（既定: 実行ファイルと同じディレクトリの config.toml）")
)

func main() {
	flag.Parse()

	fmt.Println("==========================================")
	fmt.Println("  求人原稿ジェネレーター")
	fmt.Println("==========================================")

	cfg, info, err := config.LoadConfigFrom(*configPath)
	if err != nil {
		log.Printf("設定の読み込みに失敗したため既定値を使います: %v", err)
		cfg = config.DefaultConfig()
		info = config.LoadConfigInfo{}
	}

	if *port > 0 && !info.PortSpecified {
		cfg.Server.Port = *port
	}
	if *devMode {
		cfg.Server.DevMode = true
		cfg.Log.Format = "console"
	}
	if *dataDir != "" {
		cfg.Data.DataDir = *dataDir
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("設定エラー: %v", err)
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatalf("ロガーの初期化に失敗しました: %v", err)
	}
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	if info.FileFound {
		logger.Info("config loaded", zap.String("path", info.Path), zap.Strings("env_files", info.EnvFiles))
	}

	srv, err := server.NewServer(cfg, info, logger)
	if err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}
	if cfg.Data.HistoryBackend == config.HistoryBackendMemory {
		fmt.Println("履歴: メモリ（再起動で消えます）")
	} else {
		fmt.Printf("データディレクトリ: %s\n", config.ResolveDataDir(cfg))
	}

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	go func() {
		fmt.Printf("ポート %d で待ち受けます: http://localhost:%d/api/status\n", cfg.Server.Port, cfg.Server.Port)
		if err := srv.Run(addr); err != nil {
			logger.Fatal("server stopped", zap.Error(err))
		}
	}()

	fmt.Println("\nCtrl+C で停止します...")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	fmt.Println("\n停止しています...")
	if err := srv.Close(); err != nil {
		logger.Warn("failed to close store", zap.Error(err))
	}
}
