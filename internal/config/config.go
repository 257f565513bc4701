package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"jobposting/internal/budget"
	"jobposting/internal/llm"
	"jobposting/internal/sheet"
)

// FileName 設定ファイル名
const FileName = "config.toml"

// HistoryDBName 履歴 DB のファイル名
const HistoryDBName = "jobposting.db"

// 履歴ストアの種類
const (
	HistoryBackendSQLite = "sqlite"
	HistoryBackendMemory = "memory"
)

// ErrConfiguration 設定不備（LLM 呼び出し前に検出）
var ErrConfiguration = errors.New("configuration error")

// AppConfig アプリケーション設定
type AppConfig struct {
	Server ServerConfig  `toml:"server"`
	Data   DataConfig    `toml:"data"`
	LLM    llm.Config    `toml:"llm"`
	Budget budget.Guard  `toml:"budget"`
	Sheet  sheet.Markers `toml:"sheet"`
	Prompt PromptConfig  `toml:"prompt"`
	Log    LogConfig     `toml:"log"`
}

// ServerConfig サーバ設定
type ServerConfig struct {
	Port        int  `toml:"port"`
	DevMode     bool `toml:"dev_mode"`
	MaxUploadMB int  `toml:"max_upload_mb"`
}

// DataConfig データ設定
type DataConfig struct {
	DataDir      string `toml:"data_dir"`
	HistoryLimit int    `toml:"history_limit"`
	// HistoryBackend sqlite（既定）または memory
	HistoryBackend string `toml:"history_backend"`
}

// PromptConfig プロンプト設定
type PromptConfig struct {
	// MediaPolicyPath 媒体ポリシー文書（テキスト）のパス。空なら既定文言
	MediaPolicyPath string `toml:"media_policy_path"`
}

// LogConfig ログ設定
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// LoadConfigInfo 設定読み込みのメタ情報
type LoadConfigInfo struct {
	Path          string
	FileFound     bool
	PortSpecified bool
	EnvFiles      []string
}

// DefaultConfig 既定の設定
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:        20262,
			DevMode:     false,
			MaxUploadMB: 20,
		},
		Data: DataConfig{
			DataDir:        "data",
			HistoryLimit:   50,
			HistoryBackend: HistoryBackendSQLite,
		},
		LLM: llm.Config{
			Provider:       "openai",
			TimeoutSeconds: 300,
		},
		Budget: budget.NewGuard(),
		Sheet:  sheet.DefaultMarkers(),
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

func isPortSpecifiedInToml(data []byte) bool {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return false
	}

	serverAny, ok := raw["server"]
	if !ok {
		return false
	}

	serverMap, ok := serverAny.(map[string]any)
	if !ok {
		return false
	}

	_, ok = serverMap["port"]
	return ok
}

// GetExeDir 実行ファイルのディレクトリ
func GetExeDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

func exeDirOrDot() string {
	dir, err := GetExeDir()
	if err != nil || dir == "" {
		return "."
	}
	return dir
}

// DefaultPath 実行ファイルと同じディレクトリの config.toml
func DefaultPath() string {
	return filepath.Join(exeDirOrDot(), FileName)
}

// LoadConfigWithInfo 実行ファイル横の config.toml から読み込む
func LoadConfigWithInfo() (*AppConfig, LoadConfigInfo, error) {
	return LoadConfigFrom("")
}

// LoadConfig 実行ファイル横の config.toml から読み込む
func LoadConfig() (*AppConfig, error) {
	config, _, err := LoadConfigWithInfo()
	return config, err
}

// LoadConfigFrom path の設定を読み込む（空なら実行ファイル横）
// 設定ファイルが無ければ既定値。.env は設定ファイルと同じディレクトリとカレントから読む
// 環境変数は設定ファイルより優先
func LoadConfigFrom(path string) (*AppConfig, LoadConfigInfo, error) {
	if path == "" {
		path = DefaultPath()
	}
	info := LoadConfigInfo{Path: path}
	config := DefaultConfig()

	info.EnvFiles = loadEnvFiles(filepath.Join(filepath.Dir(path), ".env"), ".env")

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		info.FileFound = true
		info.PortSpecified = isPortSpecifiedInToml(data)
		if err := toml.Unmarshal(data, config); err != nil {
			return nil, info, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	case os.IsNotExist(err):
	default:
		return nil, info, fmt.Errorf("failed to read %s: %w", path, err)
	}

	applyEnv(config, os.Getenv)
	return config, info, nil
}

// loadEnvFiles 存在する .env を読み込む（既存の環境変数は上書きしない）
func loadEnvFiles(candidates ...string) []string {
	seen := make(map[string]bool)
	loaded := make([]string, 0, len(candidates))
	for _, p := range candidates {
		abs, err := filepath.Abs(p)
		if err != nil || seen[abs] {
			continue
		}
		seen[abs] = true
		if _, err := os.Stat(abs); err != nil {
			continue
		}
		if err := godotenv.Load(abs); err == nil {
			loaded = append(loaded, abs)
		}
	}
	return loaded
}

// applyEnv 環境変数による上書き
func applyEnv(config *AppConfig, getenv func(string) string) {
	if v := strings.TrimSpace(getenv("JOBPOSTING_LLM_PROVIDER")); v != "" {
		config.LLM.Provider = v
	}
	if v := strings.TrimSpace(getenv("JOBPOSTING_LLM_MODEL")); v != "" {
		config.LLM.Model = v
	}
	if v := strings.TrimSpace(getenv("JOBPOSTING_LLM_BASE_URL")); v != "" {
		config.LLM.BaseURL = v
	}

	keyEnv := "OPENAI_API_KEY"
	if strings.EqualFold(config.LLM.Provider, "anthropic") {
		keyEnv = "ANTHROPIC_API_KEY"
	}
	if v := strings.TrimSpace(getenv(keyEnv)); v != "" {
		config.LLM.APIKey = v
	}
}

// Validate 設定値の検査
func (c *AppConfig) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("%w: server.port %d out of range", ErrConfiguration, c.Server.Port)
	}
	if c.Budget.Ceiling < 0 || c.Budget.TruncateLines < 0 {
		return fmt.Errorf("%w: budget values must not be negative", ErrConfiguration)
	}
	switch strings.ToLower(c.Data.HistoryBackend) {
	case "", HistoryBackendSQLite, HistoryBackendMemory:
	default:
		return fmt.Errorf("%w: data.history_backend %q (sqlite|memory)", ErrConfiguration, c.Data.HistoryBackend)
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "json", "console":
	default:
		return fmt.Errorf("%w: log.format %q (json|console)", ErrConfiguration, c.Log.Format)
	}
	return nil
}

// SaveConfigTo 設定を path に書き出す
func SaveConfigTo(config *AppConfig, path string) error {
	data, err := toml.Marshal(config)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ResolveDataDir data_dir の絶対パス（相対パスは実行ファイル基準）
func ResolveDataDir(config *AppConfig) string {
	if filepath.IsAbs(config.Data.DataDir) {
		return config.Data.DataDir
	}
	return filepath.Join(exeDirOrDot(), config.Data.DataDir)
}

// EnsureDataDir データディレクトリを作る
func EnsureDataDir(config *AppConfig) (string, error) {
	dataDir := ResolveDataDir(config)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return "", err
	}
	return dataDir, nil
}

// HistoryDBPath 履歴 DB のパス
func HistoryDBPath(dataDir string) string {
	return filepath.Join(dataDir, HistoryDBName)
}

// LoadMediaPolicy 媒体ポリシー文書を読む（未設定なら空文字）
// 相対パスは設定ファイルのディレクトリ基準
func LoadMediaPolicy(config *AppConfig, info LoadConfigInfo) (string, error) {
	p := strings.TrimSpace(config.Prompt.MediaPolicyPath)
	if p == "" {
		return "", nil
	}
	if !filepath.IsAbs(p) && info.Path != "" {
		p = filepath.Join(filepath.Dir(info.Path), p)
	}
	data, err := os.ReadFile(p)
	if err != nil {
		return "", fmt.Errorf("failed to read media policy: %w", err)
	}
	return string(data), nil
}
