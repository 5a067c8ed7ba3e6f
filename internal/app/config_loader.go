package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/yourusername/reel-extract-go/internal/domain"
)

// EnvPrefix is the prefix of environment overrides, e.g. REELEXTRACT_DOWNLOAD_OUTPUT_DIR
const EnvPrefix = "REELEXTRACT"

// LoadConfig loads configuration from file and environment. With an empty
// configPath the standard locations are searched and a missing file is not
// an error.
func LoadConfig(configPath string) (*domain.Config, error) {
	// .env is optional; existing environment variables win
	_ = godotenv.Load()

	config := domain.DefaultConfig()

	v := viper.New()
	v.SetConfigType("yaml")

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath("./configs")
		v.AddConfigPath("$HOME/.reel-extract")
		v.AddConfigPath("/etc/reel-extract")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindEnvKeys(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	config = expandPaths(config)

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// bindEnvKeys registers every config key so AutomaticEnv applies during
// Unmarshal even when no config file mentions the key
func bindEnvKeys(v *viper.Viper) {
	keys := []string{
		"input.csv_path", "input.template_path",
		"download.output_dir", "download.http_timeout", "download.user_agent",
		"browser.headless", "browser.exec_path", "browser.user_agent",
		"browser.navigation_timeout", "browser.video_wait_timeout", "browser.no_sandbox",
		"uploader.dir", "uploader.start_cmd", "uploader.url",
		"history.enabled", "history.database_path",
		"notification.enabled", "notification.sound", "notification.method",
		"logging.level", "logging.format", "logging.output_path", "logging.logs_dir",
	}
	for _, key := range keys {
		_ = v.BindEnv(key)
	}
}

// expandPaths expands environment variables in path configurations
func expandPaths(config *domain.Config) *domain.Config {
	config.Input.CSVPath = expandPath(config.Input.CSVPath)
	config.Input.TemplatePath = expandPath(config.Input.TemplatePath)
	config.Download.OutputDir = expandPath(config.Download.OutputDir)
	config.Browser.ExecPath = expandPath(config.Browser.ExecPath)
	config.History.DatabasePath = expandPath(config.History.DatabasePath)
	config.Logging.LogsDir = expandPath(config.Logging.LogsDir)

	if config.Logging.OutputPath != "stdout" && config.Logging.OutputPath != "stderr" {
		config.Logging.OutputPath = expandPath(config.Logging.OutputPath)
	}

	return config
}

// expandPath expands environment variables and ~ in paths
func expandPath(path string) string {
	if path == "" {
		return path
	}

	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[2:])
		}
	}

	return os.ExpandEnv(path)
}

// validateConfig validates the configuration
func validateConfig(config *domain.Config) error {
	if config.Input.CSVPath == "" {
		return fmt.Errorf("input csv path not configured")
	}

	if config.Input.TemplatePath == "" {
		return fmt.Errorf("template path not configured")
	}

	if config.Download.OutputDir == "" {
		return fmt.Errorf("download output directory not configured")
	}

	if config.Download.HTTPTimeout <= 0 {
		return fmt.Errorf("download http timeout must be positive")
	}

	if config.Browser.NavigationTimeout <= 0 {
		return fmt.Errorf("browser navigation timeout must be positive")
	}

	if config.Browser.VideoWaitTimeout <= 0 {
		return fmt.Errorf("browser video wait timeout must be positive")
	}

	if config.History.Enabled && config.History.DatabasePath == "" {
		return fmt.Errorf("history database path not configured")
	}

	if config.Logging.Level == "" {
		config.Logging.Level = "info"
	}

	return nil
}
