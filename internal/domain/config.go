package domain

import "time"

// Config represents the application configuration
type Config struct {
	Input        InputConfig        `mapstructure:"input"`
	Download     DownloadConfig     `mapstructure:"download"`
	Browser      BrowserConfig      `mapstructure:"browser"`
	Uploader     UploaderConfig     `mapstructure:"uploader"`
	History      HistoryConfig      `mapstructure:"history"`
	Notification NotificationConfig `mapstructure:"notification"`
	Logging      LoggingConfig      `mapstructure:"logging"`
}

// InputConfig contains CSV input configuration
type InputConfig struct {
	CSVPath      string `mapstructure:"csv_path"`
	TemplatePath string `mapstructure:"template_path"`
}

// DownloadConfig contains download-related configuration
type DownloadConfig struct {
	OutputDir   string        `mapstructure:"output_dir"`
	HTTPTimeout time.Duration `mapstructure:"http_timeout"`
	UserAgent   string        `mapstructure:"user_agent"`
}

// BrowserConfig contains headless browser configuration
type BrowserConfig struct {
	Headless          bool          `mapstructure:"headless"`
	ExecPath          string        `mapstructure:"exec_path"` // empty: let chromedp find Chrome
	UserAgent         string        `mapstructure:"user_agent"`
	NavigationTimeout time.Duration `mapstructure:"navigation_timeout"`
	VideoWaitTimeout  time.Duration `mapstructure:"video_wait_timeout"`
	NoSandbox         bool          `mapstructure:"no_sandbox"`
}

// UploaderConfig describes the external upload tool shown in the run report
type UploaderConfig struct {
	Dir      string `mapstructure:"dir"`
	StartCmd string `mapstructure:"start_cmd"`
	URL      string `mapstructure:"url"`
}

// HistoryConfig contains run history configuration
type HistoryConfig struct {
	Enabled      bool   `mapstructure:"enabled"`
	DatabasePath string `mapstructure:"database_path"`
}

// NotificationConfig contains notification-related configuration
type NotificationConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Sound   bool   `mapstructure:"sound"`
	Method  string `mapstructure:"method"` // osascript, notify-send
}

// LoggingConfig contains logging-related configuration
type LoggingConfig struct {
	Level      string `mapstructure:"level"`       // debug, info, warn, error
	Format     string `mapstructure:"format"`      // json, console
	OutputPath string `mapstructure:"output_path"` // stdout, stderr, or file path
	LogsDir    string `mapstructure:"logs_dir"`    // categorized event logs; empty disables
}

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/114.0.0.0 Safari/537.36"

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	return &Config{
		Input: InputConfig{
			CSVPath:      "urls.csv",
			TemplatePath: "enhanced_urls.csv",
		},
		Download: DownloadConfig{
			OutputDir:   "multi-uploader/videos",
			HTTPTimeout: 5 * time.Minute,
			UserAgent:   defaultUserAgent,
		},
		Browser: BrowserConfig{
			Headless:          true,
			UserAgent:         defaultUserAgent,
			NavigationTimeout: 30 * time.Second,
			VideoWaitTimeout:  30 * time.Second,
		},
		Uploader: UploaderConfig{
			Dir:      "multi-uploader",
			StartCmd: "npm run web",
			URL:      "http://localhost:3000",
		},
		History: HistoryConfig{
			Enabled:      false,
			DatabasePath: "$HOME/.reel-extract/history.db",
		},
		Notification: NotificationConfig{
			Enabled: false,
			Sound:   false,
			Method:  "notify-send",
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "console",
			OutputPath: "stdout",
		},
	}
}
