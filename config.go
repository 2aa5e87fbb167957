package main

import (
	"log"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	BackendProvider string `yaml:"backend_provider"` // "ollama" or "anthropic"
	OllamaHost      string `yaml:"ollama_host"`
	AnthropicAPIKey string `yaml:"anthropic_api_key"`
	AnthropicModel  string `yaml:"anthropic_model"`

	Port         int    `yaml:"port"`
	DefaultModel string `yaml:"default_model"`

	DBPath         string `yaml:"db_path"`
	AnalysisLogDir string `yaml:"analysis_log_dir"`
	CacheCapacity  int    `yaml:"cache_capacity"`

	EvalConcurrency int    `yaml:"eval_concurrency"`
	EvalSyntheticN  int    `yaml:"eval_synthetic_count"`
	EvalReportDir   string `yaml:"eval_report_dir"`
	EvalSchedule    string `yaml:"eval_schedule"` // cron expression; empty disables
	EvalServerURL   string `yaml:"eval_server_url"`
	SlackBotToken   string `yaml:"slack_bot_token"`
	SlackChannelID  string `yaml:"slack_channel_id"`
}

func LoadConfig() Config {
	var cfg Config

	// Load from config.yaml if it exists
	configPath := "config.yaml"
	if envPath := os.Getenv("CONFIG_PATH"); envPath != "" {
		configPath = envPath
	}
	if data, err := os.ReadFile(configPath); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			log.Fatalf("Error parsing %s: %v", configPath, err)
		}
		log.Printf("Loaded config from %s", configPath)
	}

	// Env vars override YAML values
	envOverride(&cfg.BackendProvider, "BACKEND_PROVIDER")
	envOverride(&cfg.OllamaHost, "OLLAMA_HOST")
	envOverride(&cfg.AnthropicAPIKey, "ANTHROPIC_API_KEY")
	envOverride(&cfg.AnthropicModel, "ANTHROPIC_MODEL")
	envOverrideInt(&cfg.Port, "PORT")
	envOverride(&cfg.DefaultModel, "DEFAULT_MODEL")
	envOverride(&cfg.DBPath, "DB_PATH")
	envOverride(&cfg.AnalysisLogDir, "ANALYSIS_LOG_DIR")
	envOverrideInt(&cfg.CacheCapacity, "CACHE_CAPACITY")
	envOverrideInt(&cfg.EvalConcurrency, "EVAL_CONCURRENCY")
	envOverrideInt(&cfg.EvalSyntheticN, "EVAL_SYNTHETIC_COUNT")
	envOverride(&cfg.EvalReportDir, "EVAL_REPORT_DIR")
	envOverride(&cfg.EvalSchedule, "EVAL_SCHEDULE")
	envOverride(&cfg.EvalServerURL, "EVAL_SERVER_URL")
	envOverride(&cfg.SlackBotToken, "SLACK_BOT_TOKEN")
	envOverride(&cfg.SlackChannelID, "SLACK_CHANNEL_ID")

	// Defaults
	if cfg.BackendProvider == "" {
		cfg.BackendProvider = "ollama"
	}
	if cfg.OllamaHost == "" {
		cfg.OllamaHost = "http://localhost:11434"
	}
	if cfg.Port == 0 {
		cfg.Port = 8765
	}
	if cfg.DefaultModel == "" {
		cfg.DefaultModel = "dolphin-mistral:latest"
	}
	if cfg.DBPath == "" {
		cfg.DBPath = "./shoulderd.db"
	}
	if cfg.AnalysisLogDir == "" {
		cfg.AnalysisLogDir = "./analyses"
	}
	if cfg.CacheCapacity == 0 {
		cfg.CacheCapacity = 100
	}
	if cfg.EvalConcurrency == 0 {
		cfg.EvalConcurrency = 5
	}
	if cfg.EvalSyntheticN == 0 {
		cfg.EvalSyntheticN = 50
	}
	if cfg.EvalReportDir == "" {
		cfg.EvalReportDir = "./reports"
	}
	if cfg.EvalServerURL == "" {
		cfg.EvalServerURL = "http://localhost:8765"
	}

	// Validate
	switch cfg.BackendProvider {
	case "ollama":
		if !strings.HasPrefix(cfg.OllamaHost, "http://") && !strings.HasPrefix(cfg.OllamaHost, "https://") {
			log.Fatalf("invalid ollama_host '%s': must be an http(s) URL", cfg.OllamaHost)
		}
	case "anthropic":
		if cfg.AnthropicAPIKey == "" {
			log.Fatalf("anthropic_api_key is required when backend_provider=anthropic")
		}
	default:
		log.Fatalf("backend_provider must be 'ollama' or 'anthropic', got '%s'", cfg.BackendProvider)
	}
	if cfg.Port < 1 || cfg.Port > 65535 {
		log.Fatalf("invalid port '%d'", cfg.Port)
	}
	if cfg.CacheCapacity < 1 {
		log.Fatalf("invalid cache_capacity '%d': must be >= 1", cfg.CacheCapacity)
	}
	if cfg.EvalConcurrency < 1 {
		log.Fatalf("invalid eval_concurrency '%d': must be >= 1", cfg.EvalConcurrency)
	}
	if cfg.SlackChannelID != "" && cfg.SlackBotToken == "" {
		log.Fatalf("slack_bot_token is required when slack_channel_id is set")
	}

	return cfg
}

func envOverride(field *string, envKey string) {
	if val := os.Getenv(envKey); val != "" {
		*field = val
	}
}

func envOverrideInt(field *int, envKey string) {
	if val := os.Getenv(envKey); val != "" {
		parsed, err := strconv.Atoi(val)
		if err != nil {
			log.Fatalf("invalid %s '%s': %v", envKey, val, err)
		}
		*field = parsed
	}
}
