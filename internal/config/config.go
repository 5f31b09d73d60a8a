package config

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"sceneforge/internal/llm"
)

const (
	DefaultAddr    = ":8085"
	DefaultTimeout = 60 * time.Second
)

// Config is everything the process reads from its environment.
type Config struct {
	GeminiKey  string
	OpenAIKey  string
	OllamaHost string
	Provider   string // auto, gemini, openai or ollama
	Model      string
	Addr       string
	CacheDir   string
	Timeout    time.Duration
}

// LoadEnv pulls a .env file into the process environment when one exists.
// Variables already set in the real environment keep their values.
func LoadEnv() {
	_ = godotenv.Load()
}

// FromEnv builds a Config from the current environment, applying defaults for
// anything unset.
func FromEnv() Config {
	cfg := Config{
		GeminiKey:  os.Getenv("GEMINI_API_KEY"),
		OpenAIKey:  os.Getenv("OPENAI_API_KEY"),
		OllamaHost: os.Getenv("OLLAMA_HOST"),
		Provider:   strings.ToLower(strings.TrimSpace(os.Getenv("SCENEFORGE_PROVIDER"))),
		Model:      os.Getenv("SCENEFORGE_MODEL"),
		Addr:       os.Getenv("SCENEFORGE_ADDR"),
		CacheDir:   os.Getenv("SCENEFORGE_CACHE_DIR"),
		Timeout:    DefaultTimeout,
	}
	if cfg.Provider == "" {
		cfg.Provider = "auto"
	}
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.CacheDir == "" {
		if home, err := os.UserHomeDir(); err == nil {
			cfg.CacheDir = filepath.Join(home, ".cache", "sceneforge")
		} else {
			cfg.CacheDir = filepath.Join(os.TempDir(), "sceneforge")
		}
	}
	if raw := os.Getenv("SCENEFORGE_TIMEOUT"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil && d > 0 {
			cfg.Timeout = d
		} else {
			log.Printf("ignoring invalid SCENEFORGE_TIMEOUT %q", raw)
		}
	}
	return cfg
}

// Client assembles the provider chain. An explicit provider is used alone,
// even when its credential is missing, so misconfiguration surfaces as a
// credential error instead of a silent switch. auto falls through gemini,
// openai, then ollama when OLLAMA_HOST is set; nil when nothing is
// configured.
func (c Config) Client() llm.Client {
	switch c.Provider {
	case "gemini":
		return llm.NewGemini(c.GeminiKey)
	case "openai":
		return llm.NewOpenAI(c.OpenAIKey)
	case "ollama":
		return llm.NewOllama(c.OllamaHost)
	}
	var clients []llm.Client
	if c.GeminiKey != "" {
		clients = append(clients, llm.NewGemini(c.GeminiKey))
	}
	if c.OpenAIKey != "" {
		clients = append(clients, llm.NewOpenAI(c.OpenAIKey))
	}
	if c.OllamaHost != "" {
		clients = append(clients, llm.NewOllama(c.OllamaHost))
	}
	return llm.Chain(clients...)
}

// HistoryPath is where the generation log lives, under the cache directory.
func (c Config) HistoryPath() string {
	return filepath.Join(c.CacheDir, "history.log")
}
