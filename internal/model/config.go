package model

import "time"

// Config holds the complete casebrief configuration
type Config struct {
	Browser      BrowserConfig      `yaml:"browser"`
	LLM          LLMConfig          `yaml:"llm"`
	Storage      StorageConfig      `yaml:"storage"`
	Cache        CacheConfig        `yaml:"cache"`
	RateLimiting RateLimitingConfig `yaml:"rate_limiting"`
	Output       OutputConfig       `yaml:"output"`
}

// BrowserConfig controls the headless browser session used to acquire judgments
type BrowserConfig struct {
	// SearchURL is the search entry point for the judgment archive
	SearchURL string `yaml:"search_url"`

	// Headless runs Chrome without a visible window
	Headless bool `yaml:"headless"`

	// ChromePath overrides the Chrome/Chromium binary location (CHROME_BIN env var also works)
	ChromePath string `yaml:"chrome_path"`

	// StepTimeout bounds each individual protocol step (element wait, click, navigation)
	StepTimeout time.Duration `yaml:"step_timeout"`

	// DownloadPollInterval is how often the download directory is re-listed
	DownloadPollInterval time.Duration `yaml:"download_poll_interval"`

	// DownloadTimeout bounds the overall wait for a triggered download to land on disk
	DownloadTimeout time.Duration `yaml:"download_timeout"`

	// RespectRobots consults the archive's robots.txt before navigating (warn-only)
	RespectRobots bool `yaml:"respect_robots"`
}

// LLMConfig configures the completion service used for brief synthesis
type LLMConfig struct {
	// Provider name: "openai" (any OpenAI-compatible endpoint, incl. OpenRouter), "ollama"
	Provider string `yaml:"provider"`

	// Model name (provider-specific)
	Model string `yaml:"model"`

	// APIKey for the completion service
	APIKey string `yaml:"-"`

	// BaseURL for custom endpoints (OpenRouter, Ollama, proxies)
	BaseURL string `yaml:"base_url"`

	// Timeout for one completion request
	Timeout int `yaml:"timeout"` // seconds

	// MaxTokens limits the response length
	MaxTokens int `yaml:"max_tokens"`

	// Retries is the number of additional attempts after a failed completion call
	Retries int `yaml:"retries"`

	// RetryBackoff is the fixed delay between attempts
	RetryBackoff time.Duration `yaml:"retry_backoff"`

	// MinTextBytes is the minimum extracted-text length required before synthesis is attempted
	MinTextBytes int `yaml:"min_text_bytes"`

	// PromptPrefixBytes bounds how much judgment text is sent to the completion service
	PromptPrefixBytes int `yaml:"prompt_prefix_bytes"`
}

// StorageConfig controls the local document layout
type StorageConfig struct {
	// DownloadDir holds source judgment PDFs, keyed by the filesystem-safe canonical title
	DownloadDir string `yaml:"download_dir"`

	// BriefDir holds rendered brief PDFs, same key
	BriefDir string `yaml:"brief_dir"`

	// SkipExistingBrief skips a case whose rendered brief already exists
	SkipExistingBrief bool `yaml:"skip_existing_brief"`
}

// CacheConfig controls the extracted-text cache
type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	Dir     string        `yaml:"dir"`
	TTL     time.Duration `yaml:"ttl"`
}

// RateLimitingConfig controls politeness toward the judgment archive
type RateLimitingConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	BurstSize         int     `yaml:"burst_size"`
}

// OutputConfig controls CLI output behavior
type OutputConfig struct {
	Verbose bool `yaml:"verbose"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Browser: BrowserConfig{
			SearchURL:            "https://indiankanoon.org/search/",
			Headless:             true,
			StepTimeout:          10 * time.Second,
			DownloadPollInterval: 1 * time.Second,
			DownloadTimeout:      60 * time.Second,
			RespectRobots:        true,
		},
		LLM: LLMConfig{
			Provider:          "openai",
			Model:             "deepseek/deepseek-r1-0528:free",
			BaseURL:           "https://openrouter.ai/api/v1",
			Timeout:           60,
			MaxTokens:         2000,
			Retries:           2,
			RetryBackoff:      2 * time.Second,
			MinTextBytes:      1000,
			PromptPrefixBytes: 6000,
		},
		Storage: StorageConfig{
			DownloadDir: "downloads",
			BriefDir:    "briefs",
		},
		Cache: CacheConfig{
			Enabled: true,
			Dir:     ".casebrief-cache",
			TTL:     24 * time.Hour,
		},
		RateLimiting: RateLimitingConfig{
			RequestsPerSecond: 0.5,
			BurstSize:         2,
		},
		Output: OutputConfig{
			Verbose: false,
		},
	}
}
