package config

// Config holds chapterize configuration.
// Stored at: ~/.chapterize/config.yaml
type Config struct {
	LLM        LLMCfg        `mapstructure:"llm" yaml:"llm"`
	ElevenLabs ElevenLabsCfg `mapstructure:"elevenlabs" yaml:"elevenlabs"`
	Split      SplitCfg      `mapstructure:"split" yaml:"split"`
	Output     OutputCfg     `mapstructure:"output" yaml:"output"`
	Logging    LoggingCfg    `mapstructure:"logging" yaml:"logging"`
}

// LLMCfg configures the chat-completion provider used for content checks,
// metadata, and narrator matching.
type LLMCfg struct {
	APIKey     string  `mapstructure:"api_key" yaml:"api_key"` // supports ${ENV_VAR} syntax
	BaseURL    string  `mapstructure:"base_url" yaml:"base_url"`
	Model      string  `mapstructure:"model" yaml:"model"`
	RateLimit  float64 `mapstructure:"rate_limit" yaml:"rate_limit"` // requests per second
	MaxRetries int     `mapstructure:"max_retries" yaml:"max_retries"`
}

// ElevenLabsCfg configures the voice catalog provider.
type ElevenLabsCfg struct {
	APIKey  string `mapstructure:"api_key" yaml:"api_key"` // supports ${ENV_VAR} syntax
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`
	// VoiceCount is how many narrator recommendations to request.
	VoiceCount int `mapstructure:"voice_count" yaml:"voice_count"`
}

// SplitCfg tunes chapter detection.
type SplitCfg struct {
	MinChapterWords     int     `mapstructure:"min_chapter_words" yaml:"min_chapter_words"`
	AcceptThreshold     float64 `mapstructure:"accept_threshold" yaml:"accept_threshold"`
	SimilarityThreshold float64 `mapstructure:"similarity_threshold" yaml:"similarity_threshold"`
	SkipValidation      bool    `mapstructure:"skip_validation" yaml:"skip_validation"`
}

// OutputCfg controls where runs read and write.
type OutputCfg struct {
	// Dir receives one subdirectory per run. Empty means ~/.chapterize/output.
	Dir string `mapstructure:"dir" yaml:"dir"`
	// Inbox is the directory the watch command monitors. Empty means
	// ~/.chapterize/inbox.
	Inbox string `mapstructure:"inbox" yaml:"inbox"`
}

// LoggingCfg controls the slog handler.
type LoggingCfg struct {
	Level  string `mapstructure:"level" yaml:"level"`   // debug, info, warn, error
	Format string `mapstructure:"format" yaml:"format"` // text or json
}

// DefaultConfig returns configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		LLM: LLMCfg{
			APIKey:     "${OPENAI_API_KEY}",
			Model:      "gpt-4o",
			RateLimit:  2.0,
			MaxRetries: 3,
		},
		ElevenLabs: ElevenLabsCfg{
			APIKey:     "${ELEVENLABS_API_KEY}",
			VoiceCount: 5,
		},
		Split: SplitCfg{
			MinChapterWords:     500,
			AcceptThreshold:     0.75,
			SimilarityThreshold: 0.80,
		},
		Logging: LoggingCfg{
			Level:  "info",
			Format: "text",
		},
	}
}
