package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"  validate:"required"`
	Batch   BatchConfig   `mapstructure:"batch"   validate:"required"`
	Image   ImageConfig   `mapstructure:"image"   validate:"required"`
	Convert ConvertConfig `mapstructure:"convert"`
	LLM     LLMConfig     `mapstructure:"llm"     validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// BatchConfig tunes the orchestration pipeline. The values trade cost and
// latency against throughput; they do not affect pipeline correctness.
type BatchConfig struct {
	// MaxFiles caps how many files one upload may contain.
	MaxFiles int `mapstructure:"max_files" validate:"required,gt=0"`

	// MaxConcurrent caps how many tasks may be in flight against the
	// vision service at any instant.
	MaxConcurrent int `mapstructure:"max_concurrent" validate:"required,gt=0"`

	// TransientRetries is the number of immediate retries a worker applies
	// to transport and rate-limit failures before reporting the task as
	// failed. Zero disables retries; the pipeline stays correct either way.
	TransientRetries int `mapstructure:"transient_retries" validate:"gte=0"`
}

// ImageConfig bounds the size and quality of prepared image payloads.
type ImageConfig struct {
	// MaxSide is the maximum pixel length of an image's longer side.
	// Larger images are downscaled before upload.
	MaxSide int `mapstructure:"max_side" validate:"required,gt=0"`

	// JPEGQuality is the re-encode quality for opaque images, clamped to
	// a sane range at encode time.
	JPEGQuality int `mapstructure:"jpeg_quality" validate:"required,gt=0,lte=100"`
}

// ConvertConfig configures the presentation-to-image conversion collaborator.
type ConvertConfig struct {
	// SofficePath overrides the LibreOffice binary location. When empty,
	// the binary is resolved from PATH.
	SofficePath string `mapstructure:"soffice_path"`
}

// LLMConfig contains all settings for the vision metadata service.
type LLMConfig struct {
	GeminiAPIKey string `mapstructure:"gemini_api_key" validate:"required"`
	ModelName    string `mapstructure:"model_name"     validate:"required"`
}
