package spec

type Config struct {
	Version      int                `yaml:"version"`
	OutputDir    string             `yaml:"output_dir"`
	Models       []ModelConfig      `yaml:"models"`
	DefaultModel string             `yaml:"default_model"`
	Pacing       PacingConfig       `yaml:"pacing"`
	Experiments  []ExperimentConfig `yaml:"experiments"`
}

type ModelConfig struct {
	ID            string  `yaml:"id"`
	Provider      string  `yaml:"provider"`
	Model         string  `yaml:"model"`
	Temperature   float64 `yaml:"temperature"`
	MaxTokens     int     `yaml:"max_tokens"`
	RetryAttempts int     `yaml:"retry_attempts"`
	RetryDelayMs  int     `yaml:"retry_delay_ms"`
	BaseURL       string  `yaml:"base_url"`
}

type PacingConfig struct {
	RequestsPerMinute int `yaml:"requests_per_minute"`
}

type ExperimentConfig struct {
	ID                    string `yaml:"id"`
	Type                  string `yaml:"type"`
	Model                 string `yaml:"model"`
	Evaluations           int    `yaml:"evaluations"`
	Trials                int    `yaml:"trials"`
	SuccessesBeforeSwitch int    `yaml:"successes_before_switch"`
	Rule                  string `yaml:"rule"`
	Seed                  int64  `yaml:"seed"`
}
