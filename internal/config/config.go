package config

// Config holds runtime settings for the PromptKeeper CLI.
type Config struct {
	DatabasePath  string
	StorageKey    string
	TrackMetadata bool
	DefaultModel  string
	ExportDir     string
	ExportFormat  string
	Ephemeral     bool
	LogLevel      string
	S3            S3Config
}

// S3Config configures the optional S3-compatible export sink. The sink is
// enabled when Bucket is non-empty.
type S3Config struct {
	Bucket    string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
	Prefix    string
}

// Enabled reports whether exports should go to S3.
func (s S3Config) Enabled() bool {
	return s.Bucket != ""
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DatabasePath = "promptkeeper.db"
	c.StorageKey = "promptkeeper.prompts"
	c.TrackMetadata = true
	c.DefaultModel = "gpt-4o"
	c.ExportDir = "exports"
	c.ExportFormat = "json"
	c.Ephemeral = false
	c.LogLevel = "info"
	c.S3 = S3Config{Region: "us-east-1"}
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
