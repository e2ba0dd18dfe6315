package config

// App carries the process-level settings of the cryptex CLI. Everything has
// a working default so the tool runs without any environment at all.
type App struct {
	LogLevel  string `env:"CRYPTEX_LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"CRYPTEX_LOG_FORMAT" envDefault:"text"`

	// TemplatesFile points at an optional YAML file with extra compliance
	// templates merged over the built-in set.
	TemplatesFile string `env:"CRYPTEX_TEMPLATES_FILE"`

	// Sink destinations.
	VaultFile string `env:"CRYPTEX_VAULT_FILE" envDefault:"cryptex-vault.jsonl"`
	EnvFile   string `env:"CRYPTEX_ENV_FILE" envDefault:".env.secrets"`
}

// AWS carries credentials and region selection for the Secrets Manager
// sink. Left empty, the SDK default chain applies.
type AWS struct {
	Region      string `env:"AWS_REGION"`
	Profile     string `env:"AWS_PROFILE"`
	AccessKeyID string `env:"AWS_ACCESS_KEY_ID"`
	SecretKey   string `env:"AWS_SECRET_ACCESS_KEY"`
	Endpoint    string `env:"CRYPTEX_AWS_ENDPOINT"`
}
