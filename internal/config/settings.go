package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Settings struct {
	Port           string `mapstructure:"port"`
	DatabaseDSN    string `mapstructure:"database_dsn"`
	DBConnAttempts uint   `mapstructure:"db_connect_attempts"`
	JWTSecret      string `mapstructure:"jwt_secret"`
	LogLevel       string `mapstructure:"log_level"`
	LogFormat      string `mapstructure:"log_format"`
	AllowedOrigins string `mapstructure:"allowed_origins"`
	CookieDomain   string `mapstructure:"cookie_domain"`
	CookieSecure   bool   `mapstructure:"cookie_secure"`

	GeneratorProvider string `mapstructure:"generator_provider"`
	GeminiAPIKey      string `mapstructure:"gemini_api_key"`
	GeminiModel       string `mapstructure:"gemini_model"`
	OpenAIAPIKey      string `mapstructure:"openai_api_key"`
	OpenAIModel       string `mapstructure:"openai_model"`

	QueueDriver       string        `mapstructure:"queue_driver"`
	RedisAddr         string        `mapstructure:"redis_addr"`
	RedisQueueKey     string        `mapstructure:"redis_queue_key"`
	WorkerConcurrency int           `mapstructure:"worker_concurrency"`
	JobSweepInterval  time.Duration `mapstructure:"job_sweep_interval"`
	JobClaimGrace     time.Duration `mapstructure:"job_claim_grace"`
	JobStaleAfter     time.Duration `mapstructure:"job_stale_after"`
}

var defaults = map[string]any{
	"port":                "8080",
	"database_dsn":        "",
	"db_connect_attempts": 5,
	"jwt_secret":          "",
	"log_level":           "info",
	"log_format":          "json",
	"allowed_origins":     "http://localhost:5173",
	"cookie_domain":       "",
	"cookie_secure":       true,
	"generator_provider":  "gemini",
	"gemini_api_key":      "",
	"gemini_model":        "gemini-2.0-flash",
	"openai_api_key":      "",
	"openai_model":        "gpt-4o-mini",
	"queue_driver":        "memory",
	"redis_addr":          "localhost:6379",
	"redis_queue_key":     "tinytutor:game_jobs",
	"worker_concurrency":  2,
	"job_sweep_interval":  "30s",
	"job_claim_grace":     "1m",
	"job_stale_after":     "10m",
}

// Load reads settings from defaults, an optional yaml file and the
// environment, in increasing priority. Environment keys are the upper-case
// setting names (DATABASE_DSN, JWT_SECRET, ...).
func Load(cfgFile string) (*Settings, error) {
	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if s.WorkerConcurrency < 1 {
		s.WorkerConcurrency = 1
	}
	return &s, nil
}

// Origins splits AllowedOrigins on commas.
func (s *Settings) Origins() []string {
	var out []string
	for _, o := range strings.Split(s.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
