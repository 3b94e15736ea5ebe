package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

type Config struct {
	Port            string        `mapstructure:"port"`
	MongoURI        string        `mapstructure:"mongo_uri"`
	MongoDatabase   string        `mapstructure:"mongo_database"`
	SecretKey       string        `mapstructure:"secret_key"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`

	// Federated sign-in is off unless all three are set.
	FederatedIssuer    string   `mapstructure:"federated_issuer"`
	FederatedAudience  string   `mapstructure:"federated_audience"`
	FederatedPublicKey string   `mapstructure:"federated_public_key"`
	AdminEmails        []string `mapstructure:"admin_emails"`

	S3Region        string `mapstructure:"s3_region"`
	S3Bucket        string `mapstructure:"s3_bucket"`
	S3PublicBaseURL string `mapstructure:"s3_public_base_url"`
	S3Endpoint      string `mapstructure:"s3_endpoint"`
	UploadMaxBytes  int64  `mapstructure:"upload_max_bytes"`

	EmailBaseURL string        `mapstructure:"email_base_url"`
	EmailTimeout time.Duration `mapstructure:"email_timeout"`
	AmqpURL      string        `mapstructure:"amqp_url"`

	LogLevel  slog.Level `mapstructure:"log_level"`
	LogFormat string     `mapstructure:"log_format"`
}

var defaults = map[string]any{
	"port":                 "8000",
	"mongo_uri":            "mongodb://localhost:27017",
	"mongo_database":       "Tomato",
	"secret_key":           "",
	"shutdown_timeout":     "15s",
	"federated_issuer":     "",
	"federated_audience":   "",
	"federated_public_key": "",
	"admin_emails":         "",
	"s3_region":            "us-east-1",
	"s3_bucket":            "",
	"s3_public_base_url":   "",
	"s3_endpoint":          "",
	"upload_max_bytes":     5 << 20,
	"email_base_url":       "",
	"email_timeout":        "10s",
	"amqp_url":             "",
	"log_level":            "info",
	"log_format":           "json",
}

// Load reads .env (if present), the optional config file and the
// environment, in increasing order of precedence.
func Load(cfgFile string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	v.AutomaticEnv()
	// DB is the variable older deployments set the URI in.
	_ = v.BindEnv("mongo_uri", "MONGO_URI", "DB")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	decoderConfigOption := viper.DecoderConfigOption(func(config *mapstructure.DecoderConfig) {
		config.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.TextUnmarshallerHookFunc(),
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		)
	})
	if err := v.Unmarshal(&cfg, decoderConfigOption); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}

	cfg.AdminEmails = normalizeEmails(cfg.AdminEmails)
	return &cfg, nil
}

// Validate reports settings the API server cannot run without.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.SecretKey) == "" {
		errs = append(errs, errors.New("secret_key is required"))
	}
	if c.S3Bucket != "" && c.S3PublicBaseURL == "" {
		errs = append(errs, errors.New("s3_public_base_url is required when s3_bucket is set"))
	}
	if c.UploadMaxBytes <= 0 {
		errs = append(errs, errors.New("upload_max_bytes must be positive"))
	}
	return errors.Join(errs...)
}

func (c *Config) FederatedEnabled() bool {
	return c.FederatedIssuer != "" && c.FederatedAudience != "" && c.FederatedPublicKey != ""
}

func normalizeEmails(in []string) []string {
	out := make([]string, 0, len(in))
	for _, e := range in {
		e = strings.ToLower(strings.TrimSpace(e))
		if e != "" {
			out = append(out, e)
		}
	}
	return out
}
