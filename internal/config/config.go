package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// MaxPageSize is the largest page the catalog serves.
const MaxPageSize = 100

// DefaultUTCOffset is Beijing time.
const DefaultUTCOffset = 8 * time.Hour

type Config struct {
	Log        LogConfig        `yaml:"log"`
	Paths      PathsConfig      `yaml:"paths"`
	API        APIConfig        `yaml:"api"`
	Sync       SyncConfig       `yaml:"sync"`
	Parser     ParserConfig     `yaml:"parser"`
	Identities []IdentityConfig `yaml:"identities" validate:"required,min=1,dive"`
	Database   DatabaseConfig   `yaml:"database"`
	RabbitMQ   RabbitMQConfig   `yaml:"rabbitmq"`
	Metrics    MetricsConfig    `yaml:"metrics"`
}

type LogConfig struct {
	Level  string `yaml:"level" validate:"oneof=trace debug info warn error"`
	Format string `yaml:"format" validate:"oneof=auto console json"`
}

type PathsConfig struct {
	StateDir    string `yaml:"state_dir" validate:"required"`
	DocsDir     string `yaml:"docs_dir" validate:"required"`
	Readme      string `yaml:"readme" validate:"required"`
	Corrections string `yaml:"corrections"`
}

type APIConfig struct {
	BaseURL   string        `yaml:"base_url" validate:"required,url"`
	PageSize  int           `yaml:"page_size" validate:"min=1,max=100"`
	Timeout   time.Duration `yaml:"timeout"`
	UserAgent string        `yaml:"user_agent"`
	Retry     RetryConfig   `yaml:"retry"`
}

type RetryConfig struct {
	MaxAttempts    int           `yaml:"max_attempts" validate:"min=1"`
	InitialBackoff time.Duration `yaml:"initial_backoff"`
	MaxBackoff     time.Duration `yaml:"max_backoff"`
}

type SyncConfig struct {
	Interval        time.Duration `yaml:"interval"`
	PageDelay       time.Duration `yaml:"page_delay"`
	ParseWorkers    int           `yaml:"parse_workers" validate:"min=1"`
	IdentityWorkers int           `yaml:"identity_workers" validate:"min=1"`
	RunTimeout      time.Duration `yaml:"run_timeout"`
}

type ParserConfig struct {
	// UTCOffset is nil when unset so that an explicit 0 selects UTC.
	UTCOffset *time.Duration   `yaml:"utc_offset"`
	Streamers []StreamerConfig `yaml:"streamers" validate:"dive"`
}

// Offset is the zone offset used for live dates.
func (p ParserConfig) Offset() time.Duration {
	if p.UTCOffset == nil {
		return DefaultUTCOffset
	}
	return *p.UTCOffset
}

type StreamerConfig struct {
	Prefix string `yaml:"prefix" validate:"required"`
	Name   string `yaml:"name" validate:"required"`
}

type IdentityConfig struct {
	UID     int64  `yaml:"uid" validate:"required,gt=0"`
	Name    string `yaml:"name" validate:"required"`
	Ruleset string `yaml:"ruleset" validate:"required"`
}

type DatabaseConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

type RabbitMQConfig struct {
	Enabled    bool   `yaml:"enabled"`
	URL        string `yaml:"url"`
	Exchange   string `yaml:"exchange"`
	RoutingKey string `yaml:"routing_key"`
	QueueName  string `yaml:"queue_name"`
}

type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Listen  string `yaml:"listen"`
}

// Load reads the YAML file at path, expanding ${VAR} references from the
// environment and an optional .env file. An empty path yields the defaults.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}

		expanded := os.ExpandEnv(string(data))

		if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.setDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("invalid config: %s failed %q", fe.Namespace(), fe.Tag())
		}
		return fmt.Errorf("invalid config: %w", err)
	}

	seen := make(map[int64]struct{}, len(c.Identities))
	for _, id := range c.Identities {
		if _, dup := seen[id.UID]; dup {
			return fmt.Errorf("invalid config: identity %d listed twice", id.UID)
		}
		seen[id.UID] = struct{}{}
	}

	if c.Database.Enabled && c.Database.Host == "" {
		return errors.New("invalid config: database.host is required when database is enabled")
	}
	if c.RabbitMQ.Enabled && c.RabbitMQ.URL == "" {
		return errors.New("invalid config: rabbitmq.url is required when rabbitmq is enabled")
	}

	return nil
}

// DefaultIdentities are the uploaders tracked when the config lists none.
func DefaultIdentities() []IdentityConfig {
	return []IdentityConfig{
		{UID: 245335, Name: "胧黑", Ruleset: "bracketed"},
		{UID: 1400350754, Name: "自行车二层", Ruleset: "dated"},
		{UID: 15810, Name: "Mr.Quin", Ruleset: "quin"},
	}
}

// DefaultStreamers is the streamer prefix table, matched in order.
func DefaultStreamers() []StreamerConfig {
	return []StreamerConfig{
		{Prefix: "【机皇录播】", Name: "机皇"},
		{Prefix: "【Quin？机皇！】", Name: "机皇"},
		{Prefix: "【肯尼录播】", Name: "机智的肯尼"},
		{Prefix: "【剩饭录播】", Name: "北极熊剩饭"},
		{Prefix: "【Quin录播】", Name: "Mr.Quin"},
		{Prefix: "【Mr.Quin】", Name: "Mr.Quin"},
	}
}

func (c *Config) setDefaults() {
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "auto"
	}
	if c.Paths.StateDir == "" {
		c.Paths.StateDir = "config"
	}
	if c.Paths.Corrections == "" {
		c.Paths.Corrections = filepath.Join(c.Paths.StateDir, "SpellingCorrections.json")
	}
	if c.Paths.DocsDir == "" {
		c.Paths.DocsDir = "docx"
	}
	if c.Paths.Readme == "" {
		c.Paths.Readme = "README.md"
	}
	if c.API.BaseURL == "" {
		c.API.BaseURL = "https://api.bilibili.com"
	}
	if c.API.PageSize == 0 {
		c.API.PageSize = MaxPageSize
	}
	if c.API.PageSize > MaxPageSize {
		c.API.PageSize = MaxPageSize
	}
	if c.API.Timeout == 0 {
		c.API.Timeout = 30 * time.Second
	}
	if c.API.UserAgent == "" {
		c.API.UserAgent = "ReplayFetcher/1.0"
	}
	if c.API.Retry.MaxAttempts == 0 {
		c.API.Retry.MaxAttempts = 3
	}
	if c.API.Retry.InitialBackoff == 0 {
		c.API.Retry.InitialBackoff = 1 * time.Second
	}
	if c.API.Retry.MaxBackoff == 0 {
		c.API.Retry.MaxBackoff = 30 * time.Second
	}
	if c.Sync.Interval == 0 {
		c.Sync.Interval = 24 * time.Hour
	}
	if c.Sync.PageDelay == 0 {
		c.Sync.PageDelay = 300 * time.Millisecond
	}
	if c.Sync.ParseWorkers == 0 {
		c.Sync.ParseWorkers = 8
	}
	if c.Sync.IdentityWorkers == 0 {
		c.Sync.IdentityWorkers = 1
	}
	if c.Sync.RunTimeout == 0 {
		c.Sync.RunTimeout = 30 * time.Minute
	}
	if c.Parser.UTCOffset == nil {
		offset := DefaultUTCOffset
		c.Parser.UTCOffset = &offset
	}
	if len(c.Parser.Streamers) == 0 {
		c.Parser.Streamers = DefaultStreamers()
	}
	if len(c.Identities) == 0 {
		c.Identities = DefaultIdentities()
	}
	if c.Database.Port == 0 {
		c.Database.Port = 5432
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.RabbitMQ.Exchange == "" {
		c.RabbitMQ.Exchange = "replay_fetcher"
	}
	if c.RabbitMQ.RoutingKey == "" {
		c.RabbitMQ.RoutingKey = "records"
	}
	if c.RabbitMQ.QueueName == "" {
		c.RabbitMQ.QueueName = "replay_records"
	}
	if c.Metrics.Listen == "" {
		c.Metrics.Listen = ":9090"
	}
}
