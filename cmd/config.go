package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"slices"
	"strings"
	"time"

	"marketplace/internal/core/domain/services"
	"marketplace/internal/pkg/errs"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds every setting of the service. Values come, in increasing
// priority, from defaults, an optional config file, .env, the environment and
// command-line flags.
type Config struct {
	HTTPPort string `mapstructure:"HTTP_PORT"`

	DBHost     string `mapstructure:"DB_HOST"`
	DBPort     string `mapstructure:"DB_PORT"`
	DBUser     string `mapstructure:"DB_USER"`
	DBPassword string `mapstructure:"DB_PASSWORD"`
	DBName     string `mapstructure:"DB_NAME"`
	DBSslMode  string `mapstructure:"DB_SSLMODE"`

	// RedisURL selects the shared task store and sweep lock. Empty keeps both
	// in process, which is only correct for a single instance.
	RedisURL string `mapstructure:"REDIS_URL"`

	AMQPURL      string `mapstructure:"AMQP_URL"`
	AMQPExchange string `mapstructure:"AMQP_EXCHANGE"`

	PaymentGatewayURL     string        `mapstructure:"PAYMENT_GATEWAY_URL"`
	PaymentGatewayAPIKey  string        `mapstructure:"PAYMENT_GATEWAY_API_KEY"`
	PaymentGatewayTimeout time.Duration `mapstructure:"PAYMENT_GATEWAY_TIMEOUT"`
	PlatformRecipientID   string        `mapstructure:"PLATFORM_RECIPIENT_ID"`

	DispatchTierTimeout      time.Duration `mapstructure:"DISPATCH_TIER_TIMEOUT"`
	DispatchSendInterval     time.Duration `mapstructure:"DISPATCH_SEND_INTERVAL"`
	DispatchSendTimeout      time.Duration `mapstructure:"DISPATCH_SEND_TIMEOUT"`
	DispatchDefaultRadiusKm  float64       `mapstructure:"DISPATCH_DEFAULT_RADIUS_KM"`
	DispatchExtendedRadiusKm float64       `mapstructure:"DISPATCH_EXTENDED_RADIUS_KM"`
	DispatchTaskTTL          time.Duration `mapstructure:"DISPATCH_TASK_TTL"`

	PaymentSweepSchedule string        `mapstructure:"PAYMENT_SWEEP_SCHEDULE"`
	PaymentSweepLockTTL  time.Duration `mapstructure:"PAYMENT_SWEEP_LOCK_TTL"`
	PaymentTTL           time.Duration `mapstructure:"PAYMENT_TTL"`

	SplitOrganizerPct float64 `mapstructure:"SPLIT_ORGANIZER_PCT"`
	SplitPlatformPct  float64 `mapstructure:"SPLIT_PLATFORM_PCT"`

	LogLevel string `mapstructure:"LOG_LEVEL"`
}

func defaults() map[string]any {
	return map[string]any{
		"HTTP_PORT":                   "8082",
		"DB_HOST":                     "",
		"DB_PORT":                     "5432",
		"DB_USER":                     "",
		"DB_PASSWORD":                 "",
		"DB_NAME":                     "",
		"DB_SSLMODE":                  "disable",
		"REDIS_URL":                   "",
		"AMQP_URL":                    "",
		"AMQP_EXCHANGE":               "notifications",
		"PAYMENT_GATEWAY_URL":         "",
		"PAYMENT_GATEWAY_API_KEY":     "",
		"PAYMENT_GATEWAY_TIMEOUT":     "10s",
		"PLATFORM_RECIPIENT_ID":       "",
		"DISPATCH_TIER_TIMEOUT":       "2m",
		"DISPATCH_SEND_INTERVAL":      "5s",
		"DISPATCH_SEND_TIMEOUT":       "10s",
		"DISPATCH_DEFAULT_RADIUS_KM":  services.DefaultSearchRadiusKm,
		"DISPATCH_EXTENDED_RADIUS_KM": services.ExtendedSearchRadiusKm,
		"DISPATCH_TASK_TTL":           "24h",
		"PAYMENT_SWEEP_SCHEDULE":      "@every 30s",
		"PAYMENT_SWEEP_LOCK_TTL":      "25s",
		"PAYMENT_TTL":                 "5m",
		"SPLIT_ORGANIZER_PCT":         5.0,
		"SPLIT_PLATFORM_PCT":          10.0,
		"LOG_LEVEL":                   "info",
	}
}

// LoadConfig reads the configuration. args are the command-line arguments
// without the program name; --config names an optional env or YAML file and
// --http-port overrides HTTP_PORT.
func LoadConfig(args []string) (Config, error) {
	flags := pflag.NewFlagSet("marketplace", pflag.ContinueOnError)
	configFile := flags.String("config", "", "path to a configuration file")
	flags.String("http-port", "", "port the HTTP server listens on")
	if err := flags.Parse(args); err != nil {
		return Config{}, err
	}

	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	for key, value := range defaults() {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	if *configFile != "" {
		v.SetConfigFile(*configFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}
	if flag := flags.Lookup("http-port"); flag.Changed {
		v.Set("HTTP_PORT", flag.Value.String())
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	return cfg, cfg.Validate()
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var problems []error

	required := map[string]string{
		"DB_HOST":             c.DBHost,
		"DB_PORT":             c.DBPort,
		"DB_USER":             c.DBUser,
		"DB_NAME":             c.DBName,
		"HTTP_PORT":           c.HTTPPort,
		"AMQP_URL":            c.AMQPURL,
		"PAYMENT_GATEWAY_URL": c.PaymentGatewayURL,
	}
	for _, key := range sortedKeys(required) {
		if strings.TrimSpace(required[key]) == "" {
			problems = append(problems, errs.NewValueIsRequiredError(key))
		}
	}

	positive := map[string]time.Duration{
		"PAYMENT_GATEWAY_TIMEOUT": c.PaymentGatewayTimeout,
		"DISPATCH_TIER_TIMEOUT":   c.DispatchTierTimeout,
		"DISPATCH_SEND_INTERVAL":  c.DispatchSendInterval,
		"DISPATCH_SEND_TIMEOUT":   c.DispatchSendTimeout,
		"DISPATCH_TASK_TTL":       c.DispatchTaskTTL,
		"PAYMENT_SWEEP_LOCK_TTL":  c.PaymentSweepLockTTL,
		"PAYMENT_TTL":             c.PaymentTTL,
	}
	for _, key := range sortedKeys(positive) {
		if positive[key] <= 0 {
			problems = append(problems, errs.NewValueIsInvalidErrorWithCause(key,
				fmt.Errorf("duration must be positive, got %s", positive[key])))
		}
	}

	if c.DispatchDefaultRadiusKm <= 0 || c.DispatchExtendedRadiusKm < c.DispatchDefaultRadiusKm {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("DISPATCH_EXTENDED_RADIUS_KM",
			fmt.Errorf("radii must satisfy 0 < default (%g) <= extended (%g)",
				c.DispatchDefaultRadiusKm, c.DispatchExtendedRadiusKm)))
	}
	if strings.TrimSpace(c.PaymentSweepSchedule) == "" {
		problems = append(problems, errs.NewValueIsRequiredError("PAYMENT_SWEEP_SCHEDULE"))
	}
	if _, err := c.SplitConfig(); err != nil {
		problems = append(problems, err)
	}
	if _, err := c.SlogLevel(); err != nil {
		problems = append(problems, err)
	}

	return errors.Join(problems...)
}

// SplitConfig converts the configured percentages.
func (c Config) SplitConfig() (services.SplitConfig, error) {
	return services.NewSplitConfig(c.SplitOrganizerPct, c.SplitPlatformPct)
}

func (c Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause("LOG_LEVEL", err)
	}
	return level, nil
}

// DSN renders the PostgreSQL connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%v port=%v user=%v password=%v dbname=%v sslmode=%v",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys
}
