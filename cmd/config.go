package cmd

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"marketplace/internal/pkg/errs"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	NotifyBackendLog      = "log"
	NotifyBackendKafka    = "kafka"
	NotifyBackendRabbitMQ = "rabbitmq"
)

type Config struct {
	HTTPPort   int
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	JWTSecret      string
	GatewayToken   string
	GatewayBaseURL string

	NotifyBackend   string
	NotifyQueueSize int
	KafkaBrokers    []string
	KafkaTopic      string
	RabbitMQURL     string
	RabbitMQQueue   string

	AutoAssignSchedule string
	MetricsSchedule    string
	LogLevel           string
}

func defaultConfig() Config {
	return Config{
		HTTPPort:        8080,
		DBHost:          "localhost",
		DBPort:          "5432",
		DBUser:          "postgres",
		DBPassword:      "postgres",
		DBName:          "marketplace",
		DBSslMode:       "disable",
		GatewayBaseURL:  "http://localhost:8090",
		NotifyBackend:   NotifyBackendLog,
		NotifyQueueSize: 256,
		KafkaTopic:      "delivery-notifications",
		RabbitMQQueue:   "delivery-notifications",
		MetricsSchedule: "*/15 * * * * *",
		LogLevel:        "info",
	}
}

// LoadConfig reads configuration in order: .env (if present), environment,
// command line flags. Later sources win.
func LoadConfig(args []string) (Config, error) {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := defaultConfig()
	if err := cfg.fromEnv(); err != nil {
		return Config{}, err
	}

	fs := pflag.NewFlagSet("marketplace", pflag.ContinueOnError)
	fs.IntVarP(&cfg.HTTPPort, "port", "p", cfg.HTTPPort, "port to listen on")
	fs.StringVar(&cfg.DBHost, "db-host", cfg.DBHost, "database host")
	fs.StringVar(&cfg.DBPort, "db-port", cfg.DBPort, "database port")
	fs.StringVar(&cfg.DBName, "db-name", cfg.DBName, "database name")
	fs.StringVar(&cfg.NotifyBackend, "notify-backend", cfg.NotifyBackend, "notification backend: log, kafka or rabbitmq")
	fs.StringSliceVar(&cfg.KafkaBrokers, "kafka-brokers", cfg.KafkaBrokers, "comma separated Kafka brokers")
	fs.StringVar(&cfg.AutoAssignSchedule, "auto-assign-schedule", cfg.AutoAssignSchedule,
		"cron schedule with seconds for automatic assignment, empty disables it")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "debug, info, warn or error")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) fromEnv() error {
	setString(&c.DBHost, "DB_HOST")
	setString(&c.DBPort, "DB_PORT")
	setString(&c.DBUser, "DB_USER")
	setString(&c.DBPassword, "DB_PASSWORD")
	setString(&c.DBName, "DB_NAME")
	setString(&c.DBSslMode, "DB_SSLMODE")
	setString(&c.JWTSecret, "JWT_SECRET")
	setString(&c.GatewayToken, "GATEWAY_TOKEN")
	setString(&c.GatewayBaseURL, "GATEWAY_BASE_URL")
	setString(&c.NotifyBackend, "NOTIFY_BACKEND")
	setString(&c.KafkaTopic, "KAFKA_TOPIC")
	setString(&c.RabbitMQURL, "RABBITMQ_URL")
	setString(&c.RabbitMQQueue, "RABBITMQ_QUEUE")
	setString(&c.AutoAssignSchedule, "AUTO_ASSIGN_SCHEDULE")
	setString(&c.MetricsSchedule, "METRICS_SCHEDULE")
	setString(&c.LogLevel, "LOG_LEVEL")

	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.KafkaBrokers = strings.Split(v, ",")
	}

	var portErr, queueErr error
	if v := os.Getenv("HTTP_PORT"); v != "" {
		c.HTTPPort, portErr = strconv.Atoi(v)
		if portErr != nil {
			portErr = errs.NewValueIsInvalidErrorWithCause("HTTP_PORT", portErr)
		}
	}
	if v := os.Getenv("NOTIFY_QUEUE_SIZE"); v != "" {
		c.NotifyQueueSize, queueErr = strconv.Atoi(v)
		if queueErr != nil {
			queueErr = errs.NewValueIsInvalidErrorWithCause("NOTIFY_QUEUE_SIZE", queueErr)
		}
	}
	return errors.Join(portErr, queueErr)
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok {
		*dst = v
	}
}

func (c Config) Validate() error {
	var problems []error

	if c.HTTPPort <= 0 || c.HTTPPort > 65535 {
		problems = append(problems, errs.NewValueIsOutOfRangeError("port", c.HTTPPort, 1, 65535))
	}
	if c.JWTSecret == "" {
		problems = append(problems, errs.NewValueIsRequiredError("JWT_SECRET"))
	}
	if c.NotifyQueueSize <= 0 {
		problems = append(problems, errs.NewValueIsOutOfRangeError("NOTIFY_QUEUE_SIZE", c.NotifyQueueSize, 1, "unbounded"))
	}

	switch c.NotifyBackend {
	case NotifyBackendLog:
	case NotifyBackendKafka:
		if len(c.KafkaBrokers) == 0 {
			problems = append(problems, errs.NewValueIsRequiredError("KAFKA_BROKERS"))
		}
	case NotifyBackendRabbitMQ:
		if c.RabbitMQURL == "" {
			problems = append(problems, errs.NewValueIsRequiredError("RABBITMQ_URL"))
		}
	default:
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("NOTIFY_BACKEND",
			fmt.Errorf("%q is not one of log, kafka, rabbitmq", c.NotifyBackend)))
	}

	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("LOG_LEVEL", err))
	}

	return errors.Join(problems...)
}

// DSN is the URL form accepted by both gorm and golang-migrate.
func (c Config) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     c.DBHost + ":" + c.DBPort,
		Path:     "/" + c.DBName,
		RawQuery: url.Values{"sslmode": []string{c.DBSslMode}}.Encode(),
	}
	return u.String()
}

func NewLogger(level string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, err
	}

	zapConfig := zap.NewProductionConfig()
	zapConfig.Level = lvl
	zapConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zapConfig.EncoderConfig.TimeKey = "timestamp"
	return zapConfig.Build()
}
