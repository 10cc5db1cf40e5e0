// Package config loads and watches the application configuration.
package config

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/jobtrack/jobtrack/pkg/email"
	"github.com/jobtrack/jobtrack/pkg/logger"
)

var (
	config *Config
	mu     sync.Mutex
	v      *viper.Viper
)

func init() {
	v = viper.New()
}

// Config represents the configuration implementation.
type Config struct {
	AppName string
	RunMode string
	Host    string
	Port    int
	Logger  *logger.Config
	Data    *Data
	Auth    *Auth
	Email   *email.Config
	Notify  *Notify
}

// Data holds document-store connection settings.
type Data struct {
	MongoURI string
	Database string
}

// Auth holds token-signing settings.
type Auth struct {
	JWTSecret   string
	TokenExpiry time.Duration
}

// Notify holds notification dispatch settings.
type Notify struct {
	Workers   int
	QueueSize int
}

// IsProd reports whether the app runs in release mode.
func (c *Config) IsProd() bool {
	return c.RunMode == "release" || c.RunMode == "prod"
}

// LoadConfig loads the configuration from the file.
// Environment variables prefixed with JOBTRACK override file values.
func LoadConfig(configPath string) (*Config, error) {
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath("/etc/jobtrack")
		v.AddConfigPath("$HOME/.jobtrack")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("jobtrack")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := buildConfig(v)

	mu.Lock()
	config = cfg
	mu.Unlock()

	return cfg, nil
}

func buildConfig(v *viper.Viper) *Config {
	return &Config{
		AppName: v.GetString("app_name"),
		RunMode: v.GetString("run_mode"),
		Host:    v.GetString("server.host"),
		Port:    v.GetInt("server.port"),
		Logger:  getLoggerConfig(v),
		Data:    getDataConfig(v),
		Auth:    getAuthConfig(v),
		Email:   getEmailConfig(v),
		Notify:  getNotifyConfig(v),
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app_name", "jobtrack")
	v.SetDefault("run_mode", "debug")
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("logger.level", 4) // logrus.InfoLevel
	v.SetDefault("logger.format", "json")
	v.SetDefault("logger.output", "stdout")
	v.SetDefault("data.mongo_uri", "mongodb://localhost:27017")
	v.SetDefault("data.database", "jobtrack")
	v.SetDefault("auth.token_expiry", "24h")
	v.SetDefault("notify.workers", 4)
	v.SetDefault("notify.queue_size", 256)
}

// Reload reloads the configuration from the file.
func Reload() error {
	mu.Lock()
	defer mu.Unlock()

	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to reload config: %w", err)
	}

	config = buildConfig(v)
	return nil
}

// Watch watches the configuration file and reloads it when it changes.
func Watch(callback func(*Config)) {
	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		if err := Reload(); err != nil {
			fmt.Printf("Error reloading config: %v\n", err)
			return
		}
		callback(config)
	})
}
