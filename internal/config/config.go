package config

import (
	"errors"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Addr          string `mapstructure:"addr"`
	TemplateGlob  string `mapstructure:"template_glob"`
	MySQLDSN      string `mapstructure:"mysql_dsn"`
	SessionSecret string `mapstructure:"session_secret"`

	Redis struct {
		Addr     string `mapstructure:"addr"`
		Password string `mapstructure:"password"`
		DB       int    `mapstructure:"db"`
	} `mapstructure:"redis"`

	SMTP struct {
		Host      string `mapstructure:"host"`
		Port      int    `mapstructure:"port"`
		Sender    string `mapstructure:"sender"`
		Password  string `mapstructure:"password"`
		Recipient string `mapstructure:"recipient"`
	} `mapstructure:"smtp"`

	Kafka struct {
		Brokers []string `mapstructure:"brokers"`
		Topic   string   `mapstructure:"topic"`
	} `mapstructure:"kafka"`
}

// Load reads configuration from the environment (BLOG_ prefix, dots
// become underscores: BLOG_SMTP_SENDER, BLOG_REDIS_ADDR, ...) and an
// optional config.yaml in the working directory.
func Load() (*Config, error) {
	v := viper.New()

	// Every key needs a default so AutomaticEnv-sourced values survive
	// Unmarshal.
	v.SetDefault("addr", ":8080")
	v.SetDefault("template_glob", "web/templates/*.html")
	v.SetDefault("mysql_dsn", "root:@tcp(127.0.0.1:3306)/blog?charset=utf8mb4&parseTime=True")
	v.SetDefault("session_secret", "")
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("smtp.host", "smtp.gmail.com")
	v.SetDefault("smtp.port", 587)
	v.SetDefault("smtp.sender", "")
	v.SetDefault("smtp.password", "")
	v.SetDefault("smtp.recipient", "")
	v.SetDefault("kafka.brokers", []string{})
	v.SetDefault("kafka.topic", "blog.posts")

	v.SetEnvPrefix("BLOG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if cfg.SessionSecret == "" {
		return nil, errors.New("session secret not configured (BLOG_SESSION_SECRET)")
	}
	return &cfg, nil
}
