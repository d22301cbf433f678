package config

import (
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Server      Server
	Database    Database
	Redis       Redis
	RabbitMQ    RabbitMQ
	RateLimit   RateLimit
	ReviewQueue ReviewQueue
	TestCache   TestCache
}

type Server struct {
	Port string
}

type Database struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type Redis struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type RabbitMQ struct {
	Enabled  bool
	Host     string
	Port     string
	User     string
	Password string
}

type RateLimit struct {
	Requests int
	Window   time.Duration
}

type ReviewQueue struct {
	DefaultLimit int
	MaxLimit     int
}

type TestCache struct {
	TTL time.Duration
}

func setDefaults() {
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("DATABASE_SSLMODE", "disable")
	viper.SetDefault("REDIS_HOST", "localhost")
	viper.SetDefault("REDIS_PORT", "6379")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("RABBITMQ_ENABLED", false)
	viper.SetDefault("RABBITMQ_HOST", "localhost")
	viper.SetDefault("RABBITMQ_PORT", "5672")
	viper.SetDefault("RABBITMQ_USER", "guest")
	viper.SetDefault("RABBITMQ_PASSWORD", "guest")
	viper.SetDefault("RATE_LIMIT_REQUESTS", 60)
	viper.SetDefault("RATE_LIMIT_WINDOW", "1m")
	viper.SetDefault("REVIEW_QUEUE_DEFAULT_LIMIT", 20)
	viper.SetDefault("REVIEW_QUEUE_MAX_LIMIT", 100)
	viper.SetDefault("TEST_CACHE_TTL", "1h")
}

func NewConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()
	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg("Error reading config file")
	}

	var config Config

	config.Server.Port = viper.GetString("SERVER_PORT")

	config.Database.Host = viper.GetString("DATABASE_HOST")
	config.Database.Port = viper.GetString("DATABASE_PORT")
	config.Database.User = viper.GetString("DATABASE_USER")
	config.Database.Password = viper.GetString("DATABASE_PASSWORD")
	config.Database.Name = viper.GetString("DATABASE_NAME")
	config.Database.SSLMode = viper.GetString("DATABASE_SSLMODE")

	config.Redis.Host = viper.GetString("REDIS_HOST")
	config.Redis.Port = viper.GetString("REDIS_PORT")
	config.Redis.Password = viper.GetString("REDIS_PASSWORD")
	config.Redis.DB = viper.GetInt("REDIS_DB")

	config.RabbitMQ.Enabled = viper.GetBool("RABBITMQ_ENABLED")
	config.RabbitMQ.Host = viper.GetString("RABBITMQ_HOST")
	config.RabbitMQ.Port = viper.GetString("RABBITMQ_PORT")
	config.RabbitMQ.User = viper.GetString("RABBITMQ_USER")
	config.RabbitMQ.Password = viper.GetString("RABBITMQ_PASSWORD")

	config.RateLimit.Requests = viper.GetInt("RATE_LIMIT_REQUESTS")
	config.RateLimit.Window = viper.GetDuration("RATE_LIMIT_WINDOW")

	config.ReviewQueue.DefaultLimit = viper.GetInt("REVIEW_QUEUE_DEFAULT_LIMIT")
	config.ReviewQueue.MaxLimit = viper.GetInt("REVIEW_QUEUE_MAX_LIMIT")

	config.TestCache.TTL = viper.GetDuration("TEST_CACHE_TTL")

	log.Info().
		Str("port", config.Server.Port).
		Str("dbHost", config.Database.Host).
		Str("redisHost", config.Redis.Host).
		Bool("rabbitmq", config.RabbitMQ.Enabled).
		Msg("Config loaded")
	return &config, nil
}
