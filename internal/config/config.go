package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	JWT        JWTConfig
	Redis      RedisConfig
	Cache      CacheConfig
	Generation GenerationConfig
	Logger     LoggerConfig
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	Path string // path to the SQLite database file
}

type JWTConfig struct {
	SecretKey      string
	AccessTokenTTL time.Duration
}

type RedisConfig struct {
	Address  string
	Password string
	DB       int
}

type CacheConfig struct {
	Enabled bool
	QuizTTL time.Duration
}

type GenerationConfig struct {
	Source    string // "static" or "ollama"
	Delay     time.Duration
	Timeout   time.Duration
	ServerURL string // ollama server address, when Source is "ollama"
	Model     string
}

type LoggerConfig struct {
	Level string
	Env   string
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Add config paths based on environment
	if os.Getenv("ENV") == "test" {
		viper.AddConfigPath("../../configs")
		viper.AddConfigPath("../../")
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("./configs")
	}

	viper.AutomaticEnv()

	viper.SetDefault("server.port", 8090)
	viper.SetDefault("server.read_timeout", 20)
	viper.SetDefault("server.write_timeout", 20)
	viper.SetDefault("database.path", "auralearn.db")
	viper.SetDefault("jwt.access_token_ttl", 60)
	viper.SetDefault("cache.enabled", false)
	viper.SetDefault("cache.quiz_ttl", 24)
	viper.SetDefault("generation.source", "static")
	viper.SetDefault("generation.delay", 3)
	viper.SetDefault("generation.timeout", 30)
	viper.SetDefault("logger.level", "info")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := &Config{
		Server: ServerConfig{
			Port:         viper.GetInt("server.port"),
			ReadTimeout:  viper.GetDuration("server.read_timeout") * time.Second,
			WriteTimeout: viper.GetDuration("server.write_timeout") * time.Second,
		},
		Database: DatabaseConfig{
			Path: viper.GetString("database.path"),
		},
		JWT: JWTConfig{
			SecretKey:      viper.GetString("jwt.secret_key"),
			AccessTokenTTL: viper.GetDuration("jwt.access_token_ttl") * time.Minute,
		},
		Redis: RedisConfig{
			Address:  viper.GetString("redis.address"),
			Password: viper.GetString("redis.password"),
			DB:       viper.GetInt("redis.db"),
		},
		Cache: CacheConfig{
			Enabled: viper.GetBool("cache.enabled"),
			QuizTTL: viper.GetDuration("cache.quiz_ttl") * time.Hour,
		},
		Generation: GenerationConfig{
			Source:    viper.GetString("generation.source"),
			Delay:     viper.GetDuration("generation.delay") * time.Second,
			Timeout:   viper.GetDuration("generation.timeout") * time.Second,
			ServerURL: viper.GetString("generation.server_url"),
			Model:     viper.GetString("generation.model"),
		},
		Logger: LoggerConfig{
			Level: viper.GetString("logger.level"),
			Env:   viper.GetString("logger.env"),
		},
	}

	// Override with environment variables if set
	if path := os.Getenv("DATABASE_PATH"); path != "" {
		config.Database.Path = path
	}
	if secret := os.Getenv("JWT_SECRET_KEY"); secret != "" {
		config.JWT.SecretKey = secret
	}
	if redisAddress := os.Getenv("REDIS_ADDRESS"); redisAddress != "" {
		config.Redis.Address = redisAddress
	}
	if redisPassword := os.Getenv("REDIS_PASSWORD"); redisPassword != "" {
		config.Redis.Password = redisPassword
	}
	if source := os.Getenv("GENERATION_SOURCE"); source != "" {
		config.Generation.Source = source
	}
	if serverURL := os.Getenv("OLLAMA_SERVER"); serverURL != "" {
		config.Generation.ServerURL = serverURL
	}

	if config.JWT.SecretKey == "" {
		return nil, fmt.Errorf("jwt.secret_key is not configured")
	}

	return config, nil
}
