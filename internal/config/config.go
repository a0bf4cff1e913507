package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig
	Logger     LoggerConfig
	Redis      RedisConfig
	OpenRouter OpenRouterConfig
	Generation GenerationConfig
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	BodyLimit    int
}

type LoggerConfig struct {
	Level string
	Env   string
}

type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// OpenRouterConfig configures the outbound completion service. APIKey is
// injected here once at startup; nothing deeper in the pipeline reads the
// environment.
type OpenRouterConfig struct {
	Endpoint       string
	APIKey         string
	Referer        string
	AppTitle       string
	DefaultModel   string
	ForceModel     string // non-empty overrides the caller-selected model
	MaxTokens      int
	Temperature    float64
	MaxAttempts    int
	BackoffBase    time.Duration
	RequestTimeout time.Duration
}

type GenerationConfig struct {
	DefaultQuestionCount int
	PromptCharBudget     int
	TitleMaxTokens       int
	TitleTemperature     float64
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	viper.SetDefault("server.port", 3001)
	viper.SetDefault("server.read_timeout", 20)
	viper.SetDefault("server.write_timeout", 20)
	viper.SetDefault("server.body_limit_mb", 20)
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.env", "development")
	viper.SetDefault("redis.address", "localhost:6379")
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("openrouter.endpoint", "https://openrouter.ai/api/v1/chat/completions")
	viper.SetDefault("openrouter.referer", "https://pdf-to-quiz-generator.vercel.app")
	viper.SetDefault("openrouter.app_title", "PDF to Quiz Generator")
	viper.SetDefault("openrouter.default_model", "minimax/minimax-m2:free")
	viper.SetDefault("openrouter.force_model", "")
	viper.SetDefault("openrouter.max_tokens", 4000)
	viper.SetDefault("openrouter.temperature", 0.3)
	viper.SetDefault("openrouter.max_attempts", 3)
	viper.SetDefault("openrouter.backoff_base", 1)
	viper.SetDefault("openrouter.request_timeout", 20)
	viper.SetDefault("generation.default_question_count", 4)
	viper.SetDefault("generation.prompt_char_budget", 2500)
	viper.SetDefault("generation.title_max_tokens", 50)
	viper.SetDefault("generation.title_temperature", 0.2)

	viper.AutomaticEnv()

	// The config file is optional; defaults plus environment variables are a
	// complete configuration.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	config := &Config{
		Server: ServerConfig{
			Port:         viper.GetInt("server.port"),
			ReadTimeout:  viper.GetDuration("server.read_timeout") * time.Second,
			WriteTimeout: viper.GetDuration("server.write_timeout") * time.Second,
			BodyLimit:    viper.GetInt("server.body_limit_mb") * 1024 * 1024,
		},
		Logger: LoggerConfig{
			Level: viper.GetString("logger.level"),
			Env:   viper.GetString("logger.env"),
		},
		Redis: RedisConfig{
			Address:  viper.GetString("redis.address"),
			Password: viper.GetString("redis.password"),
			DB:       viper.GetInt("redis.db"),
		},
		OpenRouter: OpenRouterConfig{
			Endpoint:       viper.GetString("openrouter.endpoint"),
			APIKey:         viper.GetString("openrouter.api_key"),
			Referer:        viper.GetString("openrouter.referer"),
			AppTitle:       viper.GetString("openrouter.app_title"),
			DefaultModel:   viper.GetString("openrouter.default_model"),
			ForceModel:     viper.GetString("openrouter.force_model"),
			MaxTokens:      viper.GetInt("openrouter.max_tokens"),
			Temperature:    viper.GetFloat64("openrouter.temperature"),
			MaxAttempts:    viper.GetInt("openrouter.max_attempts"),
			BackoffBase:    viper.GetDuration("openrouter.backoff_base") * time.Second,
			RequestTimeout: viper.GetDuration("openrouter.request_timeout") * time.Second,
		},
		Generation: GenerationConfig{
			DefaultQuestionCount: viper.GetInt("generation.default_question_count"),
			PromptCharBudget:     viper.GetInt("generation.prompt_char_budget"),
			TitleMaxTokens:       viper.GetInt("generation.title_max_tokens"),
			TitleTemperature:     viper.GetFloat64("generation.title_temperature"),
		},
	}

	// Override with environment variables if set
	if apiKey := os.Getenv("OPENROUTER_API_KEY"); apiKey != "" {
		config.OpenRouter.APIKey = apiKey
	}
	if model := os.Getenv("OPENROUTER_MODEL"); model != "" {
		config.OpenRouter.DefaultModel = model
	}
	if redisAddress := os.Getenv("REDIS_ADDRESS"); redisAddress != "" {
		config.Redis.Address = redisAddress
	}
	if redisPassword := os.Getenv("REDIS_PASSWORD"); redisPassword != "" {
		config.Redis.Password = redisPassword
	}
	if env := os.Getenv("ENV"); env != "" {
		config.Logger.Env = env
	}

	return config, nil
}
