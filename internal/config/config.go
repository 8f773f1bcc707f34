package config

import (
	"bytes"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"wiki-quiz/configs"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Supported values for db.driver.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Supported values for llm.backend.
const (
	BackendGoogleAI = "googleai"
	BackendGenAI    = "genai"
	BackendOllama   = "ollama"
	BackendOpenAI   = "openai"
)

type Config struct {
	Server     ServerConfig
	DB         DBConfig
	Logger     LoggerConfig
	Scraper    ScraperConfig
	LLM        LLMConfig
	Redis      RedisConfig
	Generation GenerationConfig
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	BodyLimit    int
	CORSOrigins  string
}

type DBConfig struct {
	Driver          string
	URL             string
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	AutoMigrate     bool
}

type LoggerConfig struct {
	Level string
	Env   string
}

type ScraperConfig struct {
	Timeout  time.Duration
	MaxChars int
}

type LLMConfig struct {
	Backend         string
	APIKey          string
	PreferredModel  string
	CandidateModels []string
	PromptFile      string
	Temperature     float64
	OllamaServerURL string
	OpenAIAPIKey    string
}

type RedisConfig struct {
	Address  string
	Password string
	DB       int
}

type GenerationConfig struct {
	URLLock bool
	LockTTL time.Duration
}

// LoadConfig reads the embedded defaults, merges config.yaml from disk when
// present and applies environment overrides.
func LoadConfig() (*Config, error) {
	// A missing .env is the normal case outside local development.
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigType("yaml")
	if err := v.ReadConfig(bytes.NewReader(configs.Default())); err != nil {
		return nil, fmt.Errorf("failed to read embedded config: %w", err)
	}

	v.SetConfigName("config")
	if os.Getenv("ENV") == "test" {
		v.AddConfigPath("../../configs")
		v.AddConfigPath("../../")
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("./configs")
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.MergeInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if configFile := v.ConfigFileUsed(); configFile != "" {
		absPath, _ := filepath.Abs(configFile)
		fmt.Printf("Using config file: %s\n", absPath)
	}

	cfg := fromViper(v)
	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		Server: ServerConfig{
			Port:         v.GetInt("server.port"),
			ReadTimeout:  time.Duration(v.GetInt("server.read_timeout")) * time.Second,
			WriteTimeout: time.Duration(v.GetInt("server.write_timeout")) * time.Second,
			IdleTimeout:  time.Duration(v.GetInt("server.idle_timeout")) * time.Second,
			BodyLimit:    v.GetInt("server.body_limit"),
			CORSOrigins:  v.GetString("server.cors_origins"),
		},
		DB: DBConfig{
			Driver:          v.GetString("db.driver"),
			URL:             v.GetString("db.url"),
			Host:            v.GetString("db.host"),
			Port:            v.GetInt("db.port"),
			User:            v.GetString("db.user"),
			Password:        v.GetString("db.password"),
			DBName:          v.GetString("db.name"),
			SSLMode:         v.GetString("db.sslmode"),
			MaxOpenConns:    v.GetInt("db.max_open_conns"),
			MaxIdleConns:    v.GetInt("db.max_idle_conns"),
			ConnMaxLifetime: time.Duration(v.GetInt("db.conn_max_lifetime")) * time.Second,
			AutoMigrate:     v.GetBool("db.auto_migrate"),
		},
		Logger: LoggerConfig{
			Level: v.GetString("logger.level"),
			Env:   v.GetString("logger.env"),
		},
		Scraper: ScraperConfig{
			Timeout:  time.Duration(v.GetInt("scraper.timeout")) * time.Second,
			MaxChars: v.GetInt("scraper.max_chars"),
		},
		LLM: LLMConfig{
			Backend:         v.GetString("llm.backend"),
			APIKey:          v.GetString("llm.api_key"),
			PreferredModel:  v.GetString("llm.preferred_model"),
			CandidateModels: v.GetStringSlice("llm.candidate_models"),
			PromptFile:      v.GetString("llm.prompt_file"),
			Temperature:     v.GetFloat64("llm.temperature"),
			OllamaServerURL: v.GetString("llm.ollama.server_url"),
			OpenAIAPIKey:    v.GetString("llm.openai.api_key"),
		},
		Redis: RedisConfig{
			Address:  v.GetString("redis.address"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		Generation: GenerationConfig{
			URLLock: v.GetBool("generation.url_lock"),
			LockTTL: time.Duration(v.GetInt("generation.lock_ttl")) * time.Second,
		},
	}
}

// applyEnvOverrides maps the variable names used by existing deployments
// onto config keys that AutomaticEnv would not find by itself.
func applyEnvOverrides(cfg *Config) {
	if key := os.Getenv("GOOGLE_API_KEY"); key != "" {
		cfg.LLM.APIKey = strings.TrimSpace(key)
	}
	if model := os.Getenv("GEMINI_MODEL"); model != "" {
		cfg.LLM.PreferredModel = strings.TrimSpace(model)
	}
	if backend := os.Getenv("LLM_BACKEND"); backend != "" {
		cfg.LLM.Backend = backend
	}
	if openAIKey := os.Getenv("OPENAI_API_KEY"); openAIKey != "" {
		cfg.LLM.OpenAIAPIKey = openAIKey
	}
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		cfg.DB.URL = dsn
	}
	if driver := os.Getenv("DB_DRIVER"); driver != "" {
		cfg.DB.Driver = driver
	}
	if redisAddress := os.Getenv("REDIS_ADDRESS"); redisAddress != "" {
		cfg.Redis.Address = redisAddress
	}
	if redisPassword := os.Getenv("REDIS_PASSWORD"); redisPassword != "" {
		cfg.Redis.Password = redisPassword
	}
}

// Validate reports configuration that would only fail later at request time.
func (c *Config) Validate() error {
	switch c.DB.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("unsupported db.driver %q", c.DB.Driver)
	}

	switch c.LLM.Backend {
	case BackendGoogleAI, BackendGenAI:
		if c.LLM.APIKey == "" {
			return fmt.Errorf("GOOGLE_API_KEY (llm.api_key) is required for the %s backend", c.LLM.Backend)
		}
	case BackendOpenAI:
		if c.LLM.OpenAIAPIKey == "" {
			return errors.New("OPENAI_API_KEY (llm.openai.api_key) is required for the openai backend")
		}
	case BackendOllama:
		if c.LLM.OllamaServerURL == "" {
			return errors.New("llm.ollama.server_url is required for the ollama backend")
		}
	default:
		return fmt.Errorf("unsupported llm.backend %q", c.LLM.Backend)
	}

	if c.LLM.PreferredModel == "" && len(c.LLM.CandidateModels) == 0 {
		return errors.New("no LLM models configured: set GEMINI_MODEL or llm.candidate_models")
	}
	if c.Generation.URLLock && c.Redis.Address == "" {
		return errors.New("generation.url_lock requires redis.address")
	}
	return nil
}

// GetDSN returns the data source name for the configured driver. db.url
// (DATABASE_URL) wins over the individual fields.
func (c *Config) GetDSN() string {
	if c.DB.URL != "" {
		return c.DB.URL
	}

	if c.DB.Driver == DriverSQLite {
		return fmt.Sprintf("file:%s.db?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", c.DB.DBName)
	}

	dsn := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.DB.User, c.DB.Password),
		Host:   fmt.Sprintf("%s:%d", c.DB.Host, c.DB.Port),
		Path:   "/" + c.DB.DBName,
	}
	if c.DB.SSLMode != "" {
		dsn.RawQuery = "sslmode=" + url.QueryEscape(c.DB.SSLMode)
	}
	return dsn.String()
}
