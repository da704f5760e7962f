package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Addr string `yaml:"-"` // computed after load
	} `yaml:"server"`

	DB struct {
		Host            string `yaml:"host"`
		Port            int    `yaml:"port"`
		Username        string `yaml:"username"`
		Password        string `yaml:"password"`
		Database        string `yaml:"database"`
		Charset         string `yaml:"charset"`
		ParseTime       bool   `yaml:"parse_time"`
		DSN             string `yaml:"-"` // computed after load
		MaxOpenConns    int    `yaml:"max_open_conns"`
		MaxIdleConns    int    `yaml:"max_idle_conns"`
		ConnMaxLifetime int    `yaml:"conn_max_lifetime"` // minutes
	} `yaml:"database"`

	Steam struct {
		APIKey           string `yaml:"api_key"`
		StoreBaseURL     string `yaml:"store_base_url"`
		CommunityBaseURL string `yaml:"community_base_url"`
		WebAPIBaseURL    string `yaml:"web_api_base_url"`
		RequestTimeout   int    `yaml:"request_timeout_sec"` // per-request timeout, seconds
		TagCacheTTLMin   int    `yaml:"tag_cache_ttl_min"`   // app popular-tag cache TTL, minutes
	} `yaml:"steam"`

	OpenAI struct {
		APIKey      string  `yaml:"api_key"`
		Model       string  `yaml:"model"`
		BaseURL     string  `yaml:"base_url"`
		Temperature float64 `yaml:"temperature"`
		TimeoutSec  int     `yaml:"timeout_sec"`
	} `yaml:"openai"`

	Recommend struct {
		CollabUserThreshold int     `yaml:"collab_user_threshold"` // user population at which collaborative mode turns on
		SimilarityThreshold float64 `yaml:"similarity_threshold"`  // tag-overlap ratio cutoff for similar users
		SimilarUserLimit    int     `yaml:"similar_user_limit"`
		ChatResultCount     int     `yaml:"chat_result_count"`
		ListResultCount     int     `yaml:"list_result_count"`
		AdultAge            int     `yaml:"adult_age"`
		SearchPageLimit     int     `yaml:"search_page_limit"`
		WideSearchPageLimit int     `yaml:"wide_search_page_limit"`
		ReviewDayRange      int     `yaml:"review_day_range"`
		ReviewPageSize      int     `yaml:"review_page_size"`
		RestrictedTagIDs    []int64 `yaml:"restricted_tag_ids"` // steam tag ids that mark adult-only content
	} `yaml:"recommend"`

	Sync struct {
		Hour             int `yaml:"hour"`        // daily steam sync hour (0-23)
		Minute           int `yaml:"minute"`      // daily steam sync minute (0-59)
		Concurrency      int `yaml:"concurrency"` // concurrent user syncs
		CheckIntervalSec int `yaml:"check_interval_sec"`
	} `yaml:"sync"`

	Log struct {
		Level    string `yaml:"level"`
		Format   string `yaml:"format"`
		Output   string `yaml:"output"`
		FilePath string `yaml:"file_path"`
	} `yaml:"log"`
}

func Load() *Config {
	// Load .env first; if it does not exist, keep using the system environment.
	_ = godotenv.Load()

	var cfg Config

	// Prefer config.yaml when present.
	if data, err := os.ReadFile("config.yaml"); err == nil {
		err = yaml.Unmarshal(data, &cfg)
		if err != nil {
			log.Printf("Error loading config.yaml: %v, falling back to environment variables", err)
			return loadFromEnv()
		}
		log.Println("Loading configuration from config.yaml")

		cfg.applyEnvOverrides()
		cfg.applyDefaults()
		return &cfg
	}

	// No config.yaml, load everything from the environment.
	return loadFromEnv()
}

func loadFromEnv() *Config {
	// Minimal configuration when config.yaml is unavailable.
	var cfg Config

	if port := os.Getenv("SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			cfg.Server.Port = p
		}
	}

	if dsn := os.Getenv("DB_DSN"); dsn != "" {
		cfg.DB.DSN = dsn
	}

	cfg.applyEnvOverrides()
	cfg.applyDefaults()

	log.Println("Configuration loaded from environment variables, some settings may be missing")
	return &cfg
}

// applyEnvOverrides pulls credentials and API keys from the environment so
// secrets never have to live in config.yaml.
func (cfg *Config) applyEnvOverrides() {
	if username := os.Getenv("DATABASE_USERNAME"); username != "" {
		cfg.DB.Username = username
	}
	if password := os.Getenv("DATABASE_PASSWORD"); password != "" {
		cfg.DB.Password = password
	}
	if apiKey := os.Getenv("STEAM_API_KEY"); apiKey != "" {
		cfg.Steam.APIKey = apiKey
	}
	if apiKey := os.Getenv("OPENAI_API_KEY"); apiKey != "" {
		cfg.OpenAI.APIKey = apiKey
	}
	if model := os.Getenv("OPENAI_MODEL"); model != "" {
		cfg.OpenAI.Model = model
	}
}

func (cfg *Config) applyDefaults() {
	cfg.Server.Addr = fmt.Sprintf(":%d", cfg.Server.Port)

	if cfg.DB.Charset == "" {
		cfg.DB.Charset = "utf8mb4"
	}
	if cfg.DB.DSN == "" && cfg.DB.Host != "" {
		parseTime := ""
		if cfg.DB.ParseTime {
			parseTime = "&parseTime=true"
		}
		cfg.DB.DSN = fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s%s",
			cfg.DB.Username,
			cfg.DB.Password,
			cfg.DB.Host,
			cfg.DB.Port,
			cfg.DB.Database,
			cfg.DB.Charset,
			parseTime)
	}

	if cfg.Steam.StoreBaseURL == "" {
		cfg.Steam.StoreBaseURL = "https://store.steampowered.com"
	}
	if cfg.Steam.CommunityBaseURL == "" {
		cfg.Steam.CommunityBaseURL = "https://steamcommunity.com"
	}
	if cfg.Steam.WebAPIBaseURL == "" {
		cfg.Steam.WebAPIBaseURL = "https://api.steampowered.com"
	}
	if cfg.Steam.RequestTimeout <= 0 {
		cfg.Steam.RequestTimeout = 15
	}
	if cfg.Steam.TagCacheTTLMin <= 0 {
		cfg.Steam.TagCacheTTLMin = 60
	}

	if cfg.OpenAI.BaseURL == "" {
		cfg.OpenAI.BaseURL = "https://api.openai.com"
	}
	if cfg.OpenAI.Model == "" {
		cfg.OpenAI.Model = "gpt-4o-mini"
	}
	if cfg.OpenAI.TimeoutSec <= 0 {
		cfg.OpenAI.TimeoutSec = 60
	}

	r := &cfg.Recommend
	if r.CollabUserThreshold <= 0 {
		r.CollabUserThreshold = 30
	}
	if r.SimilarityThreshold <= 0 {
		r.SimilarityThreshold = 0.3
	}
	if r.SimilarUserLimit <= 0 {
		r.SimilarUserLimit = 3
	}
	if r.ChatResultCount <= 0 {
		r.ChatResultCount = 3
	}
	if r.ListResultCount <= 0 {
		r.ListResultCount = 15
	}
	if r.AdultAge <= 0 {
		r.AdultAge = 20
	}
	if r.SearchPageLimit <= 0 {
		r.SearchPageLimit = 10
	}
	if r.WideSearchPageLimit <= 0 {
		r.WideSearchPageLimit = 50
	}
	if r.ReviewDayRange <= 0 {
		r.ReviewDayRange = 100
	}
	if r.ReviewPageSize <= 0 {
		r.ReviewPageSize = 100
	}
	if len(r.RestrictedTagIDs) == 0 {
		r.RestrictedTagIDs = []int64{12095, 6650, 5611, 9130, 24904}
	}

	if cfg.Sync.Concurrency <= 0 {
		cfg.Sync.Concurrency = 5
	}
	if cfg.Sync.CheckIntervalSec <= 0 {
		cfg.Sync.CheckIntervalSec = 60
	}
	if cfg.Sync.Hour < 0 || cfg.Sync.Hour > 23 {
		cfg.Sync.Hour = 4
	}
	if cfg.Sync.Minute < 0 || cfg.Sync.Minute > 59 {
		cfg.Sync.Minute = 0
	}
}
