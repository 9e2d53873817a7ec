package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server       ServerConfig
	Database     DatabaseConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Recommend    RecommendConfig
	Logging      LoggingConfig
	GeminiAPIKey string
}

type ServerConfig struct {
	Host         string
	Port         int
	Env          string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type JWTConfig struct {
	AccessSecret string
}

// RecommendConfig holds the tunable knobs of the recommendation engine:
// scorer weights and per-section sizes/pools.
type RecommendConfig struct {
	SimilarityWeight  float64
	IntentWeight      float64
	SkillWeight       float64
	LocalityWeight    float64
	RecencyWeight     float64
	RecencyWindowDays int

	BestAffinitySize    int
	BestAffinityPool    int
	RecentlyActiveSize  int
	RecentWindowDays    int
	GeneralSize         int
	GeneralPool         int
	GeneralTopCut       int
	SameInstitutionSize int
	IntentGroupSize     int
	ExploratorySize     int

	StaleAfter time.Duration
}

type LoggingConfig struct {
	Level string
}

// Load loads configuration from environment variables or .env file
func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	// Try to read from .env file, but don't fail if it doesn't exist
	_ = viper.ReadInConfig()

	setRecommendDefaults()

	config := &Config{
		Server: ServerConfig{
			Host:         viper.GetString("SERVER_HOST"),
			Port:         viper.GetInt("SERVER_PORT"),
			Env:          viper.GetString("ENV"),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetInt("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			DBName:   viper.GetString("DB_NAME"),
			SSLMode:  viper.GetString("DB_SSL_MODE"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetInt("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			AccessSecret: viper.GetString("JWT_ACCESS_SECRET"),
		},
		Recommend: RecommendConfig{
			SimilarityWeight:  viper.GetFloat64("REC_SIMILARITY_WEIGHT"),
			IntentWeight:      viper.GetFloat64("REC_INTENT_WEIGHT"),
			SkillWeight:       viper.GetFloat64("REC_SKILL_WEIGHT"),
			LocalityWeight:    viper.GetFloat64("REC_LOCALITY_WEIGHT"),
			RecencyWeight:     viper.GetFloat64("REC_RECENCY_WEIGHT"),
			RecencyWindowDays: viper.GetInt("REC_RECENCY_WINDOW_DAYS"),

			BestAffinitySize:    viper.GetInt("REC_BEST_AFFINITY_SIZE"),
			BestAffinityPool:    viper.GetInt("REC_BEST_AFFINITY_POOL"),
			RecentlyActiveSize:  viper.GetInt("REC_RECENTLY_ACTIVE_SIZE"),
			RecentWindowDays:    viper.GetInt("REC_RECENT_WINDOW_DAYS"),
			GeneralSize:         viper.GetInt("REC_GENERAL_SIZE"),
			GeneralPool:         viper.GetInt("REC_GENERAL_POOL"),
			GeneralTopCut:       viper.GetInt("REC_GENERAL_TOP_CUT"),
			SameInstitutionSize: viper.GetInt("REC_SAME_INSTITUTION_SIZE"),
			IntentGroupSize:     viper.GetInt("REC_INTENT_GROUP_SIZE"),
			ExploratorySize:     viper.GetInt("REC_EXPLORATORY_SIZE"),

			StaleAfter: viper.GetDuration("REC_STALE_AFTER"),
		},
		Logging: LoggingConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
		GeminiAPIKey: viper.GetString("GEMINI_API_KEY"),
	}

	// Validate critical configuration
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func setRecommendDefaults() {
	viper.SetDefault("REC_SIMILARITY_WEIGHT", 0.65)
	viper.SetDefault("REC_INTENT_WEIGHT", 0.25)
	viper.SetDefault("REC_SKILL_WEIGHT", 0.2)
	viper.SetDefault("REC_LOCALITY_WEIGHT", 0.1)
	viper.SetDefault("REC_RECENCY_WEIGHT", 0.1)
	viper.SetDefault("REC_RECENCY_WINDOW_DAYS", 30)

	viper.SetDefault("REC_BEST_AFFINITY_SIZE", 5)
	viper.SetDefault("REC_BEST_AFFINITY_POOL", 30)
	viper.SetDefault("REC_RECENTLY_ACTIVE_SIZE", 10)
	viper.SetDefault("REC_RECENT_WINDOW_DAYS", 7)
	viper.SetDefault("REC_GENERAL_SIZE", 100)
	viper.SetDefault("REC_GENERAL_POOL", 200)
	viper.SetDefault("REC_GENERAL_TOP_CUT", 80)
	viper.SetDefault("REC_SAME_INSTITUTION_SIZE", 10)
	viper.SetDefault("REC_INTENT_GROUP_SIZE", 3)
	viper.SetDefault("REC_EXPLORATORY_SIZE", 10)

	viper.SetDefault("REC_STALE_AFTER", 24*time.Hour)
}

// Validate validates critical configuration values
func (c *Config) Validate() error {
	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("database user is required")
	}
	if c.Database.DBName == "" {
		return fmt.Errorf("database name is required")
	}
	if c.JWT.AccessSecret == "" {
		return fmt.Errorf("JWT access secret is required")
	}
	if len(c.JWT.AccessSecret) < 32 {
		return fmt.Errorf("JWT access secret must be at least 32 characters")
	}
	if c.Recommend.GeneralTopCut > c.Recommend.GeneralSize {
		return fmt.Errorf("REC_GENERAL_TOP_CUT cannot exceed REC_GENERAL_SIZE")
	}
	return nil
}

// GetDSN returns PostgreSQL connection string
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// GetAddr returns Redis address
func (c *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
