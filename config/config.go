package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
)

type Config struct {
	Environment string
	ServiceName string

	KafkaUrl string

	PostgresHost     string
	PostgresPort     int
	PostgresUser     string
	PostgresPassword string
	PostgresDatabase string

	LogLevel string

	HttpHost string
	HttpPort string

	// TTLs for the category view cache
	RootListTTL time.Duration
	TreeTTL     time.Duration
	PopularTTL  time.Duration
	ChildrenTTL time.Duration

	SweepEnabled bool
	SweepPeriod  time.Duration
}

func Load() Config {
	envFileName := cast.ToString(getOrReturnDefault("ENV_FILE_PATH", "./app/.env"))

	if err := godotenv.Load(envFileName); err != nil {
		// no .env file, environment variables only
	}
	config := Config{}

	config.Environment = cast.ToString(getOrReturnDefault("ENVIRONMENT", "develop"))
	config.LogLevel = cast.ToString(getOrReturnDefault("LOG_LEVEL", "info"))
	config.ServiceName = cast.ToString(getOrReturnDefault("SERVICE_NAME", "petilan_category_service"))

	config.PostgresHost = cast.ToString(getOrReturnDefault("POSTGRES_HOST", "localhost"))
	config.PostgresPort = cast.ToInt(getOrReturnDefault("POSTGRES_PORT", 5432))
	config.PostgresUser = cast.ToString(getOrReturnDefault("POSTGRES_USER", "postgres"))
	config.PostgresPassword = cast.ToString(getOrReturnDefault("POSTGRES_PASSWORD", "root"))
	config.PostgresDatabase = cast.ToString(getOrReturnDefault("POSTGRES_DATABASE", "petilan_category_service"))

	config.KafkaUrl = cast.ToString(getOrReturnDefault("KAFKA_URL", "localhost:9092"))

	config.HttpPort = cast.ToString(getOrReturnDefault("HTTP_PORT", ":8010"))
	config.HttpHost = cast.ToString(getOrReturnDefault("LISTEN_HOST", ""))

	config.RootListTTL = cast.ToDuration(getOrReturnDefault("CACHE_ROOT_LIST_TTL", "1h"))
	config.TreeTTL = cast.ToDuration(getOrReturnDefault("CACHE_TREE_TTL", "30m"))
	config.PopularTTL = cast.ToDuration(getOrReturnDefault("CACHE_POPULAR_TTL", "30m"))
	config.ChildrenTTL = cast.ToDuration(getOrReturnDefault("CACHE_CHILDREN_TTL", "30m"))

	config.SweepEnabled = cast.ToBool(getOrReturnDefault("USAGE_SWEEP_ENABLED", true))
	config.SweepPeriod = cast.ToDuration(getOrReturnDefault("USAGE_SWEEP_PERIOD", "1h"))

	return config
}

func getOrReturnDefault(key string, defaultValue interface{}) interface{} {
	_, exists := os.LookupEnv(key)

	if exists {
		return os.Getenv(key)
	}

	return defaultValue
}
