package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
)

const (
	// DebugMode indicates service mode is debug.
	DebugMode = "debug"
	// TestMode indicates service mode is test.
	TestMode = "test"
	// ReleaseMode indicates service mode is release.
	ReleaseMode = "release"
)

type Config struct {
	ServiceName string
	ServiceHost string
	HTTPPort    string

	Environment string // debug, test, release
	Version     string

	JaegerHostPort string

	PostgresHost     string
	PostgresPort     int
	PostgresUser     string
	PostgresPassword string
	PostgresDatabase string

	PostgresMaxConnections int32
	MigrationsPath         string

	AirtableAPIURL       string
	AirtableAuthURL      string
	AirtableClientID     string
	AirtableClientSecret string
	AirtableRedirectURI  string

	WebhookNotifyURL string
	FrontendURL      string

	WebhookWorkerCount int
	WebhookQueueSize   int
}

// Load ...
func Load() Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Println(ErrEnvNodFound)
	}

	config := Config{}

	config.ServiceName = cast.ToString(getOrReturnDefaultValue("SERVICE_NAME", "formlink"))
	config.ServiceHost = cast.ToString(getOrReturnDefaultValue("FORM_SERVICE_HOST", "localhost"))
	config.HTTPPort = cast.ToString(getOrReturnDefaultValue("FORM_SERVICE_HTTP_PORT", ":4000"))

	config.Environment = cast.ToString(getOrReturnDefaultValue("ENVIRONMENT", DebugMode))
	config.Version = cast.ToString(getOrReturnDefaultValue("VERSION", "1.0"))

	config.JaegerHostPort = cast.ToString(getOrReturnDefaultValue("JAEGER_URL", ""))

	config.PostgresHost = cast.ToString(getOrReturnDefaultValue("POSTGRES_HOST", ""))
	config.PostgresPort = cast.ToInt(getOrReturnDefaultValue("POSTGRES_PORT", 5432))
	config.PostgresUser = cast.ToString(getOrReturnDefaultValue("POSTGRES_USER", ""))
	config.PostgresPassword = cast.ToString(getOrReturnDefaultValue("POSTGRES_PASSWORD", ""))
	config.PostgresDatabase = cast.ToString(getOrReturnDefaultValue("POSTGRES_DATABASE", ""))

	config.PostgresMaxConnections = cast.ToInt32(getOrReturnDefaultValue("POSTGRES_MAX_CONNECTIONS", 100))
	config.MigrationsPath = cast.ToString(getOrReturnDefaultValue("MIGRATIONS_PATH", "file://migrations"))

	config.AirtableAPIURL = cast.ToString(getOrReturnDefaultValue("AIRTABLE_API_URL", "https://api.airtable.com/v0"))
	config.AirtableAuthURL = cast.ToString(getOrReturnDefaultValue("AIRTABLE_AUTH_URL", "https://airtable.com/oauth2/v1"))
	config.AirtableClientID = cast.ToString(getOrReturnDefaultValue("AIRTABLE_CLIENT_ID", ""))
	config.AirtableClientSecret = cast.ToString(getOrReturnDefaultValue("AIRTABLE_CLIENT_SECRET", ""))
	config.AirtableRedirectURI = cast.ToString(getOrReturnDefaultValue("AIRTABLE_REDIRECT_URI", ""))

	config.WebhookNotifyURL = cast.ToString(getOrReturnDefaultValue("WEBHOOK_URL", ""))
	config.FrontendURL = cast.ToString(getOrReturnDefaultValue("FRONTEND_URL", "http://localhost:3000"))

	config.WebhookWorkerCount = cast.ToInt(getOrReturnDefaultValue("WEBHOOK_WORKER_COUNT", 4))
	config.WebhookQueueSize = cast.ToInt(getOrReturnDefaultValue("WEBHOOK_QUEUE_SIZE", 64))

	return config
}

func getOrReturnDefaultValue(key string, defaultValue any) any {
	val, exists := os.LookupEnv(key)

	if exists {
		return val
	}

	return defaultValue
}
