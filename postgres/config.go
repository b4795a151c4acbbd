package postgres

import (
	"fmt"
	"os"

	"github.com/xy-planning-network/enums"
)

// PG Docs: https://www.postgresql.org/docs/current/libpq-connect.html#LIBPQ-PARAMKEYWORDS
const cxnStr = "host=%s port=%s dbname=%s user=%s password=%s sslmode=%s"

const (
	dbHostEnvVar         = "DATABASE_HOST"
	defaultDBHost        = "localhost"
	dbNameEnvVar         = "DATABASE_NAME"
	dbPassEnvVar         = "DATABASE_PASSWORD"
	dbPortEnvVar         = "DATABASE_PORT"
	defaultDBPort        = "5432"
	dbSSLModeEnvVar      = "DATABASE_SSLMODE"
	defaultDBSSLMode     = "prefer"
	dbURLEnvVar          = "DATABASE_URL"
	dbUserEnvVar         = "DATABASE_USER"
	dbMaxIdleCxnsEnvVar  = "DATABASE_MAX_IDLE_CXNS"
	defaultDBMaxIdleCxns = 1

	dbTestHostEnvVar     = "DATABASE_TEST_HOST"
	defaultDBTestHost    = "localhost"
	dbTestNameEnvVar     = "DATABASE_TEST_NAME"
	dbTestPassEnvVar     = "DATABASE_TEST_PASSWORD"
	dbTestPortEnvVar     = "DATABASE_TEST_PORT"
	defaultDBTestPort    = "5432"
	dbTestURLEnvVar      = "DATABASE_TEST_URL"
	dbTestUserEnvVar     = "DATABASE_TEST_USER"
	dbTestSSLModeEnvVar  = "DATABASE_TEST_SSLMODE"
	defaultDBTestSSLMode = "prefer"
)

// CxnConfig holds connection information used to connect to a PostgreSQL database.
type CxnConfig struct {
	IsTestDB    bool
	URL         string
	Host        string
	Port        string
	Name        string
	User        string
	Password    string
	SSLMode     string
	MaxIdleCxns int
}

// NewConfig constructs a *CxnConfig appropriate to the given environment.
//
// In the Testing environment, the DATABASE_TEST_* env vars are consulted
// and the connection is marked as a test database.
// Otherwise, DATABASE_URL wins over the individual DATABASE_* env vars.
func NewConfig(env enums.Environment) *CxnConfig {
	var cfg *CxnConfig
	url := os.Getenv(dbURLEnvVar)
	testURL := os.Getenv(dbTestURLEnvVar)
	switch {
	case env.IsTesting() && testURL != "":
		cfg = &CxnConfig{IsTestDB: true, URL: testURL}

	case env.IsTesting():
		cfg = &CxnConfig{
			Host:     enums.EnvVarOrString(dbTestHostEnvVar, defaultDBTestHost),
			IsTestDB: true,
			Name:     os.Getenv(dbTestNameEnvVar),
			Password: os.Getenv(dbTestPassEnvVar),
			Port:     enums.EnvVarOrString(dbTestPortEnvVar, defaultDBTestPort),
			SSLMode:  enums.EnvVarOrString(dbTestSSLModeEnvVar, defaultDBTestSSLMode),
			User:     os.Getenv(dbTestUserEnvVar),
		}

	case url == "":
		cfg = &CxnConfig{
			Host:     enums.EnvVarOrString(dbHostEnvVar, defaultDBHost),
			IsTestDB: false,
			Name:     os.Getenv(dbNameEnvVar),
			Password: os.Getenv(dbPassEnvVar),
			Port:     enums.EnvVarOrString(dbPortEnvVar, defaultDBPort),
			SSLMode:  enums.EnvVarOrString(dbSSLModeEnvVar, defaultDBSSLMode),
			User:     os.Getenv(dbUserEnvVar),
		}

	default:
		cfg = &CxnConfig{IsTestDB: false, URL: url}
	}

	cfg.MaxIdleCxns = enums.EnvVarOrInt(dbMaxIdleCxnsEnvVar, defaultDBMaxIdleCxns)

	return cfg
}

// Configured asserts whether c names a database to connect to.
func (c *CxnConfig) Configured() bool { return c.URL != "" || c.Name != "" }

// DSN renders c as a connection string.
func (c *CxnConfig) DSN() string {
	if c.URL != "" {
		return c.URL
	}

	sslMode := c.SSLMode
	if sslMode == "" {
		// PG Docs: https://www.postgresql.org/docs/current/libpq-ssl.html#LIBPQ-SSL-SSLMODE-STATEMENTS
		sslMode = defaultDBSSLMode
	}

	return fmt.Sprintf(
		cxnStr,
		c.Host,
		c.Port,
		c.Name,
		c.User,
		c.Password,
		sslMode,
	)
}
