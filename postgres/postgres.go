package postgres

import (
	"fmt"
	"strings"
	"time"

	"github.com/xy-planning-network/enums"
	"github.com/xy-planning-network/enums/logger"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// dryRunDSN is parsed, never dialed.
const dryRunDSN = "host=localhost port=5432 dbname=enums user=enums sslmode=disable"

// Connect creates a database connection through GORM according to config.
// GORM's own logging is routed through l.
//
// If config is for a test database, Connect drops and recreates the public schema.
func Connect(config *CxnConfig, l logger.Logger) (*DB, error) {
	if !config.Configured() {
		return nil, fmt.Errorf("%w: no database named", enums.ErrBadConfig)
	}

	gdb, err := gorm.Open(postgres.Open(config.DSN()), newGORMConfig(l))
	if err != nil {
		return nil, fmt.Errorf("%w: failed connecting: %s", enums.ErrUnexpected, err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("%w: %s", enums.ErrUnexpected, err)
	}
	sqlDB.SetMaxIdleConns(config.MaxIdleCxns)

	if config.IsTestDB {
		if err := gdb.Exec("DROP SCHEMA IF EXISTS public CASCADE; CREATE SCHEMA public;").Error; err != nil {
			return nil, fmt.Errorf("%w: failed resetting test schema: %s", enums.ErrUnexpected, err)
		}
	}

	return NewDB(gdb), nil
}

// DryRun constructs a *DB that renders SQL without ever connecting to PostgreSQL.
// Use it with *DB.ToSQL.
func DryRun() (*DB, error) {
	cfg := newGORMConfig(nil)
	cfg.DryRun = true
	cfg.DisableAutomaticPing = true

	gdb, err := gorm.Open(postgres.New(postgres.Config{DSN: dryRunDSN}), cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", enums.ErrUnexpected, err)
	}

	return NewDB(gdb), nil
}

func newGORMConfig(l logger.Logger) *gorm.Config {
	cfg := &gorm.Config{
		NamingStrategy: schema.NamingStrategy{
			NameReplacer: strings.NewReplacer("Table", ""),
		},
		NowFunc: func() time.Time {
			return time.Now().Truncate(time.Microsecond)
		},
	}

	if l != nil {
		cfg.Logger = newGORMLogger(l)
	}

	return cfg
}

// WipeDB queries for all of the tables in schema and then truncates them.
func WipeDB(db *gorm.DB, schema string) error {
	var tables []string
	err := db.
		Table("information_schema.tables").
		Select("table_name").
		Where("table_schema = ?", schema).
		Not("table_type = ?", "VIEW").
		Pluck("table_name", &tables).
		Error
	if err != nil {
		return err
	}

	if len(tables) == 0 {
		return nil
	}

	for i, t := range tables {
		tables[i] = fmt.Sprintf("%q.%q", schema, t)
	}

	return db.Exec(fmt.Sprintf("TRUNCATE %s RESTART IDENTITY CASCADE;", strings.Join(tables, ", "))).Error
}
