// Package config loads the datadict configuration from defaults, a YAML
// file, DATADICT_ environment variables and command-line flags.
package config

import (
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type DBConfig struct {
	Type         string `yaml:"type" json:"type" koanf:"type"`
	Host         string `yaml:"host" json:"host" koanf:"host"`
	Port         int    `yaml:"port" json:"port" koanf:"port"`
	Username     string `yaml:"username" json:"username" koanf:"username"`
	Password     string `yaml:"password" json:"password" koanf:"password"`
	DatabaseName string `yaml:"database_name" json:"database_name" koanf:"database_name"`
	DSN          string `yaml:"dsn" json:"dsn" koanf:"dsn"` // optional explicit DSN
}

type ServerConfig struct {
	Port   int    `yaml:"port" json:"port" koanf:"port"`
	WebDir string `yaml:"web_dir,omitempty" json:"web_dir" koanf:"web_dir"` // optional static assets

	// SessionSecret signs the session cookie. A random key is generated
	// when empty, which logs everyone out on restart.
	SessionSecret string        `yaml:"session_secret,omitempty" json:"session_secret" koanf:"session_secret"`
	SessionTTL    time.Duration `yaml:"session_ttl" json:"session_ttl" koanf:"session_ttl"`
}

// StorageConfig tunes calls to the dictionary store.
type StorageConfig struct {
	Timeout   time.Duration `yaml:"timeout" json:"timeout" koanf:"timeout"`
	BatchSize int           `yaml:"batch_size" json:"batch_size" koanf:"batch_size"`
}

type LogConfig struct {
	Level  string `yaml:"level" json:"level" koanf:"level"`
	Format string `yaml:"format" json:"format" koanf:"format"`
}

type EditorConfig struct {
	PageSize int `yaml:"page_size" json:"page_size" koanf:"page_size"`
}

type AppConfig struct {
	Database DBConfig      `yaml:"database" json:"database" koanf:"database"`
	Server   ServerConfig  `yaml:"server" json:"server" koanf:"server"`
	Storage  StorageConfig `yaml:"storage" json:"storage" koanf:"storage"`
	Log      LogConfig     `yaml:"log" json:"log" koanf:"log"`
	Editor   EditorConfig  `yaml:"editor" json:"editor" koanf:"editor"`

	// Demo serves a built-in sample dictionary from memory instead of a database.
	Demo bool `yaml:"demo" json:"demo" koanf:"demo"`
}

// Validate reports settings that would make the service misbehave.
func (c AppConfig) Validate() error {
	if c.Editor.PageSize < 1 {
		return fmt.Errorf("editor.page_size must be at least 1, got %d", c.Editor.PageSize)
	}
	if c.Storage.BatchSize < 1 {
		return fmt.Errorf("storage.batch_size must be at least 1, got %d", c.Storage.BatchSize)
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	if !c.Demo && c.Database.Type == "" {
		return fmt.Errorf("database.type is required unless demo mode is on")
	}
	return nil
}

// Dump renders cfg as YAML with secrets masked.
func Dump(cfg AppConfig) ([]byte, error) {
	if cfg.Database.Password != "" {
		cfg.Database.Password = redacted
	}
	if cfg.Database.DSN != "" {
		cfg.Database.DSN = redacted
	}
	if cfg.Server.SessionSecret != "" {
		cfg.Server.SessionSecret = redacted
	}
	return yaml.Marshal(cfg)
}

const redacted = "********"

// NormalizeDriver maps common aliases to canonical keys (keeps backwards compat).
func NormalizeDriver(d string) string {
	switch strings.ToLower(strings.TrimSpace(d)) {
	case "postgresql", "pg", "postgres":
		return "postgres"
	case "pgx":
		return "pgx"
	case "mysql", "mariadb":
		return "mysql"
	case "sqlite", "sqlite3":
		return "sqlite"
	case "mssql", "sqlserver":
		return "sqlserver"
	case "godror", "oracle":
		return "godror"
	case "duckdb":
		return "duckdb"
	default:
		return strings.ToLower(d)
	}
}

// BuildDriverAndDSN produces a driver name and DSN string for supported DB types.
func BuildDriverAndDSN(db DBConfig) (driver string, dsn string, err error) {
	// If explicit DSN provided, user must also set Type to choose driver or we guess
	t := NormalizeDriver(db.Type)

	if db.DSN != "" {
		return t, db.DSN, nil
	}

	switch t {
	case "postgres", "pgx":
		driver = t
		// simple URL form, understood by both lib/pq and pgx
		dsn = fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
			db.Username, db.Password, db.Host, db.Port, db.DatabaseName)
	case "mysql":
		driver = "mysql"
		dsn = fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true",
			db.Username, db.Password, db.Host, db.Port, db.DatabaseName)
	case "sqlite":
		driver = "sqlite"
		if db.DatabaseName == "" {
			return "", "", fmt.Errorf("sqlite needs a file path in database_name")
		}
		dsn = fmt.Sprintf("file:%s", db.DatabaseName)
	case "sqlserver":
		driver = "sqlserver"
		dsn = fmt.Sprintf("sqlserver://%s:%s@%s:%d?database=%s",
			db.Username, db.Password, db.Host, db.Port, db.DatabaseName)
	case "godror":
		driver = "godror"
		// simple EZCONNECT style; may need adjustments per environment
		dsn = fmt.Sprintf("%s/%s@%s:%d/%s",
			db.Username, db.Password, db.Host, db.Port, db.DatabaseName)
	case "duckdb":
		driver = "duckdb"
		// an empty path opens an in-memory database
		dsn = db.DatabaseName
	default:
		err = fmt.Errorf("unsupported database type: %s", db.Type)
	}
	return
}
