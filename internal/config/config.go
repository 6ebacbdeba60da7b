package config

import "time"

// Config is the root application configuration.
type Config struct {
	Database   DatabaseConfig   `yaml:"database"`
	Log        LogConfig        `yaml:"log"`
	Attachment AttachmentConfig `yaml:"attachment"`
	Agenda     AgendaConfig     `yaml:"agenda"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// AttachmentConfig holds attachment store settings.
type AttachmentConfig struct {
	// MaxSizeBytes caps a single upload. Defaults to 200 MiB.
	MaxSizeBytes int64 `yaml:"max_size_bytes" env:"ATTACHMENT_MAX_SIZE_BYTES" env-default:"209715200"`
}

// AgendaConfig holds agenda item settings.
type AgendaConfig struct {
	// MaxItemDuration is the longest tier-1 presentation slot, in minutes.
	MaxItemDuration int `yaml:"max_item_duration" env:"AGENDA_MAX_ITEM_DURATION" env-default:"30"`
}
