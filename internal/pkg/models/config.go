package models

import "time"

// Config represents application configuration
type Config struct {
	App        AppConfig
	Server     ServerConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	NATS       NATSConfig
	NSQ        NSQConfig
	AMQP       AMQPConfig
	JWT        JWTConfig
	NewRelic   NewRelicConfig
	Logger     LoggerConfig
	Store      StoreConfig
	Events     EventsConfig
	Simulation SimulationConfig
}

// AppConfig contains application-specific configuration
type AppConfig struct {
	Name        string
	Environment string
	Debug       bool
	Version     string
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     int
	WriteTimeout    int
	ShutdownTimeout int
}

// DatabaseConfig contains database connection configuration
type DatabaseConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	Database  string
	SSLMode   string
	MaxConns  int
	IdleConns int
}

// RedisConfig contains Redis connection configuration
type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
	PoolSize int
}

// NATSConfig contains NATS connection configuration
type NATSConfig struct {
	URL string
}

// NSQConfig contains nsqd producer configuration
type NSQConfig struct {
	Address string
}

// AMQPConfig contains RabbitMQ connection configuration
type AMQPConfig struct {
	URL      string
	Exchange string
}

// JWTConfig contains JWT authentication configuration
type JWTConfig struct {
	Secret     string
	Expiration int // in minutes
	Issuer     string
}

// NewRelicConfig contains New Relic agent configuration
type NewRelicConfig struct {
	LicenseKey  string
	AppName     string
	Enabled     bool
	LogsEnabled bool
	ForwardLogs bool
}

// LoggerConfig contains logging configuration
type LoggerConfig struct {
	Level string
	Type  string
}

// StoreConfig selects the entity store backend
type StoreConfig struct {
	Backend       string // memory, postgres or remote
	RemoteURL     string
	RemoteAPIKey  string
	RemoteTimeout time.Duration
	SeedDemoData  bool
}

// EventsConfig selects the broker used for outbound notifications
type EventsConfig struct {
	Broker string // nats, nsq, amqp or none
	Tenant string
}

// SimulationConfig contains the dispatch and simulation tuning knobs
type SimulationConfig struct {
	ServiceActor        string
	Duration            time.Duration
	CountdownInterval   time.Duration
	RideCreationMin     time.Duration
	RideCreationMax     time.Duration
	AssignmentInterval  time.Duration
	MotionInterval      time.Duration
	SyncInterval        time.Duration
	CompletionGrace     time.Duration
	AccessGrace         time.Duration
	SyncMaxRetries      int
	SyncBaseDelay       time.Duration
	RideFetchLimit      int
	AssignmentPolicy    string // random or nearest
	SearchRadiusKm      float64
	ForceSyncAfterWrite bool
	Seed                int64
}
