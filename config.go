package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// Config defines the structure of the configuration file.
type Config struct {
	GitCommit          string        `yaml:"git_commit" envconfig:"BHV_GIT_COMMIT"`
	GitTag             string        `yaml:"git_tag" envconfig:"BHV_GIT_TAG"`
	BuildTime          string        `yaml:"build_time" envconfig:"BHV_BUILD_TIME"`
	IsProduction       bool          `yaml:"is_production" envconfig:"BHV_IS_PRODUCTION"`
	LogLevel           zapcore.Level `yaml:"log_level" envconfig:"BHV_LOG_LEVEL"`
	LogFile            string        `yaml:"log_file" envconfig:"BHV_LOG_FILE"`
	OpsEndpointsEnable bool          `yaml:"ops_endpoints_enable" envconfig:"BHV_OPS_ENDPOINTS_ENABLE"`
	ProfilerEnable     bool          `yaml:"profiler_enable" envconfig:"BHV_PROFILER_ENABLE"`
	Server             ServerConfig  `yaml:"server"`
	Mongo              MongoConfig   `yaml:"mongo"`
	Redis              RedisConfig   `yaml:"redis"`
	BoltDB             BoltDBConfig  `yaml:"boltdb"`
	Auth               AuthConfig    `yaml:"auth"`
}

type ServerConfig struct {
	Host            string        `yaml:"host" envconfig:"BHV_SERVER_HOST"`
	Port            string        `yaml:"port" envconfig:"BHV_SERVER_PORT"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"BHV_SERVER_READ_TIMEOUT"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"BHV_SERVER_WRITE_TIMEOUT"`
	RequestTimeout  time.Duration `yaml:"request_timeout" envconfig:"BHV_SERVER_REQUEST_TIMEOUT"` // Time to wait for a request to finish
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"BHV_SERVER_SHUTDOWN_TIMEOUT"`
}

type MongoConfig struct {
	URI            string        `yaml:"uri" envconfig:"BHV_MONGO_URI"`
	Database       string        `yaml:"database" envconfig:"BHV_MONGO_DATABASE"`
	ConnectTimeout time.Duration `yaml:"connect_timeout" envconfig:"BHV_MONGO_CONNECT_TIMEOUT"`
}

type RedisConfig struct {
	Host          string        `yaml:"host" envconfig:"BHV_REDIS_HOST"`
	Port          string        `yaml:"port" envconfig:"BHV_REDIS_PORT"`
	DialTimeout   time.Duration `yaml:"dial_timeout" envconfig:"BHV_REDIS_DIAL_TIMEOUT"`
	ReadTimeout   time.Duration `yaml:"read_timeout" envconfig:"BHV_REDIS_READ_TIMEOUT"`
	WriteTimeout  time.Duration `yaml:"write_timeout" envconfig:"BHV_REDIS_WRITE_TIMEOUT"`
	PoolSize      int           `yaml:"pool_size" envconfig:"BHV_REDIS_POOL_SIZE"`
	PoolTimeout   time.Duration `yaml:"pool_timeout" envconfig:"BHV_REDIS_POOL_TIMEOUT"`
	Username      string        `yaml:"username" envconfig:"BHV_REDIS_USERNAME"`
	Password      string        `yaml:"password" envconfig:"BHV_REDIS_PASSWORD"`
	DatabaseIndex int           `yaml:"db_index" envconfig:"BHV_REDIS_DATABASE_INDEX"`
}

type BoltDBConfig struct {
	FilePath   string        `yaml:"filepath" envconfig:"BHV_BOLTDB_FILE_PATH"`
	Timeout    time.Duration `yaml:"timeout" envconfig:"BHV_BOLTDB_TIMEOUT"`
	BucketName string        `yaml:"bucket_name" envconfig:"BHV_BOLTDB_BUCKET_NAME"`
}

// AuthConfig drives the session checking performed by the auth gate.
// GatedResources is the auditable per-route policy table: write operations
// (create/update/delete) of the listed resources require an authenticated
// session. Read operations are never gated.
type AuthConfig struct {
	SessionCookie  string   `yaml:"session_cookie" envconfig:"BHV_AUTH_SESSION_COOKIE"`
	Store          string   `yaml:"store" envconfig:"BHV_AUTH_STORE"` // redis or boltdb
	GatedResources []string `yaml:"gated_resources" envconfig:"BHV_AUTH_GATED_RESOURCES"`
}

// LoadConfigFile provides an instance of config structure for the all application.
func LoadConfigFile(configFile string) (*Config, error) {
	file, err := os.Open(configFile)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	cfg := &Config{}
	yd := yaml.NewDecoder(file)
	err = yd.Decode(cfg)

	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfigEnvs reads the environments variables and provides an instance of the App config.
func LoadConfigEnvs(prefix string, config *Config) error {
	return envconfig.Process(prefix, config)
}

// InitConfig setup defaults values for non provided parameters
// and configures build tags values to be used if provided.
func InitConfig(config *Config, gitCommit, gitTag, buildTime string) error {
	if len(gitCommit) != 0 {
		config.GitCommit = gitCommit
	}

	if len(gitTag) != 0 {
		config.GitTag = gitTag
	}

	if len(buildTime) != 0 {
		config.BuildTime = buildTime
	}

	if len(config.Server.Host) == 0 || len(config.Server.Port) == 0 {
		return errors.New("make sure to set valid server address and port in configuration file")
	}

	if len(config.Mongo.URI) == 0 || len(config.Mongo.Database) == 0 {
		return errors.New("make sure to set valid mongo uri and database name in configuration file")
	}

	if len(config.Auth.SessionCookie) == 0 {
		config.Auth.SessionCookie = "bookhaven.sid"
	}

	switch config.Auth.Store {
	case "":
		config.Auth.Store = "redis"
	case "redis", "boltdb":
	default:
		return fmt.Errorf("unknown session store backend in configuration file: %q", config.Auth.Store)
	}

	if config.Auth.Store == "redis" && (len(config.Redis.Host) == 0 || len(config.Redis.Port) == 0) {
		return errors.New("make sure to set valid redis address and port in configuration file")
	}

	if config.Auth.Store == "boltdb" && len(config.BoltDB.FilePath) == 0 {
		return errors.New("make sure to set valid boltdb file path in configuration file")
	}

	if config.Auth.GatedResources == nil {
		config.Auth.GatedResources = []string{"books", "orders"}
	}

	return nil
}

// LoadAndInitConfigs loads in order the configs from various predefined sources
// then build the App configuration data.
func LoadAndInitConfigs(gitCommit, gitTag, buildTime string) (*Config, error) {
	// Setup the yaml configuration from file.
	config, err := LoadConfigFile("./config.yml")
	if err != nil {
		return config, fmt.Errorf("failed to load configurations from file: %s", err)
	}

	// Set the environment configuration.
	err = godotenv.Load("./config.env")
	if err != nil && !os.IsNotExist(err) {
		return config, fmt.Errorf("failed to set environment configurations: %s", err)
	}

	// Use environment variables with prefix `BHV`.
	err = LoadConfigEnvs("BHV", config)
	if err != nil {
		return config, fmt.Errorf("failed to load configurations from environment: %s", err)
	}

	err = InitConfig(config, gitCommit, gitTag, buildTime)
	if err != nil {
		return config, fmt.Errorf("failed to initialize configurations: %s", err)
	}
	return config, nil
}
