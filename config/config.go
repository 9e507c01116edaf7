package config

import (
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
	"github.com/slighter12/go-lib/database/postgres"
)

const (
	defaultPath               = "."
	defaultMaxRequestBodySize = "100KB"
	defaultHost               = "0.0.0.0"
	defaultPort               = 5000
	defaultWorkerPort         = 5001
)

// Storage engine types.
const (
	StorageTypeFile = "file"
	StorageTypeDB   = "db"
)

// Storage mediums of the file engine.
const (
	MediumBlob  = "blob"
	MediumRedis = "redis"
)

// Database drivers of the db engine.
const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
)

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	HTTP struct {
		Host               string `json:"host" yaml:"host"`
		Port               int    `json:"port" yaml:"port"`
		MaxRequestBodySize string `json:"maxRequestBodySize" yaml:"maxRequestBodySize"`
		Timeouts           struct {
			ReadTimeout       time.Duration `json:"readTimeout" yaml:"readTimeout"`
			ReadHeaderTimeout time.Duration `json:"readHeaderTimeout" yaml:"readHeaderTimeout"`
			WriteTimeout      time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
			IdleTimeout       time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
		} `json:"timeouts" yaml:"timeouts"`
	} `json:"http" yaml:"http"`

	Storage *StorageConfig `json:"storage" yaml:"storage"`

	Postgres *postgres.DBConn `json:"postgres" yaml:"postgres" mapstructure:"postgres"`

	MySQL *MySQLConfig `json:"mysql" yaml:"mysql"`

	Redis *RedisConfig `json:"redis" yaml:"redis"`

	Auth *AuthConfig `json:"auth" yaml:"auth"`

	// Events configuration for change-event publishing
	Events *EventsConfig `json:"events" yaml:"events"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// StorageConfig selects and configures the storage engine.
type StorageConfig struct {
	// Type is "file" for the flat-file engine or "db" for the relational one
	Type string `json:"type" yaml:"type"`

	File struct {
		// Medium is "blob" (gocloud bucket) or "redis"
		Medium string `json:"medium" yaml:"medium"`
		// URL of the bucket, e.g. file://./data?create_dir=true, mem://, gs://bucket
		URL string `json:"url" yaml:"url"`
		// Key is the object name (or redis key) of the document
		Key string `json:"key" yaml:"key"`
	} `json:"file" yaml:"file"`

	DB struct {
		// Driver is "postgres" or "mysql"
		Driver string `json:"driver" yaml:"driver"`
	} `json:"db" yaml:"db"`
}

// MySQLConfig defines the mysql connection of the db engine.
type MySQLConfig struct {
	Host            string         `json:"host" yaml:"host"`
	Port            int            `json:"port" yaml:"port"`
	UserName        string         `json:"userName" yaml:"userName"`
	Password        string         `json:"password" yaml:"password"`
	Database        string         `json:"database" yaml:"database"`
	MaxOpenConns    int            `json:"maxOpenConns" yaml:"maxOpenConns"`
	MaxIdleConns    int            `json:"maxIdleConns" yaml:"maxIdleConns"`
	ConnMaxLifetime time.Duration  `json:"connMaxLifetime" yaml:"connMaxLifetime"`
	Replicas        []MySQLReplica `json:"-" yaml:"-" mapstructure:"-"`
}

// MySQLReplica is a read-only mysql endpoint. Credentials default to the primary's.
type MySQLReplica struct {
	Host     string
	Port     int
	UserName string
	Password string
}

// RedisConfig defines the redis connection used by the redis medium.
type RedisConfig struct {
	Addr     string `json:"addr" yaml:"addr"`
	Password string `json:"password" yaml:"password"`
	DB       int    `json:"db" yaml:"db"`
}

// AuthConfig defines authentication-related configuration
type AuthConfig struct {
	BcryptCost int `json:"bcryptCost" yaml:"bcryptCost"`
}

// EventsConfig defines change-event publishing
type EventsConfig struct {
	// Provider type: "" disables publishing, "local", "google" or "rabbitmq"
	Provider string `json:"provider" yaml:"provider"`

	// Google Cloud project ID (for google provider)
	ProjectID string `json:"projectId" yaml:"projectId"`

	// Pub/Sub topic ID (for google provider)
	TopicID string `json:"topicId" yaml:"topicId"`

	// Local HTTP endpoint for development (for local provider)
	LocalEndpoint string `json:"localEndpoint" yaml:"localEndpoint"`

	// AMQP URL and queue name (for rabbitmq provider)
	AMQPURL string `json:"amqpUrl" yaml:"amqpUrl"`
	Queue   string `json:"queue" yaml:"queue"`

	// Port of the event worker receiving push deliveries
	WorkerPort int `json:"workerPort" yaml:"workerPort"`

	// Require a Google-signed OIDC token on push deliveries
	VerifyPushAuth bool `json:"verifyPushAuth" yaml:"verifyPushAuth"`
}

// LoadWithEnv loads .yaml files through koanf.
func LoadWithEnv[T any](currEnv string, configPath ...string) (*T, error) {
	cfg := new(T)
	koanfInstance := koanf.New(".")

	// Build list of paths to search for config file
	searchPaths := []string{defaultPath}
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "os.Getwd")
		}
		for _, path := range configPath {
			abs := filepath.Join(pwd, path)
			searchPaths = append(searchPaths, abs)
		}
	}

	var configFile string
	var found bool
	for _, path := range searchPaths {
		candidate := filepath.Join(path, currEnv+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate
			found = true

			break
		}
	}

	if !found {
		return nil, errors.Errorf("config file %s.yaml not found in any search path", currEnv)
	}

	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", currEnv)
	}

	existingConfigMap := koanfInstance.Raw()

	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			// Example: STORAGE_FILE_URL -> storage.file.url, EVENTS_AMQPURL -> events.amqpUrl
			key := canonicalizeEnvKey(k, existingConfigMap)

			return key, v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
			MatchName: func(mapKey, fieldName string) bool {
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", currEnv)
	}

	return cfg, nil
}

func New() (*Config, error) {
	if err := loadDotEnv(".env"); err != nil {
		return nil, err
	}

	cfg, err := LoadWithEnv[Config]("config", "config", "../config", "../../config")
	if err != nil {
		return nil, err
	}

	applyDefaults(cfg)
	applyAPIEnv(cfg)

	if cfg.Postgres != nil {
		// POSTGRES_REPLICAS_0_HOST, POSTGRES_REPLICAS_0_PORT, ...
		cfg.Postgres.Replicas = buildReplicasFromEnv()
	}
	if cfg.MySQL != nil {
		cfg.MySQL.Replicas = buildMySQLReplicasFromEnv()
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadDotEnv exports the variables of a .env file if one exists. Variables
// already set in the environment win.
func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	return errors.Wrapf(err, "load %s", path)
}

func applyDefaults(cfg *Config) {
	if strings.TrimSpace(cfg.HTTP.MaxRequestBodySize) == "" {
		cfg.HTTP.MaxRequestBodySize = defaultMaxRequestBodySize
	}
	if cfg.HTTP.Host == "" {
		cfg.HTTP.Host = defaultHost
	}
	if cfg.HTTP.Port == 0 {
		cfg.HTTP.Port = defaultPort
	}
	if cfg.Storage == nil {
		cfg.Storage = &StorageConfig{}
	}
	if cfg.Storage.Type == "" {
		cfg.Storage.Type = StorageTypeFile
	}
	if cfg.Storage.File.Medium == "" {
		cfg.Storage.File.Medium = MediumBlob
	}
	if cfg.Storage.File.URL == "" {
		cfg.Storage.File.URL = "file://./data?create_dir=true"
	}
	if cfg.Storage.DB.Driver == "" {
		cfg.Storage.DB.Driver = DriverPostgres
	}
	if cfg.Events == nil {
		cfg.Events = &EventsConfig{}
	}
	if cfg.Events.WorkerPort == 0 {
		cfg.Events.WorkerPort = defaultWorkerPort
	}
}

// applyAPIEnv honours the HBNB_* variables deployments of the service already set.
func applyAPIEnv(cfg *Config) {
	if host := os.Getenv("HBNB_API_HOST"); host != "" {
		cfg.HTTP.Host = host
	}
	if port, err := strconv.Atoi(os.Getenv("HBNB_API_PORT")); err == nil && port > 0 {
		cfg.HTTP.Port = port
	}
	if storageType := os.Getenv("HBNB_TYPE_STORAGE"); storageType != "" {
		cfg.Storage.Type = storageType
	}
}

func (cfg *Config) validate() error {
	switch cfg.Storage.Type {
	case StorageTypeFile:
		if cfg.Storage.File.Medium != MediumBlob && cfg.Storage.File.Medium != MediumRedis {
			return errors.Errorf("unsupported storage medium %q", cfg.Storage.File.Medium)
		}
		if cfg.Storage.File.Medium == MediumRedis && cfg.Redis == nil {
			return errors.New("storage medium redis requires a redis section")
		}
	case StorageTypeDB:
		switch cfg.Storage.DB.Driver {
		case DriverPostgres:
			if cfg.Postgres == nil {
				return errors.New("storage driver postgres requires a postgres section")
			}
		case DriverMySQL:
			if cfg.MySQL == nil {
				return errors.New("storage driver mysql requires a mysql section")
			}
		default:
			return errors.Errorf("unsupported storage driver %q", cfg.Storage.DB.Driver)
		}
	default:
		return errors.Errorf("unsupported storage type %q", cfg.Storage.Type)
	}

	return nil
}

func canonicalizeEnvKey(rawKey string, existing map[string]any) string {
	segments := strings.Split(strings.ToLower(rawKey), "_")
	canonical := make([]string, 0, len(segments))
	current := existing

	for _, segment := range segments {
		if segment == "" {
			continue
		}

		if matched, next, ok := findExistingSegment(current, segment); ok {
			canonical = append(canonical, matched)
			current = next
		} else {
			canonical = append(canonical, segment)
			current = nil
		}
	}

	return strings.Join(canonical, ".")
}

func findExistingSegment(current map[string]any, segment string) (matched string, next map[string]any, ok bool) {
	if len(current) == 0 {
		return "", nil, false
	}

	needle := normalizeToken(segment)
	for key, value := range current {
		if normalizeToken(key) != needle {
			continue
		}

		child, _ := value.(map[string]any)

		return key, child, true
	}

	return "", nil, false
}

func normalizeToken(s string) string {
	var normalized strings.Builder
	normalized.Grow(len(s))

	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		normalized.WriteRune(unicode.ToLower(r))
	}

	return normalized.String()
}

// buildReplicasFromEnv builds the replicas slice from environment variables.
// Environment variable format: POSTGRES_REPLICAS_{index}_{field}
func buildReplicasFromEnv() []postgres.ConnectionConfig {
	var replicas []postgres.ConnectionConfig

	for i := 0; ; i++ {
		prefix := "POSTGRES_REPLICAS_" + strconv.Itoa(i) + "_"

		host := os.Getenv(prefix + "HOST")
		port := os.Getenv(prefix + "PORT")
		if host == "" || port == "" {
			break
		}

		replicas = append(replicas, postgres.ConnectionConfig{
			Host:     host,
			Port:     port,
			UserName: os.Getenv(prefix + "USERNAME"),
			Password: os.Getenv(prefix + "PASSWORD"),
		})
	}

	return replicas
}

// buildMySQLReplicasFromEnv reads MYSQL_REPLICAS_{index}_{HOST,PORT,USERNAME,PASSWORD}.
func buildMySQLReplicasFromEnv() []MySQLReplica {
	var replicas []MySQLReplica

	for i := 0; ; i++ {
		prefix := "MYSQL_REPLICAS_" + strconv.Itoa(i) + "_"

		host := os.Getenv(prefix + "HOST")
		port, err := strconv.Atoi(os.Getenv(prefix + "PORT"))
		if host == "" || err != nil {
			break
		}

		replicas = append(replicas, MySQLReplica{
			Host:     host,
			Port:     port,
			UserName: os.Getenv(prefix + "USERNAME"),
			Password: os.Getenv(prefix + "PASSWORD"),
		})
	}

	return replicas
}
