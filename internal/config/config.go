package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

type HTTPConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type PathsConfig struct {
	Data    string
	Public  string
	Assets  string
	Uploads string
	Views   string
}

type CookieConfig struct {
	Name   string
	Secure bool
	Domain string
}

type SessionConfig struct {
	Driver string
	Secret string
	TTL    time.Duration
	Dir    string
	Cookie CookieConfig

	SweepSchedule string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
}

type StorageConfig struct {
	Driver    string
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	Region    string
	MaxSize   int64
}

// AdminConfig describes the single account allowed into /admin.
// PasswordHash takes precedence over Password when both are set.
type AdminConfig struct {
	Username     string
	Password     string
	PasswordHash string
}

type AppConfig struct {
	Environment      string
	LogLevel         string
	HTTP             HTTPConfig
	Paths            PathsConfig
	Session          SessionConfig
	Redis            RedisConfig
	Storage          StorageConfig
	Admin            AdminConfig
	AllowCORSOrigins []string
}

func Load() (*AppConfig, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	return load(v)
}

// LoadFile reads the given yaml file instead of searching the default paths.
func LoadFile(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)

	return load(v)
}

func load(v *viper.Viper) (*AppConfig, error) {
	v.SetEnvPrefix("COBRA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Unprefixed names kept for deployments that predate the prefix.
	if err := v.BindEnv("session.secret", "COBRA_SESSION_SECRET", "SESSION_SECRET"); err != nil {
		return nil, fmt.Errorf("bind env: %w", err)
	}
	if err := v.BindEnv("http.port", "COBRA_HTTP_PORT", "PORT"); err != nil {
		return nil, fmt.Errorf("bind env: %w", err)
	}

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("load config file: %w", err)
		}
	}

	var cfg AppConfig
	if err := v.Unmarshal(&cfg, func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "mapstructure"
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		)
	}); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *AppConfig) validate() error {
	switch c.Session.Driver {
	case "file", "redis":
	default:
		return fmt.Errorf("invalid session driver %q, expected file or redis", c.Session.Driver)
	}

	switch c.Storage.Driver {
	case "local", "s3":
	default:
		return fmt.Errorf("invalid storage driver %q, expected local or s3", c.Storage.Driver)
	}

	if c.Session.Secret == "" {
		return fmt.Errorf("session secret must not be empty")
	}
	if c.Session.TTL <= 0 {
		return fmt.Errorf("session ttl must be positive, got %s", c.Session.TTL)
	}

	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("environment", "development")
	v.SetDefault("loglevel", "")

	v.SetDefault("http.host", "0.0.0.0")
	v.SetDefault("http.port", 3000)
	v.SetDefault("http.readtimeout", "10s")
	v.SetDefault("http.writetimeout", "15s")
	v.SetDefault("http.idletimeout", "60s")

	v.SetDefault("paths.data", "data")
	v.SetDefault("paths.public", "public")
	v.SetDefault("paths.assets", "assets")
	v.SetDefault("paths.uploads", "uploads")
	v.SetDefault("paths.views", "")

	v.SetDefault("session.driver", "file")
	v.SetDefault("session.secret", "cobra-secret")
	v.SetDefault("session.ttl", "24h")
	v.SetDefault("session.dir", "sessions")
	v.SetDefault("session.cookie.name", "sid")
	v.SetDefault("session.cookie.secure", false)
	v.SetDefault("session.sweepschedule", "0 */15 * * * *")

	v.SetDefault("redis.addr", "127.0.0.1:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.prefix", "sess:")

	v.SetDefault("storage.driver", "local")
	v.SetDefault("storage.endpoint", "")
	v.SetDefault("storage.accesskey", "")
	v.SetDefault("storage.secretkey", "")
	v.SetDefault("storage.bucket", "cobra-uploads")
	v.SetDefault("storage.usessl", false)
	v.SetDefault("storage.region", "us-east-1")
	v.SetDefault("storage.maxsize", 10<<20)

	v.SetDefault("admin.username", "admin")
	v.SetDefault("admin.password", "")
	v.SetDefault("admin.passwordhash", "")

	v.SetDefault("allowcorsorigins", []string{})
}
