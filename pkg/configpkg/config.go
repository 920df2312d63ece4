// Package configpkg provides parsing functionality for environment variables.
package configpkg

import (
	"time"

	"github.com/spf13/viper"
)

// Config stores all configuration of the application.
//
// The values are read by viper from a config file or environment variables.
type Config struct {
	Environment      string `mapstructure:"GO_ENV"`
	LogLevel         string `mapstructure:"LOG_LEVEL"`
	ServerAddress    string `mapstructure:"SERVER_ADDRESS"`
	DashboardEnabled bool   `mapstructure:"DASHBOARD_ENABLED"`

	DBDriver string `mapstructure:"DB_DRIVER"`
	DBSource string `mapstructure:"DB_SOURCE"`

	EconomyStore     string `mapstructure:"ECONOMY_STORE"`
	EconomyID        string `mapstructure:"ECONOMY_ID"`
	EconomyName      string `mapstructure:"ECONOMY_NAME"`
	CurrencySingular string `mapstructure:"CURRENCY_SINGULAR"`
	CurrencyPlural   string `mapstructure:"CURRENCY_PLURAL"`
	FractionalDigits int    `mapstructure:"FRACTIONAL_DIGITS"`

	DefaultEconomyID       string `mapstructure:"DEFAULT_ECONOMY_ID"`
	AllowMultipleEconomies bool   `mapstructure:"ALLOW_MULTIPLE_ECONOMIES"`

	MessagingDriver         string        `mapstructure:"MESSAGING_DRIVER"`
	MessagingURL            string        `mapstructure:"MESSAGING_URL"`
	MessagingTopic          string        `mapstructure:"MESSAGING_TOPIC"`
	MessagingPrefix         string        `mapstructure:"MESSAGING_PREFIX"`
	MessagingConnectTimeout time.Duration `mapstructure:"MESSAGING_CONNECT_TIMEOUT"`
	MessagingPublishTimeout time.Duration `mapstructure:"MESSAGING_PUBLISH_TIMEOUT"`

	OTELEnabled  bool   `mapstructure:"OTEL_ENABLED"`
	OTELEndpoint string `mapstructure:"OTEL_ENDPOINT"`
	OTELInsecure bool   `mapstructure:"OTEL_INSECURE"`
	ServiceName  string `mapstructure:"SERVICE_NAME"`
}

// Storage and messaging drivers.
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"

	MessagingNone     = "none"
	MessagingRedis    = "redis"
	MessagingPostgres = "postgres"
)

// Load read configuration from file or environment variables.
func Load(path string) (Config, error) {
	var c Config

	v := viper.New()

	v.AddConfigPath(path)
	v.SetConfigName("app")
	v.SetConfigType("env")

	setDefaults(v)

	v.AutomaticEnv()

	err := v.ReadInConfig()
	if err != nil {
		return c, err
	}

	err = v.Unmarshal(&c)
	if err != nil {
		return c, err
	}

	return c, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("GO_ENV", "production")
	v.SetDefault("SERVER_ADDRESS", "0.0.0.0:8080")
	v.SetDefault("DB_DRIVER", "postgres")
	v.SetDefault("ECONOMY_STORE", StoreMemory)
	v.SetDefault("ECONOMY_ID", "hyconomy")
	v.SetDefault("FRACTIONAL_DIGITS", 2)
	v.SetDefault("DEFAULT_ECONOMY_ID", "hyconomy")
	v.SetDefault("ALLOW_MULTIPLE_ECONOMIES", true)
	v.SetDefault("MESSAGING_DRIVER", MessagingNone)
	v.SetDefault("MESSAGING_TOPIC", "hyvault-events")
	v.SetDefault("MESSAGING_CONNECT_TIMEOUT", 5*time.Second)
	v.SetDefault("MESSAGING_PUBLISH_TIMEOUT", 2*time.Second)
	v.SetDefault("SERVICE_NAME", "pet-vault")
}
