package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/terraincognita07/cyclecal/internal/services"
)

const envPrefix = "cyclecal"

type Config struct {
	Port            string
	DBPath          string
	SecretKey       string
	CookieSecure    bool
	LogLevel        string
	Location        *time.Location
	WeekStart       time.Weekday
	ClassifierScope services.ClassifierScope
	HorizonCycles   int
}

// Load reads the optional YAML file, then lets CYCLECAL_* environment
// variables override it ("server.port" is CYCLECAL_SERVER_PORT).
func Load(file string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("yaml")
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", file, err)
		}
	} else {
		v.SetConfigName("cyclecal")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/cyclecal/")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	v.AutomaticEnv()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("db.path", "data/cyclecal.db")
	v.SetDefault("auth.secret_key", "")
	v.SetDefault("auth.cookie_secure", false)
	v.SetDefault("log.level", "info")
	v.SetDefault("tz", "UTC")
	v.SetDefault("calendar.week_start", "sunday")
	v.SetDefault("calendar.classifier_scope", string(services.ScopeMonth))
	v.SetDefault("prediction.horizon", services.DefaultHorizonCycles)
}

func fromViper(v *viper.Viper) (Config, error) {
	location, err := time.LoadLocation(strings.TrimSpace(v.GetString("tz")))
	if err != nil {
		return Config{}, fmt.Errorf("invalid tz: %w", err)
	}
	weekStart, err := services.ParseWeekStart(v.GetString("calendar.week_start"))
	if err != nil {
		return Config{}, err
	}
	scope, err := services.ParseClassifierScope(v.GetString("calendar.classifier_scope"))
	if err != nil {
		return Config{}, err
	}
	horizon := v.GetInt("prediction.horizon")
	if horizon < 1 {
		return Config{}, fmt.Errorf("prediction.horizon must be positive, got %d", horizon)
	}
	port := strings.TrimSpace(v.GetString("server.port"))
	if port == "" {
		return Config{}, errors.New("server.port is required")
	}

	return Config{
		Port:            port,
		DBPath:          strings.TrimSpace(v.GetString("db.path")),
		SecretKey:       v.GetString("auth.secret_key"),
		CookieSecure:    v.GetBool("auth.cookie_secure"),
		LogLevel:        strings.ToLower(strings.TrimSpace(v.GetString("log.level"))),
		Location:        location,
		WeekStart:       weekStart,
		ClassifierScope: scope,
		HorizonCycles:   horizon,
	}, nil
}
