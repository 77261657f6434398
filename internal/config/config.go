package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Log      LogConfig      `yaml:"log"`
	Auth     AuthConfig     `yaml:"auth"`
	EGIS     EGISConfig     `yaml:"egis"`
}

type ServerConfig struct {
	Port int `yaml:"port"`
}

type DatabaseConfig struct {
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	User            string        `yaml:"user"`
	Password        string        `yaml:"password"`
	Name            string        `yaml:"name"`
	MaxOpenConns    int           `yaml:"maxOpenConns"`
	MaxIdleConns    int           `yaml:"maxIdleConns"`
	ConnMaxLifetime time.Duration `yaml:"connMaxLifetime"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// AuthConfig holds the bearer-token settings for the caller-facing API.
// An empty secret disables authentication (local development).
type AuthConfig struct {
	JWTSecret string `yaml:"jwtSecret"`
}

// EGISConfig is the connection and reconciliation configuration for the
// EGIS/EBC catalog API. SellingPriceList and ItemGroup are required before
// any import runs; RetailPriceList is optional and only used when the
// named price list exists.
type EGISConfig struct {
	URL              string        `yaml:"url"`
	Login            string        `yaml:"login"`
	Password         string        `yaml:"password"`
	PasswordFile     string        `yaml:"passwordFile"`
	ERP              string        `yaml:"erp"`
	SellingPriceList string        `yaml:"sellingPriceList"`
	RetailPriceList  string        `yaml:"retailPriceList"`
	ItemGroup        string        `yaml:"itemGroup"`
	RequestTimeout   time.Duration `yaml:"requestTimeout"`
}

// ResolvePassword returns the catalog API password, preferring the secrets
// file over the inline value when both are set.
func (c EGISConfig) ResolvePassword() (string, error) {
	if c.PasswordFile != "" {
		data, err := os.ReadFile(c.PasswordFile)
		if err != nil {
			return "", fmt.Errorf("reading EGIS password file: %w", err)
		}
		return strings.TrimSpace(string(data)), nil
	}
	return c.Password, nil
}

func Load() (*Config, error) {
	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", 8080)
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", 3306)
	viper.SetDefault("DB_USER", "palantir")
	viper.SetDefault("DB_PASSWORD", "secret")
	viper.SetDefault("DB_NAME", "palantir")
	viper.SetDefault("DB_MAX_OPEN_CONNS", 25)
	viper.SetDefault("DB_MAX_IDLE_CONNS", 5)
	viper.SetDefault("DB_CONN_MAX_LIFETIME", "5m")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FORMAT", "json")
	viper.SetDefault("AUTH_JWT_SECRET", "")
	viper.SetDefault("EGIS_URL", "")
	viper.SetDefault("EGIS_LOGIN", "")
	viper.SetDefault("EGIS_PASSWORD", "")
	viper.SetDefault("EGIS_PASSWORD_FILE", "")
	viper.SetDefault("EGIS_ERP", "ERPNext")
	viper.SetDefault("EGIS_SELLING_PRICE_LIST", "Standard Selling")
	viper.SetDefault("EGIS_RETAIL_PRICE_LIST", "")
	viper.SetDefault("EGIS_ITEM_GROUP", "EGIS")
	viper.SetDefault("EGIS_REQUEST_TIMEOUT", "30s")

	connMaxLifetime, err := time.ParseDuration(viper.GetString("DB_CONN_MAX_LIFETIME"))
	if err != nil {
		return nil, err
	}

	requestTimeout, err := time.ParseDuration(viper.GetString("EGIS_REQUEST_TIMEOUT"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: viper.GetInt("SERVER_PORT"),
		},
		Database: DatabaseConfig{
			Host:            viper.GetString("DB_HOST"),
			Port:            viper.GetInt("DB_PORT"),
			User:            viper.GetString("DB_USER"),
			Password:        viper.GetString("DB_PASSWORD"),
			Name:            viper.GetString("DB_NAME"),
			MaxOpenConns:    viper.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    viper.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: connMaxLifetime,
		},
		Log: LogConfig{
			Level:  viper.GetString("LOG_LEVEL"),
			Format: viper.GetString("LOG_FORMAT"),
		},
		Auth: AuthConfig{
			JWTSecret: viper.GetString("AUTH_JWT_SECRET"),
		},
		EGIS: EGISConfig{
			URL:              viper.GetString("EGIS_URL"),
			Login:            viper.GetString("EGIS_LOGIN"),
			Password:         viper.GetString("EGIS_PASSWORD"),
			PasswordFile:     viper.GetString("EGIS_PASSWORD_FILE"),
			ERP:              viper.GetString("EGIS_ERP"),
			SellingPriceList: viper.GetString("EGIS_SELLING_PRICE_LIST"),
			RetailPriceList:  viper.GetString("EGIS_RETAIL_PRICE_LIST"),
			ItemGroup:        viper.GetString("EGIS_ITEM_GROUP"),
			RequestTimeout:   requestTimeout,
		},
	}

	return cfg, nil
}
