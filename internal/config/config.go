package config

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/spf13/viper"

	"github.com/nexuspump/nexuspump-api/internal/curve"
)

type AppConfig struct {
	API      *APIConfig      `mapstructure:"api"`
	Gin      *GinConfig      `mapstructure:"gin"`
	Postgres *PostgresConfig `mapstructure:"postgres"`
	Market   *MarketConfig   `mapstructure:"market"`
}

type APIConfig struct {
	Environment        string   `mapstructure:"environment"`
	Port               string   `mapstructure:"port"`
	BaseURL            string   `mapstructure:"base_url"`
	AllowedCORSDomains []string `mapstructure:"allowed_cors_domains"`
	JWTSigningKey      string   `mapstructure:"jwt_signing_key"`
}

type GinConfig struct {
	Mode string `mapstructure:"mode"`
}

type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"db_name"`
	SSLMode  string `mapstructure:"ssl_mode"`
}

// MarketConfig carries the factory's defaults: the curve coefficients every
// new market starts with and the address protocol fees accrue to. Amounts are
// decimal wei strings.
type MarketConfig struct {
	BasePrice    string `mapstructure:"base_price"`
	Slope        string `mapstructure:"slope"`
	FeeRecipient string `mapstructure:"fee_recipient"`
}

// CurveParams parses and validates the configured curve coefficients.
func (m *MarketConfig) CurveParams() (curve.Params, error) {
	basePrice, ok := new(big.Int).SetString(m.BasePrice, 10)
	if !ok {
		return curve.Params{}, fmt.Errorf("invalid market.base_price %q", m.BasePrice)
	}
	slope, ok := new(big.Int).SetString(m.Slope, 10)
	if !ok {
		return curve.Params{}, fmt.Errorf("invalid market.slope %q", m.Slope)
	}

	params := curve.Params{BasePrice: basePrice, Slope: slope}
	if err := params.Validate(); err != nil {
		return curve.Params{}, err
	}

	return params, nil
}

func Load(configPath string) (*AppConfig, error) {
	viper.SetConfigFile(configPath)

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("viper.ReadInConfig -> %w", err)
	}

	config := &AppConfig{}
	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("viper.Unmarshal -> %w", err)
	}

	if _, err := config.Market.CurveParams(); err != nil {
		return nil, err
	}

	return config, nil
}
