package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server       ServerConfig       `mapstructure:"server"`
	Database     DatabaseConfig     `mapstructure:"database"`
	Redis        RedisConfig        `mapstructure:"redis"`
	JWT          JWTConfig          `mapstructure:"jwt"`
	Log          LogConfig          `mapstructure:"log"`
	Ledger       LedgerConfig       `mapstructure:"ledger"`
	Checkout     CheckoutConfig     `mapstructure:"checkout"`
	Notification NotificationConfig `mapstructure:"notification"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug, release, test
}

type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnectTimeout  time.Duration `mapstructure:"connect_timeout"` // startup retry budget
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

type RedisConfig struct {
	Host           string        `mapstructure:"host"`
	Port           int           `mapstructure:"port"`
	Password       string        `mapstructure:"password"`
	DB             int           `mapstructure:"db"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"` // startup retry budget
}

// Addr returns the Redis address string.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// JWTConfig describes how bearer tokens issued by the host application are validated.
type JWTConfig struct {
	Secret string `mapstructure:"secret"`
	Issuer string `mapstructure:"issuer"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Pretty bool   `mapstructure:"pretty"` // human-readable output (dev only)
}

// LedgerConfig carries the wall-clock policy windows and limits of the ledger.
// It is handed to every service constructor.
type LedgerConfig struct {
	QRExpiration          time.Duration `mapstructure:"qr_expiration"`
	CancelWindow          time.Duration `mapstructure:"cancel_window"`
	RefundWindow          time.Duration `mapstructure:"refund_window"`
	TransferPendingWindow time.Duration `mapstructure:"transfer_pending_window"`
	SettleBackoff         time.Duration `mapstructure:"settle_backoff"`
	MaxWalletBalance      int64         `mapstructure:"max_wallet_balance"`
	MinTopupAmount        int64         `mapstructure:"min_topup_amount"`
	LatestTOSVersion      int           `mapstructure:"latest_tos_version"`
	DataVerifierToken     string        `mapstructure:"data_verifier_token"` // empty = integrity feed disabled
}

// CheckoutConfig configures the external top-up checkout provider.
type CheckoutConfig struct {
	BaseURL             string        `mapstructure:"base_url"`
	OrganizationSlug    string        `mapstructure:"organization_slug"`
	ClientID            string        `mapstructure:"client_id"`
	ClientSecret        string        `mapstructure:"client_secret"`
	WebhookSecret       string        `mapstructure:"webhook_secret"`
	PaymentName         string        `mapstructure:"payment_name"`
	ClientURL           string        `mapstructure:"client_url"`
	TrustedRedirectURLs []string      `mapstructure:"trusted_redirect_urls"`
	Timeout             time.Duration `mapstructure:"timeout"`
}

type NotificationConfig struct {
	URL     string        `mapstructure:"url"` // empty = notifications disabled
	Timeout time.Duration `mapstructure:"timeout"`
}

// DefaultLedgerConfig returns the ledger policy used when nothing is configured.
func DefaultLedgerConfig() LedgerConfig {
	return LedgerConfig{
		QRExpiration:          5 * time.Minute,
		CancelWindow:          30 * time.Second,
		RefundWindow:          30 * 24 * time.Hour,
		TransferPendingWindow: 15 * time.Minute,
		SettleBackoff:         30 * time.Second,
		MaxWalletBalance:      100000,
		MinTopupAmount:        100,
		LatestTOSVersion:      2,
	}
}

// Load reads configuration from file and environment variables.
// Environment variables override file values. Prefix: MYPAY_.
// Nested keys use underscore: MYPAY_DATABASE_HOST, MYPAY_LEDGER_MAX_WALLET_BALANCE, etc.
func Load(path string) (*Config, error) {
	v := viper.New()
	ledger := DefaultLedgerConfig()

	// Defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.dbname", "mypayment")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 20)
	v.SetDefault("database.min_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "30m")
	v.SetDefault("database.connect_timeout", "30s")
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.connect_timeout", "30s")
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.issuer", "hyperion")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)
	v.SetDefault("ledger.qr_expiration", ledger.QRExpiration.String())
	v.SetDefault("ledger.cancel_window", ledger.CancelWindow.String())
	v.SetDefault("ledger.refund_window", ledger.RefundWindow.String())
	v.SetDefault("ledger.transfer_pending_window", ledger.TransferPendingWindow.String())
	v.SetDefault("ledger.settle_backoff", ledger.SettleBackoff.String())
	v.SetDefault("ledger.max_wallet_balance", ledger.MaxWalletBalance)
	v.SetDefault("ledger.min_topup_amount", ledger.MinTopupAmount)
	v.SetDefault("ledger.latest_tos_version", ledger.LatestTOSVersion)
	v.SetDefault("ledger.data_verifier_token", "")
	v.SetDefault("checkout.base_url", "https://api.helloasso.com")
	v.SetDefault("checkout.organization_slug", "")
	v.SetDefault("checkout.payment_name", "MyECL Pay")
	v.SetDefault("checkout.timeout", "10s")
	v.SetDefault("checkout.trusted_redirect_urls", []string{})
	v.SetDefault("notification.url", "")
	v.SetDefault("notification.timeout", "5s")

	// File config
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variables: MYPAY_DATABASE_HOST -> database.host
	v.SetEnvPrefix("MYPAY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (not required, env vars can suffice)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}
