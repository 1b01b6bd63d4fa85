package config

import (
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const defaultConnectionString = "Host=localhost;Port=5432;Database=minibank_db;Username=postgres;Password=postgres;Timeout=30;CommandTimeout=30"

type Config struct {
	ServerPort    string `mapstructure:"SERVER_PORT"`
	DatabaseDSN   string `mapstructure:"DATABASE_DSN"`
	MigrationsDir string `mapstructure:"MIGRATIONS_DIR"`
	ChannelID     string `mapstructure:"CHANNEL_ID"`
	// ChannelKeyHash is the bcrypt hash of the shared channel key; the
	// plaintext key is never held in configuration.
	ChannelKeyHash string `mapstructure:"CHANNEL_KEY_HASH"`
	// BankCode identifies this institution on interbank rails; the default
	// is a sandbox code.
	BankCode string `mapstructure:"BANK_CODE"`
}

func Load() (Config, error) {
	// Optional .env for local development; real deployments use the
	// environment directly.
	_ = godotenv.Load()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("DATABASE_DSN", defaultConnectionString)
	viper.SetDefault("MIGRATIONS_DIR", "migrations")
	viper.SetDefault("CHANNEL_ID", "TellerApp")
	viper.SetDefault("CHANNEL_KEY_HASH", "")
	viper.SetDefault("BANK_CODE", "999")

	_ = viper.BindEnv("SERVER_PORT")
	_ = viper.BindEnv("DATABASE_DSN")
	_ = viper.BindEnv("MIGRATIONS_DIR")
	_ = viper.BindEnv("CHANNEL_ID")
	_ = viper.BindEnv("CHANNEL_KEY_HASH")
	_ = viper.BindEnv("BANK_CODE")

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}

	cfg.DatabaseDSN = normalizeConnectionString(strings.TrimSpace(cfg.DatabaseDSN))
	return cfg, nil
}

// normalizeConnectionString accepts both libpq keyword DSNs and the
// semicolon-separated form used by earlier deployments of this system.
func normalizeConnectionString(raw string) string {
	if !strings.Contains(raw, ";") {
		return raw
	}

	parts := strings.Split(raw, ";")
	out := make([]string, 0, len(parts))
	hasSSLMode := false

	for _, part := range parts {
		p := strings.TrimSpace(part)
		if p == "" {
			continue
		}

		kv := strings.SplitN(p, "=", 2)
		if len(kv) != 2 {
			continue
		}

		key := strings.ToLower(strings.TrimSpace(kv[0]))
		val := strings.TrimSpace(kv[1])

		switch key {
		case "host":
			out = append(out, "host="+val)
		case "port":
			out = append(out, "port="+val)
		case "database":
			out = append(out, "dbname="+val)
		case "username":
			out = append(out, "user="+val)
		case "password":
			out = append(out, "password="+val)
		case "timeout", "connect timeout":
			out = append(out, "connect_timeout="+val)
		case "commandtimeout", "command timeout":
			out = append(out, "statement_timeout="+val+"s")
		case "sslmode":
			hasSSLMode = true
			out = append(out, "sslmode="+val)
		default:
			out = append(out, key+"="+val)
		}
	}

	if len(out) == 0 {
		return raw
	}

	if !hasSSLMode {
		out = append(out, "sslmode=disable")
	}

	return strings.Join(out, " ")
}
