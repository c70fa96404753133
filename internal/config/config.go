package config

import (
	"os"
	"strconv"

	"golehmer/domain/lehmer"
	"golehmer/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Generator GeneratorConfig
	Server    ServerConfig
	Database  DatabaseConfig
	Export    ExportConfig
}

// GeneratorConfig holds the generator parameter triple plus stream layout
type GeneratorConfig struct {
	Modulus     int64
	Multiplier  int64
	Seed        int64
	StreamCount int
	Policy      lehmer.SeedingPolicy
	JumpExp     uint
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port string
}

// DatabaseConfig holds the optional run-ledger connection settings
type DatabaseConfig struct {
	URL     string // empty means the in-memory ledger is used
	Enabled bool
}

// ExportConfig holds workbook export settings
type ExportConfig struct {
	File string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	gen, err := loadGeneratorConfig()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load generator configuration")
	}

	cfg := &Config{
		Generator: *gen,
		Server: ServerConfig{
			Port: getEnvOrDefault("PORT", "8080"),
		},
		Database: loadDatabaseConfig(),
		Export: ExportConfig{
			File: getEnvOrDefault("EXPORT_FILE", "lehmer_samples.xlsx"),
		},
	}

	return cfg, nil
}

func loadGeneratorConfig() (*GeneratorConfig, error) {
	modulus, err := getEnvInt64OrDefault("LEHMER_MODULUS", lehmer.DefaultModulus)
	if err != nil {
		return nil, err
	}
	multiplier, err := getEnvInt64OrDefault("LEHMER_MULTIPLIER", lehmer.DefaultMultiplier)
	if err != nil {
		return nil, err
	}
	seed, err := getEnvInt64OrDefault("LEHMER_SEED", lehmer.DefaultSeed)
	if err != nil {
		return nil, err
	}
	streams, err := getEnvIntOrDefault("LEHMER_STREAMS", 1)
	if err != nil {
		return nil, err
	}
	jumpExp, err := getEnvIntOrDefault("LEHMER_JUMP_EXP", int(lehmer.DefaultJumpExp))
	if err != nil {
		return nil, err
	}
	if jumpExp < 0 {
		return nil, errors.ConfigInvalid("LEHMER_JUMP_EXP must not be negative")
	}

	policy, err := lehmer.ParseSeedingPolicy(os.Getenv("LEHMER_POLICY"))
	if err != nil {
		return nil, errors.WithCode(errors.CodeConfigInvalid, err)
	}

	return &GeneratorConfig{
		Modulus:     modulus,
		Multiplier:  multiplier,
		Seed:        seed,
		StreamCount: streams,
		Policy:      policy,
		JumpExp:     uint(jumpExp),
	}, nil
}

func loadDatabaseConfig() DatabaseConfig {
	url := os.Getenv("DATABASE_URL")
	return DatabaseConfig{
		URL:     url,
		Enabled: url != "",
	}
}

// Lehmer converts the loaded settings into the core's Config form.
func (g GeneratorConfig) Lehmer() lehmer.Config {
	return lehmer.Config{
		Modulus:     g.Modulus,
		Multiplier:  g.Multiplier,
		Seed:        g.Seed,
		StreamCount: g.StreamCount,
		Policy:      g.Policy,
		JumpExp:     g.JumpExp,
	}
}

func getEnvOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvIntOrDefault(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, errors.ConfigInvalid(key + " must be an integer")
	}
	return n, nil
}

func getEnvInt64OrDefault(key string, def int64) (int64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, errors.ConfigInvalid(key + " must be a 64-bit integer")
	}
	return n, nil
}
