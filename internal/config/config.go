package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

type BotConfig struct {
	BotToken       string
	DatabaseURL    string
	APIAddr        string
	CommandPrefix  string
	AdminIDs       []string
	HouseAccountID string
	WorkCooldown   time.Duration
	SpinDelay      time.Duration
	SweepEvery     time.Duration
	StartupMigrate bool
}

type CLIConfig struct {
	APIBaseURL string
}

func LoadBotFromEnv() (BotConfig, error) {
	cfg := loadCommon()
	if cfg.DatabaseURL == "" {
		return cfg, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.BotToken == "" {
		return cfg, fmt.Errorf("ECON_BOT_TOKEN is required")
	}
	return cfg, nil
}

// LoadWorkerFromEnv skips the bot token requirement; the sweeper only needs
// the database.
func LoadWorkerFromEnv() (BotConfig, error) {
	cfg := loadCommon()
	if cfg.DatabaseURL == "" {
		return cfg, fmt.Errorf("DATABASE_URL is required")
	}
	return cfg, nil
}

func LoadCLIFromEnv() CLIConfig {
	return CLIConfig{
		APIBaseURL: strings.TrimRight(envDefault("ECON_API_BASE_URL", "http://localhost:8080"), "/"),
	}
}

func loadCommon() BotConfig {
	addr := strings.TrimSpace(os.Getenv("PORT"))
	if addr != "" {
		if !strings.HasPrefix(addr, ":") {
			addr = ":" + addr
		}
	} else {
		addr = envDefault("ECON_API_ADDR", ":8080")
	}

	return BotConfig{
		BotToken:       strings.TrimSpace(os.Getenv("ECON_BOT_TOKEN")),
		DatabaseURL:    strings.TrimSpace(os.Getenv("DATABASE_URL")),
		APIAddr:        addr,
		CommandPrefix:  envDefault("ECON_COMMAND_PREFIX", "!"),
		AdminIDs:       envList("ECON_ADMIN_IDS"),
		HouseAccountID: envDefault("ECON_HOUSE_ACCOUNT_ID", "house"),
		WorkCooldown:   envDurationDefault("ECON_WORK_COOLDOWN", 30*time.Minute),
		SpinDelay:      envDurationDefault("ECON_SPIN_DELAY", 500*time.Millisecond),
		SweepEvery:     envDurationDefault("ECON_SWEEP_EVERY", time.Minute),
		StartupMigrate: envBoolDefault("ECON_STARTUP_MIGRATE", true),
	}
}

func envDefault(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

func envDurationDefault(key string, fallback time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

func envBoolDefault(key string, fallback bool) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "1", "t", "true", "yes", "on":
		return true
	case "0", "f", "false", "no", "off":
		return false
	}
	return fallback
}

func envList(key string) []string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
