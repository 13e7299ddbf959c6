package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"golang.org/x/crypto/bcrypt"
)

const (
	envPrefix      = "NEXUS_"
	envConfigPath  = "NEXUS_CONFIG"
	envDotEnvPath  = "NEXUS_ENV_FILE"
	envAdminTokens = "NEXUS_ADMIN_TOKENS"
	defaultDotEnv  = ".env"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. .env file, exported into the process environment
//  3. file (YAML) if NEXUS_CONFIG is set
//  4. env (prefix NEXUS_, "__" separates nested keys)
func Load(_ context.Context) (*Config, error) {
	if err := loadDotEnv(); err != nil {
		return nil, err
	}

	base := New()
	k := koanf.New(".")

	if path := os.Getenv(envConfigPath); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrLoadConfig, path, err)
		}
	}

	// NEXUS_DATABASE__DSN -> database.dsn, NEXUS_ADMIN_TOKENS -> admin_tokens
	envProvider := env.Provider(envPrefix, ".", func(s string) string {
		s = strings.ToLower(strings.TrimPrefix(s, envPrefix))
		return strings.ReplaceAll(s, "__", ".")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: env: %v", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks struct tags and the cross-field rules tags cannot express.
func Validate(cfg *Config) error {
	if cfg.Addr == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	if err := validator.New().Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fmt.Errorf("%w: %s failed on %q", ErrInvalidConfig, verrs[0].Namespace(), verrs[0].Tag())
		}
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if _, err := time.LoadLocation(cfg.Timezone); err != nil {
		return fmt.Errorf("%w: timezone %q: %v", ErrInvalidConfig, cfg.Timezone, err)
	}
	if cfg.Database.MaxIdleConns > cfg.Database.MaxOpenConns && cfg.Database.MaxOpenConns > 0 {
		return fmt.Errorf("%w: database.max_idle_conns exceeds max_open_conns", ErrInvalidConfig)
	}
	for i, tok := range cfg.AdminTokens {
		if !strings.HasPrefix(tok, "$2") {
			continue
		}
		if _, err := bcrypt.Cost([]byte(tok)); err != nil {
			return fmt.Errorf("%w: admin_tokens[%d] is not a valid bcrypt hash: %v", ErrInvalidConfig, i, err)
		}
	}
	return nil
}

func loadDotEnv() error {
	path := os.Getenv(envDotEnvPath)
	if path == "" {
		path = defaultDotEnv
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("%w: %s: %v", ErrLoadConfig, path, err)
	}
	if err := checkQuotedHashes(path, string(raw)); err != nil {
		return err
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrLoadConfig, path, err)
	}
	return nil
}

// checkQuotedHashes rejects bcrypt hashes that godotenv would expand as
// variables. Only single-quoted values are read literally.
func checkQuotedHashes(path, raw string) error {
	for i, line := range strings.Split(raw, "\n") {
		line = strings.TrimPrefix(strings.TrimSpace(line), "export ")
		key, val, ok := strings.Cut(line, "=")
		if !ok || strings.TrimSpace(key) != envAdminTokens {
			continue
		}
		val = strings.TrimSpace(val)
		if !strings.HasPrefix(val, "'") && strings.Contains(val, "$2") {
			return fmt.Errorf("%w: %s:%d: bcrypt hashes in %s must be single-quoted", ErrInvalidConfig, path, i+1, envAdminTokens)
		}
	}
	return nil
}
