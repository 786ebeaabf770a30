package config

import (
	"encoding/hex"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	consts "KiskaLE/GestureDrop-Firewall/internal/const"
	"KiskaLE/GestureDrop-Firewall/internal/firewall"
	"KiskaLE/GestureDrop-Firewall/internal/registry"
	"KiskaLE/GestureDrop-Firewall/internal/utils"
)

const (
	EnvDelegate     = "GESTUREDROP_DELEGATE"
	EnvScript       = "GESTUREDROP_SCRIPT"
	EnvScriptSHA256 = "GESTUREDROP_SCRIPT_SHA256"
	EnvLogLevel     = "GESTUREDROP_LOG_LEVEL"
	EnvLogFile      = "GESTUREDROP_LOG_FILE"
	EnvTimeout      = "GESTUREDROP_TIMEOUT"

	defaultLogLevel = "warn"
)

type Config struct {
	Delegate     firewall.DelegateMode
	ScriptPath   string
	ScriptSHA256 string
	LogLevel     string
	LogFile      string
	Timeout      time.Duration
}

// Load reads the optional .env file and the GESTUREDROP_* environment.
// Values the environment leaves unset fall back to the machine policy
// registry key on Windows, then to defaults.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := utils.LoadEnv(envFile); err != nil {
			return nil, err
		}
	}

	mode, err := firewall.ParseDelegateMode(lookup(EnvDelegate, "delegate"))
	if err != nil {
		return nil, err
	}

	timeout, err := parseTimeout(lookup(EnvTimeout, "timeout"))
	if err != nil {
		return nil, err
	}

	sum := strings.TrimSpace(lookup(EnvScriptSHA256, "script_sha256"))
	if sum != "" {
		if raw, err := hex.DecodeString(sum); err != nil || len(raw) != 32 {
			return nil, fmt.Errorf("%s must be a hex encoded SHA256 hash", EnvScriptSHA256)
		}
	}

	cfg := &Config{
		Delegate:     mode,
		ScriptPath:   lookup(EnvScript, "script"),
		ScriptSHA256: sum,
		LogLevel:     lookup(EnvLogLevel, ""),
		LogFile:      lookup(EnvLogFile, ""),
		Timeout:      timeout,
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = defaultLogLevel
	}
	return cfg, nil
}

func lookup(env string, policy string) string {
	if v, ok := os.LookupEnv(env); ok && v != "" {
		return v
	}
	if policy == "" {
		return ""
	}
	v, err := registry.PolicyValue(policy)
	if err != nil {
		return ""
	}
	return v
}

// parseTimeout accepts a Go duration ("90s") or plain seconds ("90").
func parseTimeout(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return consts.DefaultTimeout * time.Second, nil
	}

	d, err := time.ParseDuration(s)
	if err != nil {
		secs, convErr := strconv.Atoi(s)
		if convErr != nil {
			return 0, fmt.Errorf("invalid %s %q: %w", EnvTimeout, s, err)
		}
		d = time.Duration(secs) * time.Second
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid %s %q: must be positive", EnvTimeout, s)
	}
	return d, nil
}
