package config

import (
	"encoding/json"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
)

// ServerConfig holds the process configuration. It is read once at startup
// and never mutated afterwards; the running server keeps its own copy.
type ServerConfig struct {
	Host        string `json:"host"`
	Port        int    `json:"port"`
	ServiceName string `json:"service_name"`
	ServiceType string `json:"service_type"`
	LogLevel    string `json:"log_level"`
}

func defaultConfig() ServerConfig {
	return ServerConfig{
		Host:        "0.0.0.0",
		Port:        8765,
		ServiceName: "remote-control",
		ServiceType: "_remote-control._tcp.local.",
		LogLevel:    "info",
	}
}

// Load builds a ServerConfig with priority: file > env > default.
// The file is optional; a missing file is not an error.
func Load(path string) (ServerConfig, error) {
	cfg := defaultConfig()
	if path != "" {
		if b, err := os.ReadFile(path); err == nil {
			if err := json.Unmarshal(b, &cfg); err != nil {
				return cfg, fmt.Errorf("parse %s: %w", path, err)
			}
		}
	}

	// env overrides
	if v := os.Getenv("REMOTECTL_HOST"); v != "" {
		cfg.Host = v
	}
	if v := os.Getenv("REMOTECTL_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Port = n
		}
	}
	if v := os.Getenv("REMOTECTL_SERVICE_NAME"); v != "" {
		cfg.ServiceName = v
	}
	if v := os.Getenv("REMOTECTL_SERVICE_TYPE"); v != "" {
		cfg.ServiceType = v
	}
	if v := os.Getenv("REMOTECTL_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}

	return cfg, cfg.validate()
}

func (c ServerConfig) validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log_level: %q", c.LogLevel)
	}
	if c.ServiceName == "" {
		return fmt.Errorf("service_name must not be empty")
	}
	if !strings.HasSuffix(c.ServiceType, ".") {
		return fmt.Errorf("service_type must be a fully qualified mDNS type: %q", c.ServiceType)
	}
	return nil
}

// Addr returns the listen address in host:port form.
func (c ServerConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}
