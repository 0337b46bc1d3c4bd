package api

import (
	"log/slog"
	"time"
)

// APIResponse represents a standard API response
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// StatsResponse reports the number of records held per kind
type StatsResponse struct {
	Records       map[string]int `json:"records"`
	UptimeSeconds float64        `json:"uptime_seconds"`
}

// ServerConfig holds configuration for the API server
type ServerConfig struct {
	Bind            string
	Port            int
	MaxBodyBytes    int64         // request body limit, 1 MiB when zero
	ShutdownTimeout time.Duration // graceful shutdown limit, 5s when zero
	Logger          *slog.Logger
}

const (
	defaultMaxBodyBytes    = 1 << 20
	defaultShutdownTimeout = 5 * time.Second
)
