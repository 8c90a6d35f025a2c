package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port        string
	Environment string
	CORSOrigins string

	// Upload and conversion limits
	MaxUploadSize     int64         // bytes
	ConversionTimeout time.Duration // wall-clock limit per external invocation

	// Admission capacities
	MaxConcurrentConversions int // worker-permit pool size
	MaxQueuedConversions     int // extra queue capacity beyond the worker pool

	// External-tool memory ceilings (MB)
	PandocMemoryLimitMB int // passed to pandoc via +RTS -M
	ToolMemoryLimitMB   int // ulimit -v ceiling for tools without a native flag
	WorkerMemoryLimitMB int // GOMEMLIMIT for the library worker subprocess

	// StagingDir is the root under which per-request staging dirs are created.
	// Empty means the OS temp dir.
	StagingDir string
}

func Load() *Config {
	return &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "dev"),
		CORSOrigins: getEnv("CORS_ORIGINS", "http://localhost:3000"),

		MaxUploadSize:     getEnvInt64("MAX_UPLOAD_SIZE", 50*1024*1024),
		ConversionTimeout: time.Duration(getEnvInt("CONVERSION_TIMEOUT", 120)) * time.Second,

		MaxConcurrentConversions: getEnvInt("MAX_CONCURRENT_CONVERSIONS", 2),
		MaxQueuedConversions:     getEnvInt("MAX_QUEUED_CONVERSIONS", 5),

		PandocMemoryLimitMB: getEnvInt("PANDOC_MEMORY_LIMIT_MB", 64),
		ToolMemoryLimitMB:   getEnvInt("TOOL_MEMORY_LIMIT_MB", 512),
		WorkerMemoryLimitMB: getEnvInt("WORKER_MEMORY_LIMIT_MB", 256),

		StagingDir: getEnv("STAGING_DIR", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil && n > 0 {
			return n
		}
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.ParseInt(value, 10, 64); err == nil && n > 0 {
			return n
		}
	}
	return defaultValue
}
