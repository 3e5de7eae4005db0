// Package config reads runtime settings from the environment, optionally
// seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	DBPath      string
	LogFile     string
	LogLevel    logrus.Level
	SeedDemo    bool
	ExportDir   string
	MetricsFile string
}

// Load reads the given env files (".env" when none are named) and then
// the process environment. Variables already set are not overridden by
// the files, and missing files are skipped.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}

	level, err := logrus.ParseLevel(getEnv("ABSENTEE_LOG_LEVEL", "info"))
	if err != nil {
		return nil, fmt.Errorf("ABSENTEE_LOG_LEVEL: %w", err)
	}

	return &Config{
		DBPath:      getEnv("ABSENTEE_DB_PATH", ""),
		LogFile:     getEnv("ABSENTEE_LOG_FILE", ""),
		LogLevel:    level,
		SeedDemo:    getEnvAsBool("ABSENTEE_SEED_DEMO", true),
		ExportDir:   getEnv("ABSENTEE_EXPORT_DIR", "."),
		MetricsFile: getEnv("ABSENTEE_METRICS_FILE", ""),
	}, nil
}

func getEnv(key string, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}

	return defaultVal
}

func getEnvAsBool(name string, defaultVal bool) bool {
	valStr := getEnv(name, "")
	if val, err := strconv.ParseBool(valStr); err == nil {
		return val
	}

	return defaultVal
}
