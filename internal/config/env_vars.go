package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const (
	appNameVar   = "APP_NAME"
	folderEnvVar = "FOLDER"
	logLevelVar  = "LOG_LEVEL"
	headlessVar  = "HEADLESS"
)

type EnvVars struct{}

var _ EnvConfig = EnvVars{}

func (EnvVars) GetAppName() string {
	return GetEnv(appNameVar, "Mail Badge")
}

// GetDataFolder returns the folder holding the session database and log file.
// Defaults to <user config dir>/go-mail-badge.
func (EnvVars) GetDataFolder() string {
	return GetEnv(folderEnvVar, filepath.Join(userConfigDir(), "go-mail-badge"))
}

func (e EnvVars) GetDatabasePath() string {
	return filepath.Join(e.GetDataFolder(), "session.db")
}

func (e EnvVars) GetLogPath() string {
	return filepath.Join(e.GetDataFolder(), "debug.log")
}

func (EnvVars) GetLogLevel() string {
	return strings.ToLower(GetEnv(logLevelVar, "info"))
}

// GetHeadless reports whether the badge is written to the log instead of a terminal UI.
func (EnvVars) GetHeadless() bool {
	headless, err := strconv.ParseBool(GetEnv(headlessVar, "false"))
	if err != nil {
		return false
	}
	return headless
}

func (EnvVars) GetEnv() string {
	env := os.Getenv("ENV")
	if env == "" {
		return "DEV"
	}
	return env
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}

func userConfigDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return dir
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config")
}
