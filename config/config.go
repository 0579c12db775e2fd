package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

const keyEnv = "ENV"
const envLocal = "local"

const (
	defaultPort          = "5170"
	defaultMaxWorkers    = 8
	defaultHistoryLimit  = 200
	defaultHistoryDBFile = ".notescout/history.db"
)

type Config struct {
	config *viper.Viper
}

func Load(env string) (*Config, error) {

	if len(env) == 0 {
		if env = os.Getenv(keyEnv); len(env) == 0 {
			env = envLocal
		}
	}

	configPath, err := getConfigPath(env)

	viperConfig := viper.New()
	if err == nil {
		viperConfig.SetConfigFile(configPath)
		if err := viperConfig.ReadInConfig(); err != nil {
			slog.Warn(fmt.Sprintf("error reading config file, %s", err))
		}
	}
	viperConfig.AutomaticEnv()

	cfg := &Config{
		config: viperConfig,
	}

	return cfg, nil
}

func (c *Config) GetPort() string {
	port := c.config.GetString("PORT")
	if len(port) == 0 {
		port = c.config.GetString("server.port")
	}
	if len(port) == 0 {
		port = defaultPort
	}

	return port
}

func (c *Config) GetLogLevel() string {
	level := c.config.GetString("LOG_LEVEL")
	if len(level) == 0 {
		level = c.config.GetString("server.log_level")
	}

	return level
}

func (c *Config) GetHistoryDBPath() string {
	historyPath := c.config.GetString("HISTORY_DB_PATH")
	if len(historyPath) == 0 {
		historyPath = c.config.GetString("database.history_path")
	}
	if len(historyPath) == 0 {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		historyPath = filepath.Join(home, defaultHistoryDBFile)
	}

	return historyPath
}

func (c *Config) GetHistoryLimit() int {
	limit := c.config.GetInt("HISTORY_LIMIT")
	if limit == 0 {
		limit = c.config.GetInt("search.history_limit")
	}
	if limit == 0 {
		limit = defaultHistoryLimit
	}

	return limit
}

func (c *Config) GetMaxSearchWorkers() int {
	workers := c.config.GetInt("MAX_SEARCH_WORKERS")
	if workers == 0 {
		workers = c.config.GetInt("search.max_workers")
	}
	if workers == 0 {
		workers = defaultMaxWorkers
	}

	return workers
}

func getProjectRoot() (string, error) {
	currentDir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current working directory: %w", err)
	}

	for {
		configDir := filepath.Join(currentDir, "config")
		if info, err := os.Stat(configDir); err == nil && info.IsDir() {
			return currentDir, nil
		}

		parent := filepath.Dir(currentDir)

		if parent == currentDir {
			break
		}

		currentDir = parent
	}

	return "", fmt.Errorf("could not find project root (directory containing 'config' folder)")
}

func getConfigPath(env string) (string, error) {
	configFile := fmt.Sprintf("config.%s.yaml", env)

	projectRoot, err := getProjectRoot()
	if err != nil {
		slog.Warn("failed to find project root with config directory, will use environment variables instead", "err", err.Error())
		return "", fmt.Errorf("failed to find project root: %w", err)
	}
	configPath := filepath.Join(projectRoot, "config", configFile)
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		slog.Warn("failed to find config file within config directory, will use environment variables instead", "err", err.Error())
		return "", fmt.Errorf("config file does not exist: %s", configPath)
	}

	return configPath, nil
}
