package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Telegram TelegramConfig
	Storage  StorageConfig
	DB       DBConfig
	Log      LogConfig
}

type TelegramConfig struct {
	Token string
}

type StorageConfig struct {
	Backend    string // "file" or "postgres"
	MenuFile   string
	OrdersFile string
}

type DBConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
}

type LogConfig struct {
	File  string
	Debug bool
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	port, _ := strconv.Atoi(getEnv("DB_PORT", "5432"))

	return &Config{
		Telegram: TelegramConfig{
			Token: getEnv("TOKEN", ""),
		},
		Storage: StorageConfig{
			Backend:    getEnv("ORDERS_BACKEND", "file"),
			MenuFile:   getEnv("MENU_FILE", "shawerma.json"),
			OrdersFile: getEnv("ORDERS_FILE", "orders.json"),
		},
		DB: DBConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     port,
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "shawerma"),
		},
		Log: LogConfig{
			File:  getEnv("LOG_FILE", "bot.log"),
			Debug: getEnv("LOG_DEBUG", "") == "1",
		},
	}, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
