package config

import (
	"os"
)

type Config struct {
	ServerPort    string
	DatabaseURL   string
	KMAEndpoint   string
	KMAServiceKey string
	KMAStationID  string
}

func Load() *Config {
	return &Config{
		ServerPort:    getEnv("SERVER_PORT", "8080"),
		DatabaseURL:   getEnv("DATABASE_URL", "./sales.db"),
		KMAEndpoint:   getEnv("KMA_ENDPOINT", "http://apis.data.go.kr/1360000/AsosDalyInfoService/getWthrDataList"),
		KMAServiceKey: getEnv("KMA_SERVICE_KEY", ""),
		// 108 is the Seoul ASOS station
		KMAStationID: getEnv("KMA_STATION_ID", "108"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
