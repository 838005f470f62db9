package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	ListenAddr   string
	DBPath       string
	UploadPath   string
	AuthHeader   string
	TagBackend   string
	OllamaHost   string
	OllamaModel  string
	ClaudeAPIKey string
	ClaudeModel  string
	LogLevel     string
	LogFile      string
}

// Load reads configuration from the environment, after loading an optional
// .env file from the working directory.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		ListenAddr:   getEnv("LISTEN_ADDR", ":8080"),
		DBPath:       getEnv("DB_PATH", "/var/data/props.db"),
		UploadPath:   getEnv("UPLOAD_PATH", "/var/data/uploads"),
		AuthHeader:   getEnv("AUTH_HEADER", ""),
		TagBackend:   getEnv("TAG_BACKEND", ""),
		OllamaHost:   getEnv("OLLAMA_HOST", "http://localhost:11434"),
		OllamaModel:  getEnv("OLLAMA_MODEL", "moondream"),
		ClaudeAPIKey: getEnv("CLAUDE_API_KEY", ""),
		ClaudeModel:  getEnv("CLAUDE_MODEL", "claude-3-5-haiku-latest"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		LogFile:      getEnv("LOG_FILE", ""),
	}
}

func getEnv(key, defaultVal string) string {
	if val, exists := os.LookupEnv(key); exists {
		return val
	}
	return defaultVal
}
