package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	OpenAI   OpenAIConfig
	Catalog  CatalogConfig
	Media    MediaConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	MediaLogFilePath   string
	CorsAllowedOrigins string
	MediaTopic         string
}

type DatabaseConfig struct {
	Connection string
}

type OpenAIConfig struct {
	APIKey     string
	ChatModel  string
	EmbedModel string
	TTSModel   string
	TTSVoice   string
	STTModel   string
	ImageModel string
}

type CatalogConfig struct {
	DataPath string
	DataDir  string // profanity extension lists live next to the dataset
	Strict   bool
	TopK     int
}

type MediaConfig struct {
	AudioDir           string
	ImageDir           string
	TranscriptCachePath string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			MediaLogFilePath:   getEnv("MEDIA_LOG_FILE_PATH", "logs/media.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			MediaTopic:         getEnv("SYNTHESIZE_MEDIA_TOPIC_NAME", "SYNTHESIZE_MEDIA"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		OpenAI: OpenAIConfig{
			APIKey:     getEnv("OPENAI_API_KEY", ""),
			ChatModel:  getEnv("CHAT_MODEL", "gpt-4o-mini"),
			EmbedModel: getEnv("EMBED_MODEL", "text-embedding-3-small"),
			TTSModel:   getEnv("TTS_MODEL", "gpt-4o-mini-tts"),
			TTSVoice:   getEnv("TTS_VOICE", "alloy"),
			STTModel:   getEnv("STT_MODEL", "whisper-1"),
			ImageModel: getEnv("IMAGE_MODEL", "gpt-image-1"),
		},
		Catalog: CatalogConfig{
			DataPath: getEnv("DATA_PATH", "data/book_summaries.json"),
			DataDir:  getEnv("DATA_DIR", "data"),
			Strict:   getEnvAsBool("STRICT_DATASET", true),
			TopK:     getEnvAsInt("RETRIEVAL_TOP_K", 3),
		},
		Media: MediaConfig{
			AudioDir:           getEnv("MEDIA_AUDIO_DIR", "storage/audio"),
			ImageDir:           getEnv("MEDIA_IMAGE_DIR", "storage/img"),
			TranscriptCachePath: getEnv("TRANSCRIPT_CACHE_PATH", "storage/transcripts.json"),
		},
	}
}

// Validate catches fatal misconfiguration before anything is wired up.
func (c *Config) Validate() error {
	if c.OpenAI.APIKey == "" {
		return fmt.Errorf("missing OPENAI_API_KEY in your environment or .env")
	}
	if c.Database.Connection == "" {
		return fmt.Errorf("missing DB_CONNECTION_STRING in your environment or .env")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}
