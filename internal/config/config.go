package config

import (
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

// Load reads configuration from environment variables and .env file.
// Missing required variables abort the process before anything is served.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Info("No .env file found, reading from environment variables")
	}

	getEnv := func(key string) string {
		if value, ok := os.LookupEnv(key); ok {
			return value
		}
		log.Fatalf("Error: Required environment variable %s is not set.", key)
		return "" // This line is never reached
	}
	getEnvOr := func(key, fallback string) string {
		if value, ok := os.LookupEnv(key); ok && value != "" {
			return value
		}
		return fallback
	}

	syncInterval := 24 * time.Hour
	if raw := getEnvOr("SYNC_INTERVAL", ""); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			log.Fatalf("Error: SYNC_INTERVAL %q is not a valid duration: %s", raw, err)
		}
		syncInterval = parsed
	}

	cfg := Config{
		DBName:        getEnv("DB_NAME"),
		MigrationsDir: getEnvOr("MIGRATIONS_DIR", "./migrations"),
		Port:          getEnv("PORT"),
		Turso: TursoConfig{
			PrimaryURL: getEnvOr("TURSO_PRIMARY_URL", ""),
			AuthToken:  getEnvOr("TURSO_AUTH_TOKEN", ""),
		},
		Sheets: SheetsConfig{
			Backend:         getEnvOr("SHEET_BACKEND", "google"),
			SpreadsheetID:   getEnv("SPREADSHEET_ID"),
			CredentialsFile: getEnvOr("GOOGLE_CREDENTIALS_FILE", ""),
			XLSXPath:        getEnvOr("XLSX_PATH", ""),
		},
		Telegram: TelegramConfig{
			BotToken:    getEnv("TELEGRAM_BOT_TOKEN"),
			AdminChatID: getEnvOr("TELEGRAM_ADMIN_CHAT_ID", ""),
		},
		SyncInterval: syncInterval,
	}

	switch cfg.Sheets.Backend {
	case "google":
		if cfg.Sheets.CredentialsFile == "" {
			log.Fatalf("Error: GOOGLE_CREDENTIALS_FILE is required when SHEET_BACKEND=google.")
		}
	case "xlsx":
		if cfg.Sheets.XLSXPath == "" {
			log.Fatalf("Error: XLSX_PATH is required when SHEET_BACKEND=xlsx.")
		}
	default:
		log.Fatalf("Error: unknown SHEET_BACKEND %q (expected google or xlsx).", cfg.Sheets.Backend)
	}

	return cfg
}
