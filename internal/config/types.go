package config

import "time"

// Config holds all configuration for the application.
type Config struct {
	DBName        string
	MigrationsDir string
	Port          string
	Turso         TursoConfig
	Sheets        SheetsConfig
	Telegram      TelegramConfig
	SyncInterval  time.Duration
}

type TursoConfig struct {
	PrimaryURL string
	AuthToken  string
}

// SheetsConfig selects and configures the sheet source backend.
type SheetsConfig struct {
	// Backend is "google" or "xlsx".
	Backend         string
	SpreadsheetID   string
	CredentialsFile string
	XLSXPath        string
}

type TelegramConfig struct {
	BotToken    string
	AdminChatID string
}
