// Package config loads Vaultkeeper settings from the environment.
// A .env file under PROJECT_ROOT_PATH is loaded first when present, so
// cron jobs and interactive shells see the same values.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"

	"github.com/mhersey/vaultkeeper/internal/core/domain"
	"github.com/mhersey/vaultkeeper/internal/logger"
)

// DefaultTimezone is used when SYSTEM_TIMEZONE is unset.
const DefaultTimezone = "US/Eastern"

// Config holds everything the CLI reads from the environment. Fields for
// integrations a command does not use may be empty; commands validate the
// vars they need via the Require* helpers before doing any network work.
type Config struct {
	// VaultPath is the Dropbox path of the Obsidian vault root,
	// e.g. "/Apps/Obsidian/MainVault".
	VaultPath string

	// ProjectRoot is the directory holding .env, prompts/ and cron_logs/.
	ProjectRoot string

	// CronLogPath overrides the default cron-log directory.
	CronLogPath string

	RedisHost     string
	RedisPort     string
	RedisPassword string

	OpenAIAPIKey string

	NotionAPIKey         string
	NotionKnowledgeHubDB string

	GmailCredentialsPath string
	GmailAccount         string
	GmailPassword        string

	YouTubeSavesAddress string

	// ObsidianVaultName is the vault name Obsidian deep links open,
	// e.g. "obsidian://open?vault=<name>&file=...".
	ObsidianVaultName string

	DropboxAppKey       string
	DropboxAppSecret    string
	DropboxRefreshToken string

	// Location is the resolved SYSTEM_TIMEZONE. Vault filenames use local
	// dates in this zone.
	Location *time.Location
}

// Load reads configuration from the environment. PROJECT_ROOT_PATH must be
// set; if "$PROJECT_ROOT_PATH/.env" exists it is loaded without overriding
// variables already present in the environment.
func Load() (*Config, error) {
	root := os.Getenv("PROJECT_ROOT_PATH")
	if root == "" {
		return nil, fmt.Errorf("%w: PROJECT_ROOT_PATH", domain.ErrMissingEnv)
	}

	envFile := filepath.Join(root, ".env")
	if _, err := os.Stat(envFile); err == nil {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("loading %s: %w", envFile, err)
		}
		logger.Debug("loaded environment from %s", envFile)
	}

	tzName := os.Getenv("SYSTEM_TIMEZONE")
	if tzName == "" {
		tzName = DefaultTimezone
	}
	loc, err := time.LoadLocation(tzName)
	if err != nil {
		return nil, fmt.Errorf("resolving SYSTEM_TIMEZONE %q: %w", tzName, err)
	}

	cfg := &Config{
		VaultPath:            os.Getenv("DROPBOX_OBSIDIAN_VAULT_PATH"),
		ProjectRoot:          root,
		CronLogPath:          os.Getenv("CRON_LOG_PATH"),
		RedisHost:            os.Getenv("REDIS_HOST"),
		RedisPort:            os.Getenv("REDIS_PORT"),
		RedisPassword:        os.Getenv("REDIS_PASSWORD"),
		OpenAIAPIKey:         os.Getenv("OPENAI_API_KEY"),
		NotionAPIKey:         os.Getenv("NOTION_API_KEY"),
		NotionKnowledgeHubDB: os.Getenv("NOTION_KNOWLEDGE_HUB_DB"),
		GmailCredentialsPath: os.Getenv("GMAIL_CREDENTIALS_PATH"),
		GmailAccount:         os.Getenv("GMAIL_ACCOUNT"),
		GmailPassword:        os.Getenv("GMAIL_PASSWORD"),
		YouTubeSavesAddress:  os.Getenv("YOUTUBE_SAVES_EMAIL_ADDRESS"),
		ObsidianVaultName:    os.Getenv("OBSIDIAN_VAULT_NAME"),
		DropboxAppKey:        os.Getenv("DROPBOX_ACCESS_KEY"),
		DropboxAppSecret:     os.Getenv("DROPBOX_ACCESS_SECRET"),
		DropboxRefreshToken:  os.Getenv("DROPBOX_REFRESH_TOKEN"),
		Location:             loc,
	}

	if cfg.RedisHost == "" {
		cfg.RedisHost = "localhost"
	}
	if cfg.RedisPort == "" {
		cfg.RedisPort = "6379"
	}
	if cfg.ObsidianVaultName == "" {
		cfg.ObsidianVaultName = "SecondBrain"
	}

	return cfg, nil
}

// RedisAddr returns the host:port address for the Redis client.
func (c *Config) RedisAddr() string {
	return c.RedisHost + ":" + c.RedisPort
}

// LogDir returns the cron-log directory, defaulting to
// "$PROJECT_ROOT_PATH/cron_logs".
func (c *Config) LogDir() string {
	if c.CronLogPath != "" {
		return c.CronLogPath
	}
	return filepath.Join(c.ProjectRoot, "cron_logs")
}

// PromptDir returns the prompt-override directory under the project root.
func (c *Config) PromptDir() string {
	return filepath.Join(c.ProjectRoot, "prompts")
}

// RequireVault ensures the Dropbox vault path is configured.
func (c *Config) RequireVault() error {
	if c.VaultPath == "" {
		return fmt.Errorf("%w: DROPBOX_OBSIDIAN_VAULT_PATH", domain.ErrMissingEnv)
	}
	return nil
}

// RequireOpenAI ensures the OpenAI API key is configured.
func (c *Config) RequireOpenAI() error {
	if c.OpenAIAPIKey == "" {
		return fmt.Errorf("%w: OPENAI_API_KEY", domain.ErrMissingEnv)
	}
	return nil
}

// RequireNotion ensures the Notion key and Knowledge Hub database are set.
func (c *Config) RequireNotion() error {
	if c.NotionAPIKey == "" {
		return fmt.Errorf("%w: NOTION_API_KEY", domain.ErrMissingEnv)
	}
	if c.NotionKnowledgeHubDB == "" {
		return fmt.Errorf("%w: NOTION_KNOWLEDGE_HUB_DB", domain.ErrMissingEnv)
	}
	return nil
}

// RequireYouTubeSaves ensures the sender address of the YouTube share
// emails is configured.
func (c *Config) RequireYouTubeSaves() error {
	if c.YouTubeSavesAddress == "" {
		return fmt.Errorf("%w: YOUTUBE_SAVES_EMAIL_ADDRESS", domain.ErrMissingEnv)
	}
	return nil
}

// RequireMailer ensures the SMTP sender account is configured.
func (c *Config) RequireMailer() error {
	if c.GmailAccount == "" {
		return fmt.Errorf("%w: GMAIL_ACCOUNT", domain.ErrMissingEnv)
	}
	if c.GmailPassword == "" {
		return fmt.Errorf("%w: GMAIL_PASSWORD", domain.ErrMissingEnv)
	}
	return nil
}

// RequireDropboxApp ensures the Dropbox app credentials used by the token
// refresher are configured.
func (c *Config) RequireDropboxApp() error {
	if c.DropboxAppKey == "" {
		return fmt.Errorf("%w: DROPBOX_ACCESS_KEY", domain.ErrMissingEnv)
	}
	if c.DropboxAppSecret == "" {
		return fmt.Errorf("%w: DROPBOX_ACCESS_SECRET", domain.ErrMissingEnv)
	}
	if c.DropboxRefreshToken == "" {
		return fmt.Errorf("%w: DROPBOX_REFRESH_TOKEN", domain.ErrMissingEnv)
	}
	return nil
}

// RequireGmailCredentials ensures the installed-app credentials file path
// is configured.
func (c *Config) RequireGmailCredentials() error {
	if c.GmailCredentialsPath == "" {
		return fmt.Errorf("%w: GMAIL_CREDENTIALS_PATH", domain.ErrMissingEnv)
	}
	return nil
}
