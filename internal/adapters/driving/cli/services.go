package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/mhersey/vaultkeeper/internal/adapters/driven/config/file"
	"github.com/mhersey/vaultkeeper/internal/adapters/driven/llm/openai"
	"github.com/mhersey/vaultkeeper/internal/adapters/driven/mail"
	"github.com/mhersey/vaultkeeper/internal/adapters/driven/oauth"
	"github.com/mhersey/vaultkeeper/internal/adapters/driven/rediscache"
	"github.com/mhersey/vaultkeeper/internal/config"
	"github.com/mhersey/vaultkeeper/internal/connectors/dropbox"
	"github.com/mhersey/vaultkeeper/internal/connectors/google"
	"github.com/mhersey/vaultkeeper/internal/connectors/google/gmail"
	"github.com/mhersey/vaultkeeper/internal/connectors/notion"
	"github.com/mhersey/vaultkeeper/internal/core/domain"
	"github.com/mhersey/vaultkeeper/internal/core/ports/driven"
	"github.com/mhersey/vaultkeeper/internal/core/ports/driving"
	"github.com/mhersey/vaultkeeper/internal/core/services"
)

// Services are package-level so tests can swap in mocks. Production wiring
// happens lazily in the init* helpers: a command only pays for the adapters
// it uses, and a missing env var surfaces before any network call.
var (
	journalService  driving.JournalManager
	plannerService  driving.WeeklyPlanner
	cycleResolver   driving.CycleResolver
	hubSynchroniser driving.HubSynchroniser
	reflector       driving.Reflector
	tokenRefresher  driving.TokenRefresher
	organiser       driving.Organiser
)

func openCache(cfg *config.Config) driven.Cache {
	return rediscache.New(cfg.RedisAddr(), cfg.RedisPassword)
}

// openVault builds the Dropbox store from the access token the token
// refresher keeps in Redis.
func openVault(ctx context.Context, cfg *config.Config, cache driven.Cache) (driven.VaultStore, error) {
	if err := cfg.RequireVault(); err != nil {
		return nil, err
	}
	token, err := cache.Get(ctx, domain.KeyDropboxAccessToken)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("%w: no Dropbox access token in Redis, run \"vaultkeeper token dropbox\"",
			domain.ErrAuthRequired)
	}
	if err != nil {
		return nil, err
	}
	return dropbox.New(token), nil
}

func initJournal(ctx context.Context) error {
	if journalService != nil {
		return nil
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	vault, err := openVault(ctx, cfg, openCache(cfg))
	if err != nil {
		return err
	}
	journalService = services.NewJournalService(vault, cfg.VaultPath, cfg.Location)
	return nil
}

func initPlanner(ctx context.Context) error {
	if plannerService != nil {
		return nil
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	vault, err := openVault(ctx, cfg, openCache(cfg))
	if err != nil {
		return err
	}
	plannerService = services.NewPlannerService(vault, cfg.VaultPath, cfg.Location)
	return nil
}

func initCycleResolver(ctx context.Context) error {
	if cycleResolver != nil {
		return nil
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cache := openCache(cfg)
	vault, err := openVault(ctx, cfg, cache)
	if err != nil {
		return err
	}
	cycleResolver = services.NewCycleResolverService(vault, cache, cfg.VaultPath, cfg.Location)
	return nil
}

// initHub wires the Knowledge Hub synchroniser. The Gmail mailbox is only
// built when the command harvests email, so "hub sync" does not need a
// Gmail token.
func initHub(ctx context.Context, needMailbox bool) error {
	if hubSynchroniser != nil {
		return nil
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.RequireNotion(); err != nil {
		return err
	}
	cache := openCache(cfg)
	vault, err := openVault(ctx, cfg, cache)
	if err != nil {
		return err
	}

	var mailbox driven.Mailbox
	if needMailbox {
		if err := cfg.RequireYouTubeSaves(); err != nil {
			return err
		}
		ts := google.NewTokenSource(ctx, cache, domain.KeyGmailAccessToken)
		client, err := gmail.New(ctx, ts)
		if err != nil {
			return fmt.Errorf("creating gmail client: %w", err)
		}
		mailbox = client
	}

	kb := notion.New(cfg.NotionAPIKey, cfg.NotionKnowledgeHubDB)
	hubSynchroniser = services.NewHubService(vault, kb, mailbox, cache,
		cfg.VaultPath, cfg.YouTubeSavesAddress, cfg.Location)
	return nil
}

func initReflector(ctx context.Context) error {
	if reflector != nil {
		return nil
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.RequireOpenAI(); err != nil {
		return err
	}
	if err := cfg.RequireMailer(); err != nil {
		return err
	}
	vault, err := openVault(ctx, cfg, openCache(cfg))
	if err != nil {
		return err
	}
	llm, err := openai.NewLLMService(openai.LLMConfig{APIKey: cfg.OpenAIAPIKey})
	if err != nil {
		return err
	}
	prompts, err := file.NewPromptStore(cfg.PromptDir())
	if err != nil {
		return err
	}
	mailer := mail.New(cfg.GmailAccount, cfg.GmailPassword)
	reflector = services.NewReflectionService(vault, llm, mailer, prompts,
		cfg.VaultPath, cfg.ObsidianVaultName, cfg.Location)
	return nil
}

func initTokenRefresher(dropboxGrant bool) error {
	if tokenRefresher != nil {
		return nil
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if dropboxGrant {
		if err := cfg.RequireDropboxApp(); err != nil {
			return err
		}
	} else {
		if err := cfg.RequireGmailCredentials(); err != nil {
			return err
		}
	}
	provider := oauth.NewProvider(cfg.DropboxAppKey, cfg.DropboxAppSecret,
		cfg.DropboxRefreshToken, cfg.GmailCredentialsPath)
	tokenRefresher = services.NewTokenService(provider, openCache(cfg))
	return nil
}

func initOrganiser(ctx context.Context) error {
	if organiser != nil {
		return nil
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	vault, err := openVault(ctx, cfg, openCache(cfg))
	if err != nil {
		return err
	}
	organiser = services.NewOrganiserService(vault, cfg.VaultPath)
	return nil
}
