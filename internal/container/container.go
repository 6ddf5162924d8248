// Package container wires the application dependencies: logger, config,
// storage backend, rule store, categorizer, pipeline and the services built
// on them. Components receive their dependencies through constructors; the
// container is the only place that knows the whole graph.
package container

import (
	"context"
	"fmt"

	"google.golang.org/api/option"

	"pvillar/hogarfin/internal/accounts"
	"pvillar/hogarfin/internal/batch"
	"pvillar/hogarfin/internal/budget"
	"pvillar/hogarfin/internal/categorizer"
	"pvillar/hogarfin/internal/config"
	"pvillar/hogarfin/internal/history"
	"pvillar/hogarfin/internal/logging"
	"pvillar/hogarfin/internal/pipeline"
	"pvillar/hogarfin/internal/report"
	"pvillar/hogarfin/internal/reviewer"
	"pvillar/hogarfin/internal/scanner"
	"pvillar/hogarfin/internal/storage"
	"pvillar/hogarfin/internal/store"
	"pvillar/hogarfin/internal/tenant"
)

// Container holds the wired application dependencies. Immutable after
// creation; access goes through getters.
type Container struct {
	logger  logging.Logger
	config  *config.Config
	backend storage.Backend

	accountKey  string
	registry    *accounts.Registry
	learned     *categorizer.LearnedMappingStore
	categorizer *categorizer.Categorizer
	history     *history.Repository
	pipeline    *pipeline.Pipeline
	reviewer    *reviewer.Reviewer
	generator   *report.Generator
	scanner     *scanner.StatementScanner
	batch       *batch.Runner
}

// NewContainer wires all dependencies for the account configured in cfg.
// The learned mapping store is loaded here, so a storage outage surfaces at
// startup instead of mid-import.
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	if cfg.Account.Email == "" {
		return nil, fmt.Errorf("account email is required (flag --account or HOGARFIN_ACCOUNT_EMAIL)")
	}

	logger := logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format)

	backend, err := newBackend(ctx, cfg)
	if err != nil {
		return nil, err
	}

	rules, err := store.NewRuleStore("").LoadRules()
	if err != nil {
		return nil, fmt.Errorf("failed to load category rules: %w", err)
	}
	keywords, err := categorizer.NewKeywordStrategy(rules, logger)
	if err != nil {
		return nil, err
	}

	accountKey := tenant.AccountKey(cfg.Account.Email)
	learned := categorizer.NewLearnedMappingStore(backend, tenant.MappingKey(accountKey), logger)
	if err := learned.Load(ctx); err != nil {
		return nil, fmt.Errorf("failed to load learned mappings: %w", err)
	}

	cat := categorizer.NewCategorizer(learned, keywords, logger)
	repo := history.NewRepository(backend, logger)
	pl := pipeline.NewPipeline(cat, repo, logger)

	var suggester reviewer.Suggester
	if cfg.AI.Enabled && cfg.AI.APIKey != "" {
		suggester = reviewer.NewGeminiSuggester(cfg.AI.APIKey, cfg.AI.Model, logger)
		logger.Info("Category suggestions enabled")
	}

	sc := scanner.NewStatementScanner(logger)

	c := &Container{
		logger:      logger,
		config:      cfg,
		backend:     backend,
		accountKey:  accountKey,
		registry:    accounts.NewRegistry(backend, logger),
		learned:     learned,
		categorizer: cat,
		history:     repo,
		pipeline:    pl,
		reviewer:    reviewer.NewReviewer(repo, cat, suggester, logger),
		generator:   report.NewGenerator(logger),
		scanner:     sc,
		batch:       batch.NewRunner(sc, pl, logger),
	}

	logger.WithFields(
		logging.Field{Key: logging.FieldAccount, Value: accountKey},
		logging.Field{Key: logging.FieldBackend, Value: cfg.Storage.Backend},
	).Debug("Container initialized")
	return c, nil
}

func newBackend(ctx context.Context, cfg *config.Config) (storage.Backend, error) {
	switch cfg.Storage.Backend {
	case "file":
		dir := cfg.Storage.DataDirectory
		if dir == "" {
			dir = config.DefaultDataDirectory()
		}
		return storage.NewFileBackend(dir), nil
	case "sheets":
		var opts []option.ClientOption
		if cfg.Storage.CredentialsFile != "" {
			opts = append(opts, option.WithCredentialsFile(cfg.Storage.CredentialsFile))
		}
		return storage.NewSheetsBackend(ctx, cfg.Storage.SpreadsheetID, opts...)
	default:
		return nil, fmt.Errorf("invalid storage backend: %s", cfg.Storage.Backend)
	}
}

// ResolveDataKey maps a data-user name onto the storage key for its history.
// The data user must already be registered for the account.
func (c *Container) ResolveDataKey(ctx context.Context, dataUser string) (string, error) {
	if dataUser == "" {
		return "", fmt.Errorf("data user is required (flag --user or HOGARFIN_ACCOUNT_DATA_USER)")
	}

	users, err := c.registry.ListDataUsers(ctx, c.config.Account.Email)
	if err != nil {
		return "", err
	}

	id := tenant.DataUserID(dataUser)
	for _, u := range users {
		if u.ID == id {
			return tenant.DataKey(c.accountKey, u.ID), nil
		}
	}
	return "", fmt.Errorf("unknown data user %q for this account (add it with 'users add')", dataUser)
}

// BudgetService returns the budget service for one data user's history key.
func (c *Container) BudgetService(dataKey string) *budget.Service {
	return budget.NewService(c.backend, dataKey, c.logger)
}

// FlushLearned persists dirty learned mappings. Called once on shutdown.
func (c *Container) FlushLearned(ctx context.Context) error {
	return c.learned.Flush(ctx)
}

// GetLogger returns the container's logger.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetBackend returns the storage backend.
func (c *Container) GetBackend() storage.Backend {
	return c.backend
}

// AccountKey returns the namespace key for the configured account.
func (c *Container) AccountKey() string {
	return c.accountKey
}

// GetRegistry returns the account registry.
func (c *Container) GetRegistry() *accounts.Registry {
	return c.registry
}

// GetCategorizer returns the categorizer.
func (c *Container) GetCategorizer() *categorizer.Categorizer {
	return c.categorizer
}

// GetHistory returns the transaction history repository.
func (c *Container) GetHistory() *history.Repository {
	return c.history
}

// GetPipeline returns the ingestion pipeline.
func (c *Container) GetPipeline() *pipeline.Pipeline {
	return c.pipeline
}

// GetReviewer returns the review-flow service.
func (c *Container) GetReviewer() *reviewer.Reviewer {
	return c.reviewer
}

// GetReportGenerator returns the report generator.
func (c *Container) GetReportGenerator() *report.Generator {
	return c.generator
}

// GetScanner returns the statement-file scanner.
func (c *Container) GetScanner() *scanner.StatementScanner {
	return c.scanner
}

// GetBatchRunner returns the batch ingestion runner.
func (c *Container) GetBatchRunner() *batch.Runner {
	return c.batch
}
