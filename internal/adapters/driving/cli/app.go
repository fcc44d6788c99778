package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/custodia-labs/sops-ai/internal/adapters/driven/config/env"
	"github.com/custodia-labs/sops-ai/internal/adapters/driven/config/file"
	"github.com/custodia-labs/sops-ai/internal/adapters/driven/embedding/openai"
	"github.com/custodia-labs/sops-ai/internal/adapters/driven/helpdesk"
	"github.com/custodia-labs/sops-ai/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/sops-ai/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/sops-ai/internal/adapters/driven/vector/pinecone"
	"github.com/custodia-labs/sops-ai/internal/adapters/driven/websearch/tavily"
	"github.com/custodia-labs/sops-ai/internal/core/domain"
	"github.com/custodia-labs/sops-ai/internal/core/ports/driven"
	"github.com/custodia-labs/sops-ai/internal/core/services"
	"github.com/custodia-labs/sops-ai/internal/logger"
)

// app holds the adapters built for one command invocation.
// Adapters whose settings are missing are left nil.
type app struct {
	config      *domain.AppConfig
	configStore driven.ConfigStore
	settings    env.Source

	embedder    driven.EmbeddingService
	provisioner driven.IndexProvisioner
	webSearch   driven.WebSearchProvider
	helpdesk    driven.HelpdeskClient
	runs        driven.IngestRunStore
	runsPath    string

	indexSpec   domain.IndexSpec
	indexSettle time.Duration

	closers []io.Closer
}

// buildApp resolves configuration and constructs every configured adapter.
func buildApp(configDir string) (*app, error) {
	store, err := file.NewConfigStore(configDir)
	if err != nil {
		return nil, fmt.Errorf("opening config: %w", err)
	}

	settings := env.Source{Store: store, DotenvPath: env.DefaultDotenvFile}
	cfg, err := settings.Load()
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}

	a := &app{
		config:      cfg,
		configStore: store,
		settings:    settings,
		indexSettle: domain.DefaultIndexSettle,
	}

	runStore, err := sqlite.NewStore(filepath.Join(filepath.Dir(store.Path()), "data"))
	if err != nil {
		logger.Warn("Run history kept in memory only: %v", err)
		a.runs = memory.NewRunStore()
	} else {
		a.runs = runStore.RunStore()
		a.runsPath = runStore.Path()
		a.closers = append(a.closers, runStore)
	}

	if cfg.OpenAIAPIKey != "" {
		embedder, err := openai.NewEmbeddingService(openai.Config{
			APIKey: cfg.OpenAIAPIKey,
			Model:  cfg.EmbeddingModel,
		})
		if err != nil {
			return nil, err
		}
		a.embedder = embedder
		a.closers = append(a.closers, embedder)
	}

	if cfg.PineconeAPIKey != "" {
		provisioner, err := pinecone.NewProvisioner(pinecone.Config{APIKey: cfg.PineconeAPIKey})
		if err != nil {
			return nil, err
		}
		a.provisioner = provisioner
	}

	if cfg.TavilyAPIKey != "" {
		provider, err := tavily.NewProvider(tavily.Config{APIKey: cfg.TavilyAPIKey})
		if err != nil {
			return nil, err
		}
		a.webSearch = provider
	}

	if cfg.RequestAPI().Enabled() {
		client, err := helpdesk.NewClient(helpdesk.Config{
			ServerURL:   cfg.RequestServerURL,
			AccessToken: cfg.RequestAccessToken,
		})
		if err != nil {
			return nil, err
		}
		a.helpdesk = client
	}

	a.indexSpec = indexSpecFor(cfg, a.embedder)

	return a, nil
}

// indexSpecFor builds the index to create when it is missing.
// The dimension follows the embedding model so stored and query vectors match.
func indexSpecFor(cfg *domain.AppConfig, embedder driven.EmbeddingService) domain.IndexSpec {
	spec := domain.DefaultIndexSpec(cfg.PineconeIndexName)
	spec.Cloud = cfg.PineconeCloud
	spec.Region = cfg.PineconeRegion
	if embedder != nil {
		spec.Dimension = embedder.Dimensions()
	}
	return spec
}

// missingError reports unset settings for a feature.
func missingError(status domain.FeatureStatus, sentinel error) error {
	return fmt.Errorf("%w: missing environment variables: %s", sentinel, strings.Join(status.Missing, ", "))
}

// openIndex connects to the existing knowledge base index.
func (a *app) openIndex(ctx context.Context) (driven.VectorStore, error) {
	if status := a.config.KnowledgeBase(); !status.Enabled() {
		return nil, missingError(status, domain.ErrKnowledgeBaseUnavailable)
	}
	store, err := a.provisioner.OpenIndex(ctx, a.indexSpec.Name)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, store)
	return store, nil
}

// ensureIndex connects to the knowledge base index, creating it if needed.
func (a *app) ensureIndex(ctx context.Context) (driven.VectorStore, error) {
	if status := a.config.Ingestion(); !status.Enabled() {
		return nil, missingError(status, domain.ErrKnowledgeBaseUnavailable)
	}
	store, err := services.EnsureIndex(ctx, a.provisioner, a.indexSpec, a.indexSettle)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, store)
	return store, nil
}

// Close releases every adapter in reverse order of creation.
func (a *app) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
