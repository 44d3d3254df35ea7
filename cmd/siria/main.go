// Command siria collects third-sector event announcements, classifies them
// and stores the deduplicated result locally.
package main

import (
	"context"
	"os"

	"github.com/custodia-labs/siria/internal/adapters/driven/ai"
	rediscache "github.com/custodia-labs/siria/internal/adapters/driven/cache/redis"
	"github.com/custodia-labs/siria/internal/adapters/driven/config/file"
	"github.com/custodia-labs/siria/internal/adapters/driven/metrics/prometheus"
	"github.com/custodia-labs/siria/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/siria/internal/adapters/driving/cli"
	"github.com/custodia-labs/siria/internal/core/domain"
	"github.com/custodia-labs/siria/internal/core/ports/driven"
	"github.com/custodia-labs/siria/internal/core/services"
	"github.com/custodia-labs/siria/internal/logger"
	"github.com/custodia-labs/siria/internal/sources/catalog"
)

// version is set at build time.
var version = "dev"

func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	if err := file.LoadEnv(".env"); err != nil {
		logger.Warn("Failed to load .env: %v", err)
	}

	configDir, err := file.DefaultDir()
	if err != nil {
		logger.Error("Failed to resolve config directory: %v", err)
		return err
	}
	configStore, err := file.NewConfigStore(configDir)
	if err != nil {
		logger.Error("Failed to load config: %v", err)
		return err
	}

	settingsService := services.NewSettingsService(configStore, ai.NewConfigValidator())
	settings, err := settingsService.Get()
	if err != nil {
		logger.Error("Failed to read settings: %v", err)
		return err
	}

	store, err := sqlite.NewStore("")
	if err != nil {
		logger.Error("Failed to open store: %v", err)
		return err
	}
	defer store.Close()

	cat, err := loadCatalog(settings.CatalogPath)
	if err != nil {
		logger.Error("Failed to load source catalogue: %v", err)
		return err
	}
	adapters := catalog.BuildAdapters(cat, catalog.BuildOptions{
		EventbriteAPIKey: settings.EventbriteAPIKey,
	})

	recorder := prometheus.NewRecorder()

	collector := services.NewCollector(adapters, services.WithCollectorMetrics(recorder))
	classifier := services.NewClassifier(newAIClassifier(ctx, settings))
	deduplicator := services.NewDeduplicator(settings.Pipeline.SimilarityThreshold)
	updateService := services.NewUpdateService(
		collector,
		classifier,
		deduplicator,
		store.EventStore(),
		services.WithRunStore(store.RunStore()),
		services.WithUpdateMetrics(recorder),
		services.WithPipelineSettings(settings.Pipeline),
	)
	scheduler := services.NewScheduler(settingsService.GetSchedulerConfig(), store.SchedulerStore(), updateService)

	cli.SetVersion(version)
	cli.SetServices(&cli.Services{
		Collector:      collector,
		Classifier:     classifier,
		Deduplicator:   deduplicator,
		Update:         updateService,
		Events:         services.NewEventService(store.EventStore()),
		Sources:        services.NewSourceService(cat.Sources),
		Settings:       settingsService,
		Scheduler:      scheduler,
		MetricsHandler: recorder.Handler(),
	})

	return cli.Execute()
}

func loadCatalog(path string) (*catalog.Catalog, error) {
	if path != "" {
		return catalog.Load(path)
	}
	return catalog.Default()
}

// newAIClassifier returns nil when no provider is usable, which leaves
// classification to the keyword rules.
func newAIClassifier(ctx context.Context, settings *domain.AppSettings) driven.AIClassifier {
	if !settings.LLM.IsConfigured() {
		logger.Debug("No LLM provider configured, using keyword rules")
		return nil
	}

	llm, err := ai.CreateAndValidateLLMService(ctx, &settings.LLM)
	if err != nil {
		logger.Warn("LLM unavailable, using keyword rules: %v", err)
		return nil
	}

	var prompts driven.PromptStore
	if store, err := file.NewPromptStore(""); err != nil {
		logger.Warn("Failed to open prompt directory, using built-in prompt: %v", err)
	} else {
		prompts = store
	}
	var classifier driven.AIClassifier = ai.NewLLMClassifier(llm, prompts)

	if settings.RedisAddr == "" {
		return classifier
	}
	client, err := rediscache.NewClient(ctx, settings.RedisAddr)
	if err != nil {
		logger.Warn("Classification cache disabled: %v", err)
		return classifier
	}
	logger.Debug("Caching classifications in redis at %s", settings.RedisAddr)
	return rediscache.NewCachedClassifier(classifier, client, 0)
}
