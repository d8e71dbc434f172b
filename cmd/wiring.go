package cmd

import (
	"fmt"

	"github.com/kyleking/db-scout/internal/config"
	"github.com/kyleking/db-scout/internal/database"
	"github.com/kyleking/db-scout/internal/executor"
	"github.com/kyleking/db-scout/internal/llm"
	"github.com/kyleking/db-scout/internal/paginate"
	"github.com/kyleking/db-scout/internal/schema"
	"github.com/kyleking/db-scout/internal/service"
	"github.com/kyleking/db-scout/internal/translate"
)

// buildService assembles the core pipeline from the active configuration.
// The returned cleanup releases the database handle and must run on every
// exit path.
func buildService(cfg *config.Config) (*service.Service, func(), error) {
	client, err := llm.NewClient(llm.Config{
		Provider:    cfg.LLM.Provider,
		Model:       cfg.LLM.Model,
		APIKey:      cfg.LLM.APIKey,
		BaseURL:     cfg.LLM.BaseURL,
		MaxTokens:   cfg.LLM.MaxTokens,
		Temperature: cfg.LLM.Temperature,
	})
	if err != nil {
		return nil, nil, err
	}

	translator := translate.New(client, translate.Policy{
		BlockSensitive: cfg.Policy.BlockSensitive,
		BlockedColumns: cfg.Policy.BlockedColumns,
	})

	sessions := paginate.NewSessionStore(cfg.Pagination.PageSize)

	provider, backend, cleanup, err := buildBackend(cfg)
	if err != nil {
		return nil, nil, err
	}

	return service.New(provider, backend, translator, sessions), cleanup, nil
}

// buildBackend selects the query backend and the matching schema provider
// for the configured driver.
func buildBackend(cfg *config.Config) (schema.Provider, executor.Backend, func(), error) {
	switch cfg.Database.Driver {
	case "memory":
		mem := executor.SampleBackend()
		provider := &schema.StaticProvider{Snapshot: mem.Schema()}

		return provider, mem, func() {}, nil
	case "mysql", "duckdb":
		factory := database.NewFactory(cfg.Database)

		var intro schema.Introspector
		if cfg.Database.Driver == "mysql" {
			intro = schema.NewMySQLIntrospector()
		} else {
			intro = schema.NewDuckDBIntrospector()
		}

		registry := schema.NewRegistry(factory, intro)

		db, err := factory.Connect(cfg.Database.Name)
		if err != nil {
			return nil, nil, nil, err
		}

		cleanup := func() { _ = db.Close() }

		return registry, executor.NewSQLBackend(db), cleanup, nil
	default:
		return nil, nil, nil, fmt.Errorf("unsupported database driver: %s", cfg.Database.Driver)
	}
}
