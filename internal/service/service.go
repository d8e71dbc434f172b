package service

import (
	"context"

	"github.com/kyleking/db-scout/internal/executor"
	"github.com/kyleking/db-scout/internal/logging"
	"github.com/kyleking/db-scout/internal/paginate"
	"github.com/kyleking/db-scout/internal/schema"
	"github.com/kyleking/db-scout/internal/translate"
	"github.com/kyleking/db-scout/internal/types"
)

// Service wires the schema provider, executor, translator and pagination
// sessions into the three operations exposed to callers: schema access, raw
// query execution and natural-language querying. Within one request the
// pipeline is strictly sequential: schema fetch, translate, gate, execute.
type Service struct {
	schemas    schema.Provider
	backend    executor.Backend
	translator *translate.Translator
	sessions   *paginate.SessionStore
}

// New assembles a service from its collaborators.
func New(
	schemas schema.Provider,
	backend executor.Backend,
	translator *translate.Translator,
	sessions *paginate.SessionStore,
) *Service {
	return &Service{
		schemas:    schemas,
		backend:    backend,
		translator: translator,
		sessions:   sessions,
	}
}

// GetSchema returns the schema snapshot for databaseID.
func (s *Service) GetSchema(ctx context.Context, databaseID string) (*schema.Database, error) {
	return s.schemas.GetSchema(ctx, databaseID)
}

// ListTables returns the table names of the snapshot for databaseID.
func (s *Service) ListTables(ctx context.Context, databaseID string) ([]string, error) {
	return s.schemas.ListTables(ctx, databaseID)
}

// RunQuery gates a hand-written SQL string through the validator and
// executor. A successful result replaces the session's pagination state.
func (s *Service) RunQuery(ctx context.Context, sessionID, sqlText string) types.QueryResult {
	return s.run(ctx, sessionID, types.QueryRequest{
		RawSQL: sqlText,
		Origin: types.OriginDirect,
	})
}

// Ask answers a natural-language question: fetch the schema, translate the
// question, then gate and execute the generated SQL. The translation result
// is always returned so callers can surface confidence and errors; the
// query result is failed when any step short-circuits.
func (s *Service) Ask(
	ctx context.Context,
	sessionID, databaseID, question string,
) (types.TranslationResult, types.QueryResult) {
	logger := logging.GetLogger()

	snapshot, err := s.schemas.GetSchema(ctx, databaseID)
	if err != nil {
		logger.ErrorWithErr("Schema unavailable for translation", err)

		return types.TranslationResult{Error: err.Error()}, types.Failed(err.Error())
	}

	translation := s.translator.Translate(ctx, question, snapshot)
	if translation.Error != "" {
		return translation, types.Failed("Translation failed: " + translation.Error)
	}

	logger.WithFields(map[string]interface{}{
		"confidence": translation.Confidence,
		"tables":     translation.TablesUsed,
	}).Debugf("Generated SQL: %s", translation.SQL)

	result := s.run(ctx, sessionID, types.QueryRequest{
		RawSQL: translation.SQL,
		Origin: types.OriginGenerated,
	})

	return translation, result
}

// NextPage serves the next page of the session's last successful result.
func (s *Service) NextPage(sessionID string) ([]types.Row, error) {
	return s.sessions.Get(sessionID).NextPage()
}

// CurrentPage returns the number of pages served for the session.
func (s *Service) CurrentPage(sessionID string) int {
	return s.sessions.Get(sessionID).CurrentPage()
}

// NewSession opens a fresh pagination session.
func (s *Service) NewSession() string {
	return s.sessions.NewSession()
}

func (s *Service) run(ctx context.Context, sessionID string, req types.QueryRequest) types.QueryResult {
	result := s.backend.Execute(ctx, req)

	if result.Success {
		s.sessions.Get(sessionID).StoreResult(result.Rows)
	}

	return result
}
