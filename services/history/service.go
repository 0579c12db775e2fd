// Package history records completed searches so the shell can offer them back
// to the user.
package history

import (
	"time"

	"github.com/google/uuid"

	"github.com/ananyarao/notescout/db/historydb"
	"github.com/ananyarao/notescout/logger"
	"github.com/ananyarao/notescout/services/search"
)

type Service struct {
	logger logger.Logger
	store  historydb.Store
}

func New(logger logger.Logger, store historydb.Store) *Service {
	return &Service{
		logger: logger,
		store:  store,
	}
}

// Record stores one completed search. Failures are logged and swallowed; the
// search result has already been produced and must not be affected.
func (s *Service) Record(request search.Request, resultCount int, took time.Duration) {
	entry := historydb.Entry{
		ID:          uuid.New().String(),
		Path:        request.Path,
		Query:       request.Query,
		Type:        string(request.Type),
		Mode:        string(request.Mode),
		Block:       string(request.Block),
		ResultCount: resultCount,
		DurationMS:  took.Milliseconds(),
		SearchedAt:  time.Now().UTC(),
	}

	if err := s.store.Append(entry); err != nil {
		s.logger.Error("failed to record search in history", "query", request.Query, "err", err.Error())
	}
}

// Recent returns up to limit past searches, most recent first.
func (s *Service) Recent(limit int) ([]historydb.Entry, error) {
	return s.store.Recent(limit)
}

func (s *Service) Clear() error {
	return s.store.Clear()
}
