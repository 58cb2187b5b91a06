package stats

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/log"
	"github.com/jmoiron/sqlx"

	"gridiron/internal/query"
)

// New creates a Store over the shared database handle. Every query runs
// under the given timeout.
func New(db *sqlx.DB, timeout time.Duration) Store {
	return &store{db: db, timeout: timeout}
}

func (s *store) ByPosition(ctx context.Context, tag string) ([]Player, error) {
	spec, err := query.ByPosition(tag)
	if err != nil {
		return nil, err
	}
	return s.run(ctx, spec)
}

func (s *store) ByTeam(ctx context.Context, code string) ([]Player, error) {
	spec, err := query.ByTeam(code)
	if err != nil {
		return nil, err
	}
	return s.run(ctx, spec)
}

func (s *store) Search(ctx context.Context, substr, tag string) ([]Player, error) {
	spec, err := query.Search(substr, tag)
	if err != nil {
		return nil, err
	}
	return s.run(ctx, spec)
}

func (s *store) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	if err := s.db.PingContext(ctx); err != nil {
		return wrapStorageErr(err)
	}
	return nil
}

// run executes a spec and normalizes the result. Validation already happened
// in the query layer, so any failure here is a storage or consistency fault.
func (s *store) run(ctx context.Context, spec query.Spec) ([]Player, error) {
	sqlText, args := spec.SQL()

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	rows, err := s.db.QueryxContext(ctx, sqlText, args...)
	if err != nil {
		return nil, wrapStorageErr(err)
	}
	defer rows.Close()

	var raw []map[string]any
	for rows.Next() {
		row := map[string]any{}
		if err := rows.MapScan(row); err != nil {
			return nil, wrapStorageErr(err)
		}
		raw = append(raw, row)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapStorageErr(err)
	}

	players, err := Normalize(raw, spec.WithStats)
	if err != nil {
		log.Error("Row did not match registry schema", "error", err)
		return nil, err
	}
	return players, nil
}

func wrapStorageErr(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &StorageTimeoutError{Err: err}
	}
	return &StorageUnavailableError{Err: err}
}
