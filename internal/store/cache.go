package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Record is one cached render.
type Record struct {
	// Key is the content-addressed render key (ir.RenderKey).
	Key string

	// ModuleFingerprint identifies the module independent of config.
	ModuleFingerprint string

	// Source is the rendered Elixir source text.
	Source string

	// RendererVersion is the codegen version that produced Source.
	RendererVersion string

	// SessionID identifies the render session that filled this entry.
	SessionID string
}

// Put inserts a cached render. Uses ON CONFLICT(key) DO NOTHING for
// idempotency: rendering is deterministic, so a duplicate key carries
// identical source and the first entry wins.
func (s *Store) Put(ctx context.Context, rec Record) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO renders
		(key, module_fingerprint, source, renderer_version, session_id)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(key) DO NOTHING
	`,
		rec.Key,
		rec.ModuleFingerprint,
		rec.Source,
		rec.RendererVersion,
		rec.SessionID,
	)
	if err != nil {
		return fmt.Errorf("put render: %w", err)
	}
	return nil
}

// Get looks up a cached render by key. Entries written by a different
// renderer version are treated as misses. Returns (nil, nil) on a miss.
func (s *Store) Get(ctx context.Context, key, rendererVersion string) (*Record, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT key, module_fingerprint, source, renderer_version, session_id
		FROM renders
		WHERE key = ? AND renderer_version = ?
	`, key, rendererVersion)

	var rec Record
	err := row.Scan(&rec.Key, &rec.ModuleFingerprint, &rec.Source, &rec.RendererVersion, &rec.SessionID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get render: %w", err)
	}
	return &rec, nil
}
