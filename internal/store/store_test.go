package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "renders.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func sampleRecord(key string) Record {
	return Record{
		Key:               key,
		ModuleFingerprint: "fp-" + key,
		Source:            "defmodule :M do\nend\n",
		RendererVersion:   "0.1.0",
		SessionID:         NewSessionID(),
	}
}

func TestOpen_IsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "renders.db")

	st, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, st.Close())

	st, err = Open(path)
	require.NoError(t, err)
	require.NoError(t, st.Close())
}

func TestStore_PutGetRoundTrip(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	rec := sampleRecord("k1")
	require.NoError(t, st.Put(ctx, rec))

	got, err := st.Get(ctx, "k1", "0.1.0")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, rec, *got)
}

func TestStore_GetMissReturnsNil(t *testing.T) {
	st := openTestStore(t)

	got, err := st.Get(context.Background(), "absent", "0.1.0")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStore_VersionMismatchIsMiss(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, st.Put(ctx, sampleRecord("k1")))

	got, err := st.Get(ctx, "k1", "0.2.0")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStore_DuplicatePutKeepsFirstEntry(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	first := sampleRecord("k1")
	require.NoError(t, st.Put(ctx, first))

	second := first
	second.SessionID = NewSessionID()
	require.NoError(t, st.Put(ctx, second))

	got, err := st.Get(ctx, "k1", "0.1.0")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, first.SessionID, got.SessionID)
}

func TestNewSessionID_Unique(t *testing.T) {
	a := NewSessionID()
	b := NewSessionID()
	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
}
