// Package store provides the durable render cache.
//
// Rendering is deterministic, so rendered source is cacheable by content:
// the cache key combines the module's IR fingerprint with the codegen
// configuration (see ir.RenderKey), and entries additionally record the
// renderer version so a renderer upgrade never serves stale text.
//
// Uses SQLite with WAL mode; writes are idempotent (same key, same
// deterministic output - a duplicate insert is silently ignored).
package store
