package codegen

// Version identifies the renderer for cache entries. Bump on any change to
// emitted text so stale cache entries are never served.
const Version = "0.1.0"
