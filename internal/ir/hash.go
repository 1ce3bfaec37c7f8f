package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefixes for content-addressed identity.
// Version suffix enables future encoding migration.
const (
	DomainModule = "relix/module/v1"
	DomainRender = "relix/render/v1"
)

// hashWithDomain computes SHA-256 with domain separation.
// Format: SHA256(domain + 0x00 + data). The null separator prevents
// domain/data boundary ambiguity.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// ModuleFingerprint computes the content-addressed identity of a module.
// Two structurally equal modules always fingerprint identically, so the
// fingerprint is a valid cache key for anything derived purely from the IR.
func ModuleFingerprint(m *Module) (string, error) {
	doc, err := EncodeModule(m)
	if err != nil {
		return "", fmt.Errorf("ModuleFingerprint: %w", err)
	}
	canonical, err := MarshalCanonical(doc)
	if err != nil {
		return "", fmt.Errorf("ModuleFingerprint: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainModule, canonical), nil
}

// RenderKey computes the cache key for a rendered module. Rendered output
// depends on the module AND the codegen configuration, so both participate
// in the key.
func RenderKey(m *Module, definePrefix, definesFrom string) (string, error) {
	fingerprint, err := ModuleFingerprint(m)
	if err != nil {
		return "", err
	}
	doc := map[string]any{
		"module":        fingerprint,
		"define_prefix": definePrefix,
	}
	if definesFrom != "" {
		doc["defines_from"] = definesFrom
	}
	canonical, err := MarshalCanonical(doc)
	if err != nil {
		return "", fmt.Errorf("RenderKey: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainRender, canonical), nil
}
