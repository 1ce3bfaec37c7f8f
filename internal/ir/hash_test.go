package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixtureModule() *Module {
	return &Module{
		Name: "M",
		Forms: []Form{
			&Attribute{Name: "x", Value: Int(1)},
			&Function{
				Public: true,
				Clauses: []Clause{
					{Signature: Call{Target: "f"}, Body: []Expr{Atom("ok")}},
				},
			},
		},
	}
}

func TestModuleFingerprint_Stable(t *testing.T) {
	first, err := ModuleFingerprint(fixtureModule())
	require.NoError(t, err)
	assert.Len(t, first, 64) // hex-encoded SHA-256

	// A structurally equal module fingerprints identically.
	again, err := ModuleFingerprint(fixtureModule())
	require.NoError(t, err)
	assert.Equal(t, first, again)
}

func TestModuleFingerprint_SensitiveToContent(t *testing.T) {
	base, err := ModuleFingerprint(fixtureModule())
	require.NoError(t, err)

	renamed := fixtureModule()
	renamed.Name = "N"
	other, err := ModuleFingerprint(renamed)
	require.NoError(t, err)
	assert.NotEqual(t, base, other)

	retargeted := fixtureModule()
	retargeted.Forms[0] = &Attribute{Name: "x", Value: Int(2)}
	other, err = ModuleFingerprint(retargeted)
	require.NoError(t, err)
	assert.NotEqual(t, base, other)
}

func TestRenderKey_DependsOnConfig(t *testing.T) {
	m := fixtureModule()

	base, err := RenderKey(m, "DEFINES_", "")
	require.NoError(t, err)

	same, err := RenderKey(m, "DEFINES_", "")
	require.NoError(t, err)
	assert.Equal(t, base, same)

	otherPrefix, err := RenderKey(m, "FLAGS_", "")
	require.NoError(t, err)
	assert.NotEqual(t, base, otherPrefix)

	withNamespace, err := RenderKey(m, "DEFINES_", "my_app")
	require.NoError(t, err)
	assert.NotEqual(t, base, withNamespace)

	fingerprint, err := ModuleFingerprint(m)
	require.NoError(t, err)
	assert.NotEqual(t, fingerprint, base, "render keys live in their own hash domain")
}

func TestHashWithDomain_SeparatesDomains(t *testing.T) {
	data := []byte("payload")
	assert.NotEqual(t,
		hashWithDomain(DomainModule, data),
		hashWithDomain(DomainRender, data))
}
