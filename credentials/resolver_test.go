package credentials

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	env := map[string]string{
		"OPENAI_API_KEY": "sk-from-env",
		"EMPTY_KEY":      "",
	}
	r := NewResolver(WithLookup(func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}))

	tests := []struct {
		name         string
		envKey       string
		requestValue string
		want         string
		wantOk       bool
	}{
		{"environment wins over request", "OPENAI_API_KEY", "sk-from-body", "sk-from-env", true},
		{"request used when env unset", "CLAUDE_API_KEY", "sk-from-body", "sk-from-body", true},
		{"empty env falls through to request", "EMPTY_KEY", "sk-from-body", "sk-from-body", true},
		{"neither source present", "CLAUDE_API_KEY", "", "", false},
		{"blank request value does not count", "CLAUDE_API_KEY", "   ", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := r.Resolve(tt.envKey, tt.requestValue)
			assert.Equal(t, tt.wantOk, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewResolver_DefaultsToProcessEnvironment(t *testing.T) {
	t.Setenv("RAGSERVER_TEST_SECRET", "from-process-env")

	r := NewResolver()
	got, ok := r.Resolve("RAGSERVER_TEST_SECRET", "ignored")
	assert.True(t, ok)
	assert.Equal(t, "from-process-env", got)
}
