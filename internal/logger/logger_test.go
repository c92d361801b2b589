package logger

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeKVs(t *testing.T) {
	got := sanitizeKVs([]interface{}{
		"api_key", "sk-123",
		"phone", "0977123456",
		"subject", "math",
		"dangling",
	})

	assert.Equal(t, "api_key", got[0])
	assert.Equal(t, "[REDACTED]", got[1])
	assert.Equal(t, "phone", got[2])
	hashed, ok := got[3].(string)
	assert.True(t, ok)
	assert.True(t, strings.HasPrefix(hashed, "hash:"), "phone should be hashed, got %q", hashed)
	assert.NotContains(t, hashed, "0977123456")
	assert.Equal(t, "math", got[5])
	assert.Equal(t, "dangling", got[6])
}

func TestHashValueStable(t *testing.T) {
	assert.Equal(t, hashValue("0977123456"), hashValue("0977123456"))
	assert.NotEqual(t, hashValue("0977123456"), hashValue("0967123456"))
	assert.Equal(t, "", hashValue(""))
}

func TestNopLogger(t *testing.T) {
	l := Nop().With("component", "test")
	l.Info("hello", "otp", "1234")
	l.Sync()
}
