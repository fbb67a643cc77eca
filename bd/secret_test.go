package bd_test

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/prilive-com/gobulksms/bd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSecretKey_Redaction(t *testing.T) {
	key := bd.SecretKey("super-secret-api-key")

	assert.Equal(t, "super-secret-api-key", key.Value())
	assert.Equal(t, "[REDACTED]", key.String())
	assert.Equal(t, "[REDACTED]", fmt.Sprintf("%v", key))
	assert.Equal(t, "[REDACTED]", fmt.Sprintf("%s", key))
	assert.Equal(t, `bd.SecretKey("[REDACTED]")`, fmt.Sprintf("%#v", key))

	data, err := json.Marshal(key)
	require.NoError(t, err)
	assert.Equal(t, `"[REDACTED]"`, string(data))
}

func TestSecretKey_IsEmpty(t *testing.T) {
	assert.True(t, bd.SecretKey("").IsEmpty())
	assert.False(t, bd.SecretKey("k").IsEmpty())
}
