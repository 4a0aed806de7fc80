package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfirmationCodeRoundTrip(t *testing.T) {
	code := NewConfirmationCode()
	require.NotEmpty(t, code)

	hash, err := HashConfirmationCode(code)
	require.NoError(t, err)
	assert.NotEqual(t, code, hash)

	assert.NoError(t, VerifyConfirmationCode(hash, code))
	assert.Error(t, VerifyConfirmationCode(hash, "wrong-code"))
	assert.Error(t, VerifyConfirmationCode("", code))
}

func TestConfirmationCodesAreUnique(t *testing.T) {
	assert.NotEqual(t, NewConfirmationCode(), NewConfirmationCode())
}
