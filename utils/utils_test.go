package utils

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateEnrollmentCode(t *testing.T) {
	code := GenerateEnrollmentCode(1, 2)
	assert.Regexp(t, `^ENR-[0-9A-F]{12}$`, code)

	// Same inputs still produce distinct codes.
	assert.NotEqual(t, code, GenerateEnrollmentCode(1, 2))
}

func TestGenerateTransactionID(t *testing.T) {
	id := GenerateTransactionID(1, 2)
	assert.Regexp(t, `^TXN-[0-9A-F]{16}$`, id)
	assert.NotEqual(t, id, GenerateTransactionID(1, 2))
}

func TestGenerateVerificationCode(t *testing.T) {
	code := GenerateVerificationCode()
	_, err := uuid.Parse(code)
	require.NoError(t, err)
	assert.NotEqual(t, code, GenerateVerificationCode())
}

func TestRoundPercent(t *testing.T) {
	assert.Equal(t, 0, RoundPercent(0, 0))
	assert.Equal(t, 0, RoundPercent(1, 0))
	assert.Equal(t, 0, RoundPercent(0, 3))
	assert.Equal(t, 33, RoundPercent(1, 3))
	assert.Equal(t, 67, RoundPercent(2, 3))
	assert.Equal(t, 50, RoundPercent(1, 2))
	assert.Equal(t, 100, RoundPercent(3, 3))
}
