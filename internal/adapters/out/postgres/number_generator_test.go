package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatOrderNumber(t *testing.T) {
	assert.Equal(t, "MK-2026-000001", FormatOrderNumber(2026, 1))
	assert.Equal(t, "MK-2026-123456", FormatOrderNumber(2026, 123456))
	assert.Equal(t, "MK-2026-1234567", FormatOrderNumber(2026, 1234567))
}
