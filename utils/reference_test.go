package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGenRepaymentRef(t *testing.T) {
	ref := GenRepaymentRef(time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC))
	assert.True(t, strings.HasPrefix(ref, "RP-2026-"))
	assert.Len(t, ref, len("RP-2026-")+8)

	// references must be unique across calls
	other := GenRepaymentRef(time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC))
	assert.NotEqual(t, ref, other)
}
