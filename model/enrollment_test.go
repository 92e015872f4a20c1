package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnrollmentStatusTerminal(t *testing.T) {
	assert.False(t, EnrollmentActive.Terminal())
	assert.False(t, EnrollmentPaused.Terminal())
	assert.True(t, EnrollmentCompleted.Terminal())
	assert.True(t, EnrollmentCancelled.Terminal())
}
