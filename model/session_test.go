package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveFinalMark(t *testing.T) {
	t.Run("unset until both parties report", func(t *testing.T) {
		assert.Equal(t, MarkUnset, ResolveFinalMark(MarkUnset, MarkUnset))
		assert.Equal(t, MarkUnset, ResolveFinalMark(MarkPresent, MarkUnset))
		assert.Equal(t, MarkUnset, ResolveFinalMark(MarkUnset, MarkPresent))
		assert.Equal(t, MarkUnset, ResolveFinalMark("", MarkPresent))
		assert.Equal(t, MarkUnset, ResolveFinalMark(MarkAbsent, ""))
	})

	t.Run("agreement wins", func(t *testing.T) {
		for _, mark := range []AttendanceMark{MarkPresent, MarkLate, MarkAbsent, MarkPostponed} {
			assert.Equal(t, mark, ResolveFinalMark(mark, mark))
		}
	})

	t.Run("tutor wins disagreement", func(t *testing.T) {
		assert.Equal(t, MarkAbsent, ResolveFinalMark(MarkPresent, MarkAbsent))
		assert.Equal(t, MarkPresent, ResolveFinalMark(MarkAbsent, MarkPresent))
		assert.Equal(t, MarkLate, ResolveFinalMark(MarkPostponed, MarkLate))
	})
}

func TestValidAttendanceMark(t *testing.T) {
	assert.True(t, ValidAttendanceMark(MarkPresent))
	assert.True(t, ValidAttendanceMark(MarkLate))
	assert.True(t, ValidAttendanceMark(MarkAbsent))
	assert.True(t, ValidAttendanceMark(MarkPostponed))

	// unset is a derived state, never an acceptable input
	assert.False(t, ValidAttendanceMark(MarkUnset))
	assert.False(t, ValidAttendanceMark(""))
	assert.False(t, ValidAttendanceMark("attended"))
}
