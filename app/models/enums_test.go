package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// The stored wire values; the manual-marking oneof validators list the same
// strings.
func TestAttendanceStatusValues(t *testing.T) {
	assert.Equal(t, AttendanceStatus("present"), Present)
	assert.Equal(t, AttendanceStatus("absent"), Absent)
	assert.Equal(t, AttendanceStatus("late"), Late)
	assert.Equal(t, AttendanceStatus("half_day"), HalfDay)
	assert.Equal(t, AttendanceStatus("early_leave"), EarlyLeave)
	assert.Equal(t, AttendanceStatus("excused"), Excused)
	assert.Equal(t, AttendanceStatus("leave"), OnLeave)
	assert.Equal(t, AttendanceStatus("holiday"), StatusHoliday)
}
