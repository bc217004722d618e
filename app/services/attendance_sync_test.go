package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/IstiakDeveloper/School-Management-Pro-sub007/app/models"
)

func testSettings() models.DeviceSetting {
	return models.DeviceSetting{
		TeacherInTime:      "08:30",
		TeacherOutTime:     "16:00",
		TeacherLateTime:    "09:00",
		StudentInTime:      "08:00",
		StudentLateMinutes: 15,
		AutoMarkLate:       true,
		AutoMarkEarlyLeave: true,
		WeekendDays:        []int{0, 6}, // Sunday, Saturday
	}
}

func at(hour, min int) time.Time {
	return time.Date(2024, time.March, 1, hour, min, 0, 0, time.UTC)
}

func punch(hour, min int, state models.PunchState) PunchEvent {
	return PunchEvent{
		SubjectID: "T100",
		Timestamp: at(hour, min),
		State:     state,
		Type:      "fingerprint",
	}
}

func TestFoldPunch(t *testing.T) {
	t.Run("SinglePunchSetsOnlyInTime", func(t *testing.T) {
		in, out := FoldPunch(nil, nil, punch(8, 5, models.PunchIn))

		assert.NotNil(t, in)
		assert.Equal(t, at(8, 5), *in)
		assert.Nil(t, out)
	})

	t.Run("OutboundFirstPunchStillSetsInTime", func(t *testing.T) {
		in, out := FoldPunch(nil, nil, punch(15, 0, models.PunchOut))

		assert.NotNil(t, in)
		assert.Equal(t, at(15, 0), *in)
		assert.NotNil(t, out)
		assert.Equal(t, at(15, 0), *out)
	})

	t.Run("InTimeOnlyMovesEarlier", func(t *testing.T) {
		in, out := FoldPunch(nil, nil, punch(8, 5, models.PunchIn))
		in, out = FoldPunch(in, out, punch(8, 30, models.PunchIn))

		assert.Equal(t, at(8, 5), *in)
		// Second punch arrived with an in-time already set, so it becomes
		// a check-out candidate.
		assert.NotNil(t, out)
		assert.Equal(t, at(8, 30), *out)

		in, out = FoldPunch(in, out, punch(7, 50, models.PunchIn))
		assert.Equal(t, at(7, 50), *in)
	})

	t.Run("OutTimeOnlyMovesLater", func(t *testing.T) {
		in, out := FoldPunch(nil, nil, punch(8, 0, models.PunchIn))
		in, out = FoldPunch(in, out, punch(16, 10, models.PunchOut))
		in, out = FoldPunch(in, out, punch(12, 0, models.PunchOut))

		assert.Equal(t, at(8, 0), *in)
		assert.Equal(t, at(16, 10), *out)
	})

	t.Run("KeepsEarliestInAndLatestOutAcrossManyPunches", func(t *testing.T) {
		var in, out *time.Time
		for _, p := range []PunchEvent{
			punch(8, 10, models.PunchIn),
			punch(8, 2, models.PunchIn),
			punch(12, 30, models.PunchOut),
			punch(16, 5, models.PunchOut),
			punch(13, 0, models.PunchOut),
		} {
			in, out = FoldPunch(in, out, p)
		}

		assert.Equal(t, at(8, 2), *in)
		assert.Equal(t, at(16, 5), *out)
	})
}

func TestDeriveTeacherStatus(t *testing.T) {
	settings := testSettings()

	t.Run("PresentInsideWindow", func(t *testing.T) {
		in, out := at(8, 30), at(16, 0)
		assert.Equal(t, models.Present, DeriveTeacherStatus(&in, &out, settings))
	})

	t.Run("EarlyLeaveBeforeSlack", func(t *testing.T) {
		in, out := at(8, 30), at(15, 30)
		assert.Equal(t, models.EarlyLeave, DeriveTeacherStatus(&in, &out, settings))
	})

	t.Run("CheckoutWithinSlackIsNotEarlyLeave", func(t *testing.T) {
		in, out := at(8, 30), at(15, 50)
		assert.Equal(t, models.Present, DeriveTeacherStatus(&in, &out, settings))
	})

	t.Run("LateAfterCutoff", func(t *testing.T) {
		in := at(9, 15)
		assert.Equal(t, models.Late, DeriveTeacherStatus(&in, nil, settings))
	})

	t.Run("LateOverridesEarlyLeave", func(t *testing.T) {
		// Both conditions hold; the late check runs second and wins.
		in, out := at(9, 15), at(15, 30)
		assert.Equal(t, models.Late, DeriveTeacherStatus(&in, &out, settings))
	})

	t.Run("DisabledFlagsSuppressDerivation", func(t *testing.T) {
		off := settings
		off.AutoMarkLate = false
		off.AutoMarkEarlyLeave = false

		in, out := at(9, 15), at(15, 30)
		assert.Equal(t, models.Present, DeriveTeacherStatus(&in, &out, off))
	})
}

func TestDeriveStudentStatus(t *testing.T) {
	settings := testSettings()

	t.Run("OnTime", func(t *testing.T) {
		in := at(8, 5)
		assert.Equal(t, models.Present, DeriveStudentStatus(&in, settings))
	})

	t.Run("ExactlyAtThresholdIsPresent", func(t *testing.T) {
		in := at(8, 15)
		assert.Equal(t, models.Present, DeriveStudentStatus(&in, settings))
	})

	t.Run("PastThresholdIsLate", func(t *testing.T) {
		in := at(8, 16)
		assert.Equal(t, models.Late, DeriveStudentStatus(&in, settings))
	})

	t.Run("NoPunchDefaultsPresent", func(t *testing.T) {
		assert.Equal(t, models.Present, DeriveStudentStatus(nil, settings))
	})
}

func TestApplyTeacherPunch(t *testing.T) {
	settings := testSettings()

	rec := &models.TeacherAttendance{
		TeacherID: "t-1",
		Date:      at(0, 0),
		Status:    models.Present,
	}

	ApplyTeacherPunch(rec, PunchEvent{
		SubjectID:    "T100",
		Timestamp:    at(8, 5),
		State:        models.PunchIn,
		Type:         "fingerprint",
		DeviceSerial: "ZK-001",
	}, settings)

	assert.Equal(t, models.Present, rec.Status)
	assert.Equal(t, at(8, 5), *rec.InTime)
	assert.Nil(t, rec.OutTime)
	assert.Equal(t, at(8, 5), *rec.LastPunchTime)
	assert.Equal(t, int(models.PunchIn), *rec.PunchState)
	assert.Equal(t, "fingerprint", rec.PunchType)
	assert.Equal(t, "ZK-001", rec.DeviceSerial)

	ApplyTeacherPunch(rec, punch(15, 30, models.PunchOut), settings)
	assert.Equal(t, models.EarlyLeave, rec.Status)
	assert.Equal(t, at(15, 30), *rec.OutTime)
}

func TestApplyStudentPunch(t *testing.T) {
	settings := testSettings()

	rec := &models.StudentAttendance{
		StudentID: "s-1",
		Date:      at(0, 0),
		Status:    models.Present,
	}

	ApplyStudentPunch(rec, punch(8, 25, models.PunchIn), settings)
	assert.Equal(t, models.Late, rec.Status)
	assert.Equal(t, at(8, 25), *rec.InTime)

	// Later punches update metadata but the status still follows the
	// first punch.
	ApplyStudentPunch(rec, punch(14, 0, models.PunchOut), settings)
	assert.Equal(t, models.Late, rec.Status)
	assert.Equal(t, at(8, 25), *rec.InTime)
	assert.Equal(t, at(14, 0), *rec.OutTime)
}

func TestAbsenceSuppressed(t *testing.T) {
	settings := testSettings()

	saturday := time.Date(2024, time.March, 2, 0, 0, 0, 0, time.UTC)
	friday := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)

	assert.True(t, AbsenceSuppressed(settings, saturday, false))
	assert.True(t, AbsenceSuppressed(settings, friday, true), "holiday suppresses absence marking")
	assert.False(t, AbsenceSuppressed(settings, friday, false))
}

func TestMarkAbsenteesSkipsWeekendWithoutLookups(t *testing.T) {
	// A weekend date must short-circuit before any database access, so a
	// nil handle is safe here.
	saturday := time.Date(2024, time.March, 2, 0, 0, 0, 0, time.UTC)

	marked, errs := MarkAbsentees(nil, testSettings(), saturday, []string{"T100"}, []string{"S200"})
	assert.Zero(t, marked)
	assert.Empty(t, errs)
}
