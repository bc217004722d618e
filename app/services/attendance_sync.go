package services

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/IstiakDeveloper/School-Management-Pro-sub007/app/database"
	"github.com/IstiakDeveloper/School-Management-Pro-sub007/app/models"
)

// earlyLeaveSlack is how much before the expected out-time a check-out can
// land before it counts as an early leave.
const earlyLeaveSlack = 15 * time.Minute

// PunchEvent is one normalized punch from a biometric device or a legacy
// batch upload.
type PunchEvent struct {
	SubjectID    string
	Timestamp    time.Time
	State        models.PunchState
	Type         string
	DeviceSerial string
}

// SubjectKind tags the outcome of a subject lookup.
type SubjectKind int

const (
	SubjectUnresolved SubjectKind = iota
	SubjectTeacher
	SubjectStudent
)

type ResolvedSubject struct {
	Kind    SubjectKind
	Teacher *models.Teacher
	Student *models.Student
}

// SubjectResolver maps a device identifier to a teacher or student.
type SubjectResolver interface {
	Resolve(id string) (ResolvedSubject, error)
}

// DBResolver resolves against the teachers and students tables. Teachers are
// checked before students: when an employee id and an admission number
// collide, the teacher wins.
type DBResolver struct {
	DB *sql.DB
}

func (r DBResolver) Resolve(id string) (ResolvedSubject, error) {
	teacher, err := database.GetTeacherByEmployeeID(r.DB, id)
	if err != nil {
		return ResolvedSubject{}, err
	}
	if teacher != nil {
		return ResolvedSubject{Kind: SubjectTeacher, Teacher: teacher}, nil
	}

	student, err := database.GetStudentByAdmissionNo(r.DB, id)
	if err != nil {
		return ResolvedSubject{}, err
	}
	if student != nil {
		return ResolvedSubject{Kind: SubjectStudent, Student: student}, nil
	}

	return ResolvedSubject{Kind: SubjectUnresolved}, nil
}

// FoldPunch merges one punch into the stored (in, out) pair:
//   - in only moves earlier, and only for an inbound punch or when no
//     in-time exists yet;
//   - out only moves later, and only for an outbound punch or when an
//     in-time already existed before this punch.
//
// A single punch therefore yields an in-time and no out-time; every later
// punch becomes a check-out candidate.
func FoldPunch(in, out *time.Time, p PunchEvent) (*time.Time, *time.Time) {
	ts := p.Timestamp
	hadIn := in != nil

	if p.State == models.PunchIn || !hadIn {
		if in == nil || ts.Before(*in) {
			in = &ts
		}
	}
	if p.State == models.PunchOut || hadIn {
		if out == nil || ts.After(*out) {
			out = &ts
		}
	}
	return in, out
}

// DeriveTeacherStatus recomputes a teacher's status from the punch times.
// Early-leave is evaluated first, late second; when both conditions hold the
// late check silently wins. That ordering matches the long-standing behavior
// this replaces and must not be swapped.
func DeriveTeacherStatus(in, out *time.Time, settings models.DeviceSetting) models.AttendanceStatus {
	status := models.Present

	if settings.AutoMarkEarlyLeave && out != nil {
		if expectedOut, err := models.TimeOn(*out, settings.TeacherOutTime); err == nil {
			if out.Before(expectedOut.Add(-earlyLeaveSlack)) {
				status = models.EarlyLeave
			}
		}
	}

	if settings.AutoMarkLate && in != nil {
		if lateCutoff, err := models.TimeOn(*in, settings.TeacherLateTime); err == nil {
			if in.After(lateCutoff) {
				status = models.Late
			}
		}
	}

	return status
}

// DeriveStudentStatus derives a student's status from the first punch: later
// than expected in-time plus the late threshold means late.
func DeriveStudentStatus(in *time.Time, settings models.DeviceSetting) models.AttendanceStatus {
	if in == nil {
		return models.Present
	}
	expected, err := models.TimeOn(*in, settings.StudentInTime)
	if err != nil {
		return models.Present
	}
	if in.After(expected.Add(time.Duration(settings.StudentLateMinutes) * time.Minute)) {
		return models.Late
	}
	return models.Present
}

// ApplyTeacherPunch folds one punch into a teacher's attendance row and
// rederives the status. Pure: no database access.
func ApplyTeacherPunch(rec *models.TeacherAttendance, p PunchEvent, settings models.DeviceSetting) {
	rec.InTime, rec.OutTime = FoldPunch(rec.InTime, rec.OutTime, p)

	ts := p.Timestamp
	state := int(p.State)
	rec.LastPunchTime = &ts
	rec.PunchState = &state
	if p.Type != "" {
		rec.PunchType = p.Type
	}
	if p.DeviceSerial != "" {
		rec.DeviceSerial = p.DeviceSerial
	}

	rec.Status = DeriveTeacherStatus(rec.InTime, rec.OutTime, settings)
}

// ApplyStudentPunch folds one punch into a student's attendance row. Pure.
func ApplyStudentPunch(rec *models.StudentAttendance, p PunchEvent, settings models.DeviceSetting) {
	rec.InTime, rec.OutTime = FoldPunch(rec.InTime, rec.OutTime, p)

	ts := p.Timestamp
	state := int(p.State)
	rec.LastPunchTime = &ts
	rec.PunchState = &state
	if p.Type != "" {
		rec.PunchType = p.Type
	}
	if p.DeviceSerial != "" {
		rec.DeviceSerial = p.DeviceSerial
	}

	rec.Status = DeriveStudentStatus(rec.InTime, settings)
}

// SyncError is a per-record failure inside an otherwise successful batch.
type SyncError struct {
	EmployeeID string `json:"employee_id"`
	Error      string `json:"error"`
}

// SyncSummary is what a device-sync call reports back.
type SyncSummary struct {
	Processed    int         `json:"processed"`
	Total        int         `json:"total"`
	AbsentMarked int         `json:"absent_marked"`
	Errors       []SyncError `json:"errors"`
}

// ProcessPunch reconciles a single punch into the matching attendance row.
// Unresolved ids and a missing current academic year are returned as errors
// for the caller to accumulate; they never abort a batch.
func ProcessPunch(db *sql.DB, resolver SubjectResolver, settings models.DeviceSetting, p PunchEvent) error {
	resolved, err := resolver.Resolve(p.SubjectID)
	if err != nil {
		return err
	}

	date := dateOf(p.Timestamp)

	switch resolved.Kind {
	case SubjectTeacher:
		rec, err := database.GetOrCreateTeacherAttendance(db, resolved.Teacher.ID, date)
		if err != nil {
			return err
		}
		ApplyTeacherPunch(rec, p, settings)
		return database.SaveTeacherAttendancePunch(db, rec)

	case SubjectStudent:
		ay, err := database.GetCurrentAcademicYear(db)
		if err != nil {
			return err
		}
		if ay == nil {
			return fmt.Errorf("no current academic year configured")
		}
		rec, err := database.GetOrCreateStudentAttendance(db, resolved.Student.ID, ay.ID, date)
		if err != nil {
			return err
		}
		ApplyStudentPunch(rec, p, settings)
		return database.SaveStudentAttendancePunch(db, rec)

	default:
		return fmt.Errorf("no teacher or student found for id %s", p.SubjectID)
	}
}

// SyncInput is a parsed device-sync payload.
type SyncInput struct {
	DeviceID       string
	DeviceName     string
	DeviceIP       string
	SerialNumber   string
	Punches        []PunchEvent
	AbsentTeachers []string
	AbsentStudents []string
	Date           time.Time
}

// ProcessDeviceSync runs a full sync batch: every punch, then the absent
// lists, then the device-status row. Per-record failures accumulate in the
// summary; the batch itself never aborts.
func ProcessDeviceSync(db *sql.DB, settings models.DeviceSetting, in SyncInput) *SyncSummary {
	resolver := DBResolver{DB: db}
	summary := &SyncSummary{Total: len(in.Punches), Errors: []SyncError{}}

	for _, p := range in.Punches {
		if err := ProcessPunch(db, resolver, settings, p); err != nil {
			summary.Errors = append(summary.Errors, SyncError{EmployeeID: p.SubjectID, Error: err.Error()})
			continue
		}
		summary.Processed++
	}

	marked, errs := MarkAbsentees(db, settings, in.Date, in.AbsentTeachers, in.AbsentStudents)
	summary.AbsentMarked = marked
	summary.Errors = append(summary.Errors, errs...)

	updateDeviceStatus(db, in, summary)
	return summary
}

// AbsenceSuppressed reports whether absence marking is disabled for the
// date: weekends and holidays get no attendance row at all, neither present
// nor absent.
func AbsenceSuppressed(settings models.DeviceSetting, date time.Time, isHoliday bool) bool {
	return settings.IsWeekend(date) || isHoliday
}

// MarkAbsentees creates absent rows for the listed subjects. Weekend and
// holiday dates get no row at all, and an existing row for the date is never
// overwritten.
func MarkAbsentees(db *sql.DB, settings models.DeviceSetting, date time.Time, absentTeachers, absentStudents []string) (int, []SyncError) {
	if len(absentTeachers) == 0 && len(absentStudents) == 0 {
		return 0, nil
	}

	date = dateOf(date)
	if settings.IsWeekend(date) {
		return 0, nil
	}
	holiday, err := database.IsHoliday(db, date)
	if err != nil {
		return 0, []SyncError{{Error: fmt.Sprintf("holiday lookup failed: %v", err)}}
	}
	if AbsenceSuppressed(settings, date, holiday) {
		return 0, nil
	}

	marked := 0
	var errs []SyncError

	for _, employeeID := range absentTeachers {
		teacher, err := database.GetTeacherByEmployeeID(db, employeeID)
		if err != nil {
			errs = append(errs, SyncError{EmployeeID: employeeID, Error: err.Error()})
			continue
		}
		if teacher == nil {
			errs = append(errs, SyncError{EmployeeID: employeeID, Error: "no teacher found for employee id"})
			continue
		}
		created, err := database.MarkTeacherAbsent(db, teacher.ID, date)
		if err != nil {
			errs = append(errs, SyncError{EmployeeID: employeeID, Error: err.Error()})
			continue
		}
		if created {
			marked++
		}
	}

	var ay *models.AcademicYear
	if len(absentStudents) > 0 {
		ay, err = database.GetCurrentAcademicYear(db)
		if err != nil {
			errs = append(errs, SyncError{Error: fmt.Sprintf("academic year lookup failed: %v", err)})
			return marked, errs
		}
	}

	for _, admissionNo := range absentStudents {
		if ay == nil {
			errs = append(errs, SyncError{EmployeeID: admissionNo, Error: "no current academic year configured"})
			continue
		}
		student, err := database.GetStudentByAdmissionNo(db, admissionNo)
		if err != nil {
			errs = append(errs, SyncError{EmployeeID: admissionNo, Error: err.Error()})
			continue
		}
		if student == nil {
			errs = append(errs, SyncError{EmployeeID: admissionNo, Error: "no student found for admission number"})
			continue
		}
		created, err := database.MarkStudentAbsent(db, student.ID, ay.ID, date)
		if err != nil {
			errs = append(errs, SyncError{EmployeeID: admissionNo, Error: err.Error()})
			continue
		}
		if created {
			marked++
		}
	}

	return marked, errs
}

func updateDeviceStatus(db *sql.DB, in SyncInput, summary *SyncSummary) {
	now := time.Now()
	message := fmt.Sprintf("Processed %d of %d records", summary.Processed, summary.Total)
	if len(summary.Errors) > 0 {
		message = fmt.Sprintf("%s, %d errors", message, len(summary.Errors))
	}

	st := &models.DeviceStatus{
		DeviceID:     in.DeviceID,
		DeviceName:   in.DeviceName,
		DeviceIP:     in.DeviceIP,
		SerialNumber: in.SerialNumber,
		LastSyncAt:   &now,
		LastSyncOK:   len(summary.Errors) == 0,
		Processed:    summary.Processed,
		AbsentMarked: summary.AbsentMarked,
		ErrorCount:   len(summary.Errors),
		Message:      message,
	}
	if err := database.UpsertDeviceStatus(db, st); err != nil {
		log.Printf("Failed to update device status: %v", err)
	}
}

// dateOf truncates a timestamp to its calendar date.
func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
