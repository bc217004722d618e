package database

import (
	"database/sql"
	"time"

	"github.com/IstiakDeveloper/School-Management-Pro-sub007/app/models"
)

const teacherAttendanceColumns = `id, teacher_id, date, status, in_time, out_time, last_punch_time,
	punch_state, COALESCE(punch_type, ''), COALESCE(device_serial, ''), COALESCE(marked_by, ''),
	COALESCE(remarks, ''), created_at, updated_at`

func scanTeacherAttendance(row interface{ Scan(...interface{}) error }) (*models.TeacherAttendance, error) {
	rec := &models.TeacherAttendance{}
	err := row.Scan(
		&rec.ID, &rec.TeacherID, &rec.Date, &rec.Status, &rec.InTime, &rec.OutTime, &rec.LastPunchTime,
		&rec.PunchState, &rec.PunchType, &rec.DeviceSerial, &rec.MarkedBy, &rec.Remarks,
		&rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// GetOrCreateTeacherAttendance atomically finds or inserts the attendance row
// for (teacher, date). Concurrent punches for the same key race on the insert;
// the unique constraint plus ON CONFLICT DO NOTHING guarantees exactly one row
// survives and both callers read it back.
func GetOrCreateTeacherAttendance(db *sql.DB, teacherID string, date time.Time) (*models.TeacherAttendance, error) {
	_, err := db.Exec(`INSERT INTO teacher_attendances (teacher_id, date, status, marked_by)
		VALUES ($1, $2, 'present', 'system')
		ON CONFLICT (teacher_id, date) DO NOTHING`, teacherID, date)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + teacherAttendanceColumns + ` FROM teacher_attendances
			  WHERE teacher_id = $1 AND date = $2`
	return scanTeacherAttendance(db.QueryRow(query, teacherID, date))
}

// SaveTeacherAttendancePunch persists punch-derived fields after reconciliation.
func SaveTeacherAttendancePunch(db *sql.DB, rec *models.TeacherAttendance) error {
	query := `UPDATE teacher_attendances
			  SET status = $1, in_time = $2, out_time = $3, last_punch_time = $4,
			      punch_state = $5, punch_type = $6, device_serial = $7, updated_at = NOW()
			  WHERE id = $8`
	_, err := db.Exec(query, rec.Status, rec.InTime, rec.OutTime, rec.LastPunchTime,
		rec.PunchState, rec.PunchType, rec.DeviceSerial, rec.ID)
	return err
}

// MarkTeacherAbsent inserts an absent row only when no attendance row exists
// for the date. Returns true when a row was created.
func MarkTeacherAbsent(db *sql.DB, teacherID string, date time.Time) (bool, error) {
	res, err := db.Exec(`INSERT INTO teacher_attendances (teacher_id, date, status, marked_by)
		VALUES ($1, $2, 'absent', 'system')
		ON CONFLICT (teacher_id, date) DO NOTHING`, teacherID, date)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// CreateOrUpdateTeacherAttendance is the manual-entry upsert used by staff
// forms; unlike the punch path it overwrites status and remarks outright.
func CreateOrUpdateTeacherAttendance(db *sql.DB, rec *models.TeacherAttendance) error {
	query := `INSERT INTO teacher_attendances (teacher_id, date, status, remarks, marked_by)
			  VALUES ($1, $2, $3, $4, $5)
			  ON CONFLICT (teacher_id, date)
			  DO UPDATE SET status = EXCLUDED.status, remarks = EXCLUDED.remarks,
			                marked_by = EXCLUDED.marked_by, updated_at = NOW()`
	_, err := db.Exec(query, rec.TeacherID, rec.Date, rec.Status, rec.Remarks, rec.MarkedBy)
	return err
}

func GetTeacherAttendanceByDate(db *sql.DB, date time.Time) ([]*models.TeacherAttendance, error) {
	query := `SELECT ta.id, ta.teacher_id, ta.date, ta.status, ta.in_time, ta.out_time, ta.last_punch_time,
			  ta.punch_state, COALESCE(ta.punch_type, ''), COALESCE(ta.device_serial, ''),
			  COALESCE(ta.marked_by, ''), COALESCE(ta.remarks, ''), ta.created_at, ta.updated_at,
			  t.employee_id, t.first_name, t.last_name
			  FROM teacher_attendances ta
			  JOIN teachers t ON ta.teacher_id = t.id
			  WHERE ta.date = $1
			  ORDER BY t.first_name, t.last_name`

	rows, err := db.Query(query, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]*models.TeacherAttendance, 0)
	for rows.Next() {
		rec := &models.TeacherAttendance{}
		var employeeID, firstName, lastName string
		err := rows.Scan(
			&rec.ID, &rec.TeacherID, &rec.Date, &rec.Status, &rec.InTime, &rec.OutTime, &rec.LastPunchTime,
			&rec.PunchState, &rec.PunchType, &rec.DeviceSerial, &rec.MarkedBy, &rec.Remarks,
			&rec.CreatedAt, &rec.UpdatedAt, &employeeID, &firstName, &lastName,
		)
		if err != nil {
			return nil, err
		}
		rec.Teacher = &models.Teacher{EmployeeID: employeeID, FirstName: firstName, LastName: lastName}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func GetTeacherAttendanceByTeacherAndDate(db *sql.DB, teacherID string, date time.Time) (*models.TeacherAttendance, error) {
	query := `SELECT ` + teacherAttendanceColumns + ` FROM teacher_attendances
			  WHERE teacher_id = $1 AND date = $2`
	rec, err := scanTeacherAttendance(db.QueryRow(query, teacherID, date))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return rec, err
}

// TeacherAttendanceSummary aggregates a teacher's rows over a date range.
type TeacherAttendanceSummary struct {
	TeacherID   string  `json:"teacher_id"`
	EmployeeID  string  `json:"employee_id"`
	FirstName   string  `json:"first_name"`
	LastName    string  `json:"last_name"`
	PresentDays int     `json:"present_days"`
	AbsentDays  int     `json:"absent_days"`
	LateDays    int     `json:"late_days"`
	LeaveDays   int     `json:"leave_days"`
	TotalMarked int     `json:"total_marked"`
	Percentage  float64 `json:"percentage"`
}

func GetTeacherAttendanceSummary(db *sql.DB, from, to time.Time) ([]*TeacherAttendanceSummary, error) {
	query := `SELECT t.id, t.employee_id, t.first_name, t.last_name,
			  COUNT(*) FILTER (WHERE ta.status IN ('present', 'late', 'early_leave', 'half_day')),
			  COUNT(*) FILTER (WHERE ta.status = 'absent'),
			  COUNT(*) FILTER (WHERE ta.status = 'late'),
			  COUNT(*) FILTER (WHERE ta.status IN ('leave', 'excused')),
			  COUNT(*)
			  FROM teacher_attendances ta
			  JOIN teachers t ON ta.teacher_id = t.id
			  WHERE ta.date BETWEEN $1 AND $2
			  GROUP BY t.id, t.employee_id, t.first_name, t.last_name
			  ORDER BY t.first_name, t.last_name`

	rows, err := db.Query(query, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summaries := make([]*TeacherAttendanceSummary, 0)
	for rows.Next() {
		s := &TeacherAttendanceSummary{}
		err := rows.Scan(&s.TeacherID, &s.EmployeeID, &s.FirstName, &s.LastName,
			&s.PresentDays, &s.AbsentDays, &s.LateDays, &s.LeaveDays, &s.TotalMarked)
		if err != nil {
			return nil, err
		}
		if s.TotalMarked > 0 {
			s.Percentage = float64(s.PresentDays) / float64(s.TotalMarked) * 100
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}
