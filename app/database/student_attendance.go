package database

import (
	"database/sql"
	"time"

	"github.com/IstiakDeveloper/School-Management-Pro-sub007/app/models"
)

const studentAttendanceColumns = `id, student_id, academic_year_id, date, status, in_time, out_time,
	last_punch_time, punch_state, COALESCE(punch_type, ''), COALESCE(device_serial, ''),
	COALESCE(marked_by, ''), COALESCE(remarks, ''), created_at, updated_at`

func scanStudentAttendance(row interface{ Scan(...interface{}) error }) (*models.StudentAttendance, error) {
	rec := &models.StudentAttendance{}
	err := row.Scan(
		&rec.ID, &rec.StudentID, &rec.AcademicYearID, &rec.Date, &rec.Status, &rec.InTime, &rec.OutTime,
		&rec.LastPunchTime, &rec.PunchState, &rec.PunchType, &rec.DeviceSerial, &rec.MarkedBy, &rec.Remarks,
		&rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// GetOrCreateStudentAttendance atomically finds or inserts the attendance row
// for (student, date); see GetOrCreateTeacherAttendance for the race contract.
func GetOrCreateStudentAttendance(db *sql.DB, studentID, academicYearID string, date time.Time) (*models.StudentAttendance, error) {
	_, err := db.Exec(`INSERT INTO student_attendances (student_id, academic_year_id, date, status, marked_by)
		VALUES ($1, $2, $3, 'present', 'system')
		ON CONFLICT (student_id, date) DO NOTHING`, studentID, academicYearID, date)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + studentAttendanceColumns + ` FROM student_attendances
			  WHERE student_id = $1 AND date = $2`
	return scanStudentAttendance(db.QueryRow(query, studentID, date))
}

func SaveStudentAttendancePunch(db *sql.DB, rec *models.StudentAttendance) error {
	query := `UPDATE student_attendances
			  SET status = $1, in_time = $2, out_time = $3, last_punch_time = $4,
			      punch_state = $5, punch_type = $6, device_serial = $7, updated_at = NOW()
			  WHERE id = $8`
	_, err := db.Exec(query, rec.Status, rec.InTime, rec.OutTime, rec.LastPunchTime,
		rec.PunchState, rec.PunchType, rec.DeviceSerial, rec.ID)
	return err
}

// MarkStudentAbsent inserts an absent row only when no attendance row exists
// for the date. Returns true when a row was created.
func MarkStudentAbsent(db *sql.DB, studentID, academicYearID string, date time.Time) (bool, error) {
	res, err := db.Exec(`INSERT INTO student_attendances (student_id, academic_year_id, date, status, marked_by)
		VALUES ($1, $2, $3, 'absent', 'system')
		ON CONFLICT (student_id, date) DO NOTHING`, studentID, academicYearID, date)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// CreateOrUpdateStudentAttendance is the manual-entry upsert used by staff forms.
func CreateOrUpdateStudentAttendance(db *sql.DB, rec *models.StudentAttendance) error {
	query := `INSERT INTO student_attendances (student_id, academic_year_id, date, status, remarks, marked_by)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  ON CONFLICT (student_id, date)
			  DO UPDATE SET status = EXCLUDED.status, remarks = EXCLUDED.remarks,
			                marked_by = EXCLUDED.marked_by, updated_at = NOW()`
	_, err := db.Exec(query, rec.StudentID, rec.AcademicYearID, rec.Date, rec.Status, rec.Remarks, rec.MarkedBy)
	return err
}

func GetStudentAttendanceByClassAndDate(db *sql.DB, classID string, date time.Time) ([]*models.StudentAttendance, error) {
	query := `SELECT sa.id, sa.student_id, sa.academic_year_id, sa.date, sa.status, sa.in_time, sa.out_time,
			  sa.last_punch_time, sa.punch_state, COALESCE(sa.punch_type, ''), COALESCE(sa.device_serial, ''),
			  COALESCE(sa.marked_by, ''), COALESCE(sa.remarks, ''), sa.created_at, sa.updated_at,
			  s.admission_no, s.first_name, s.last_name
			  FROM student_attendances sa
			  JOIN students s ON sa.student_id = s.id
			  WHERE s.class_id = $1 AND sa.date = $2
			  ORDER BY s.roll_no NULLS LAST, s.first_name`

	rows, err := db.Query(query, classID, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]*models.StudentAttendance, 0)
	for rows.Next() {
		rec := &models.StudentAttendance{}
		var admissionNo, firstName, lastName string
		err := rows.Scan(
			&rec.ID, &rec.StudentID, &rec.AcademicYearID, &rec.Date, &rec.Status, &rec.InTime, &rec.OutTime,
			&rec.LastPunchTime, &rec.PunchState, &rec.PunchType, &rec.DeviceSerial, &rec.MarkedBy, &rec.Remarks,
			&rec.CreatedAt, &rec.UpdatedAt, &admissionNo, &firstName, &lastName,
		)
		if err != nil {
			return nil, err
		}
		rec.Student = &models.Student{AdmissionNo: admissionNo, FirstName: firstName, LastName: lastName}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func GetStudentAttendanceByStudentAndDate(db *sql.DB, studentID string, date time.Time) (*models.StudentAttendance, error) {
	query := `SELECT ` + studentAttendanceColumns + ` FROM student_attendances
			  WHERE student_id = $1 AND date = $2`
	rec, err := scanStudentAttendance(db.QueryRow(query, studentID, date))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return rec, err
}

// StudentAttendanceReport aggregates one student's attendance over a range.
type StudentAttendanceReport struct {
	StudentID   string  `json:"student_id"`
	AdmissionNo string  `json:"admission_no"`
	FirstName   string  `json:"first_name"`
	LastName    string  `json:"last_name"`
	PresentDays int     `json:"present_days"`
	AbsentDays  int     `json:"absent_days"`
	LateDays    int     `json:"late_days"`
	TotalMarked int     `json:"total_marked"`
	Percentage  float64 `json:"percentage"`
}

func GetStudentAttendanceReport(db *sql.DB, classID string, from, to time.Time) ([]*StudentAttendanceReport, error) {
	query := `SELECT s.id, s.admission_no, s.first_name, s.last_name,
			  COUNT(*) FILTER (WHERE sa.status IN ('present', 'late')),
			  COUNT(*) FILTER (WHERE sa.status = 'absent'),
			  COUNT(*) FILTER (WHERE sa.status = 'late'),
			  COUNT(sa.id)
			  FROM students s
			  LEFT JOIN student_attendances sa ON s.id = sa.student_id AND sa.date BETWEEN $2 AND $3
			  WHERE s.class_id = $1 AND s.deleted_at IS NULL AND s.is_active = true
			  GROUP BY s.id, s.admission_no, s.first_name, s.last_name
			  ORDER BY s.first_name, s.last_name`

	rows, err := db.Query(query, classID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reports := make([]*StudentAttendanceReport, 0)
	for rows.Next() {
		r := &StudentAttendanceReport{}
		err := rows.Scan(&r.StudentID, &r.AdmissionNo, &r.FirstName, &r.LastName,
			&r.PresentDays, &r.AbsentDays, &r.LateDays, &r.TotalMarked)
		if err != nil {
			return nil, err
		}
		if r.TotalMarked > 0 {
			r.Percentage = float64(r.PresentDays) / float64(r.TotalMarked) * 100
		}
		reports = append(reports, r)
	}
	return reports, rows.Err()
}
