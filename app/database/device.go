package database

import (
	"database/sql"
	"time"

	"github.com/lib/pq"

	"github.com/IstiakDeveloper/School-Management-Pro-sub007/app/models"
)

// GetDeviceSettings returns the singleton settings row, creating it with
// defaults on first access.
func GetDeviceSettings(db *sql.DB) (*models.DeviceSetting, error) {
	ds := &models.DeviceSetting{}
	var weekends pq.Int64Array

	query := `SELECT id, teacher_in_time, teacher_out_time, teacher_late_time, student_in_time,
			  student_late_minutes, auto_mark_late, auto_mark_early_leave, weekend_days, created_at, updated_at
			  FROM device_settings LIMIT 1`
	err := db.QueryRow(query).Scan(
		&ds.ID, &ds.TeacherInTime, &ds.TeacherOutTime, &ds.TeacherLateTime, &ds.StudentInTime,
		&ds.StudentLateMinutes, &ds.AutoMarkLate, &ds.AutoMarkEarlyLeave, &weekends, &ds.CreatedAt, &ds.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		if _, err := db.Exec(`INSERT INTO device_settings DEFAULT VALUES`); err != nil {
			return nil, err
		}
		return GetDeviceSettings(db)
	}
	if err != nil {
		return nil, err
	}

	ds.WeekendDays = make([]int, len(weekends))
	for i, d := range weekends {
		ds.WeekendDays[i] = int(d)
	}
	return ds, nil
}

func UpdateDeviceSettings(db *sql.DB, ds *models.DeviceSetting) error {
	weekends := make(pq.Int64Array, len(ds.WeekendDays))
	for i, d := range ds.WeekendDays {
		weekends[i] = int64(d)
	}

	query := `UPDATE device_settings
			  SET teacher_in_time = $1, teacher_out_time = $2, teacher_late_time = $3, student_in_time = $4,
			      student_late_minutes = $5, auto_mark_late = $6, auto_mark_early_leave = $7,
			      weekend_days = $8, updated_at = NOW()
			  WHERE id = $9`
	_, err := db.Exec(query, ds.TeacherInTime, ds.TeacherOutTime, ds.TeacherLateTime, ds.StudentInTime,
		ds.StudentLateMinutes, ds.AutoMarkLate, ds.AutoMarkEarlyLeave, weekends, ds.ID)
	return err
}

// UpsertDeviceStatus records the outcome of a device sync on the singleton
// status row. Visibility only; reconciliation never reads it back.
func UpsertDeviceStatus(db *sql.DB, st *models.DeviceStatus) error {
	var id string
	err := db.QueryRow(`SELECT id FROM device_statuses LIMIT 1`).Scan(&id)
	if err == sql.ErrNoRows {
		_, err = db.Exec(`INSERT INTO device_statuses
			(device_id, device_name, device_ip, serial_number, last_sync_at, last_sync_ok,
			 processed, absent_marked, error_count, message)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			st.DeviceID, st.DeviceName, st.DeviceIP, st.SerialNumber, st.LastSyncAt, st.LastSyncOK,
			st.Processed, st.AbsentMarked, st.ErrorCount, st.Message)
		return err
	}
	if err != nil {
		return err
	}

	_, err = db.Exec(`UPDATE device_statuses
		SET device_id = $1, device_name = $2, device_ip = $3, serial_number = $4, last_sync_at = $5,
		    last_sync_ok = $6, processed = $7, absent_marked = $8, error_count = $9, message = $10,
		    updated_at = NOW()
		WHERE id = $11`,
		st.DeviceID, st.DeviceName, st.DeviceIP, st.SerialNumber, st.LastSyncAt, st.LastSyncOK,
		st.Processed, st.AbsentMarked, st.ErrorCount, st.Message, id)
	return err
}

func GetDeviceStatus(db *sql.DB) (*models.DeviceStatus, error) {
	st := &models.DeviceStatus{}
	query := `SELECT id, COALESCE(device_id, ''), COALESCE(device_name, ''), COALESCE(device_ip, ''),
			  COALESCE(serial_number, ''), last_sync_at, last_sync_ok, processed, absent_marked,
			  error_count, COALESCE(message, ''), updated_at
			  FROM device_statuses LIMIT 1`
	err := db.QueryRow(query).Scan(
		&st.ID, &st.DeviceID, &st.DeviceName, &st.DeviceIP, &st.SerialNumber, &st.LastSyncAt,
		&st.LastSyncOK, &st.Processed, &st.AbsentMarked, &st.ErrorCount, &st.Message, &st.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return st, err
}

func IsHoliday(db *sql.DB, date time.Time) (bool, error) {
	var exists bool
	err := db.QueryRow(`SELECT EXISTS(SELECT 1 FROM holidays WHERE date = $1)`, date).Scan(&exists)
	return exists, err
}

func GetHolidays(db *sql.DB, year int) ([]*models.Holiday, error) {
	query := `SELECT id, name, date, created_at FROM holidays
			  WHERE EXTRACT(YEAR FROM date) = $1 ORDER BY date`

	rows, err := db.Query(query, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	holidays := make([]*models.Holiday, 0)
	for rows.Next() {
		h := &models.Holiday{}
		var d time.Time
		if err := rows.Scan(&h.ID, &h.Name, &d, &h.CreatedAt); err != nil {
			return nil, err
		}
		h.Date = models.CustomDate{Time: d}
		holidays = append(holidays, h)
	}
	return holidays, rows.Err()
}

func CreateHoliday(db *sql.DB, h *models.Holiday) error {
	query := `INSERT INTO holidays (name, date) VALUES ($1, $2)
			  ON CONFLICT (date) DO UPDATE SET name = EXCLUDED.name
			  RETURNING id, created_at`
	return db.QueryRow(query, h.Name, h.Date.Time).Scan(&h.ID, &h.CreatedAt)
}

func DeleteHoliday(db *sql.DB, id string) error {
	_, err := db.Exec(`DELETE FROM holidays WHERE id = $1`, id)
	return err
}
