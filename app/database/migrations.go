package database

import (
	"database/sql"
	"log"
)

// RunMigrations creates or patches the schema. Every statement is idempotent
// so the runner is safe to execute on every startup.
func RunMigrations(db *sql.DB) error {
	log.Println("Running database migrations...")

	statements := []string{
		`CREATE EXTENSION IF NOT EXISTS pgcrypto`,

		`CREATE TABLE IF NOT EXISTS roles (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name VARCHAR(50) UNIQUE NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			email VARCHAR(255) UNIQUE NOT NULL,
			password VARCHAR(255) NOT NULL,
			first_name VARCHAR(100) NOT NULL,
			last_name VARCHAR(100) NOT NULL,
			phone VARCHAR(20),
			is_active BOOLEAN DEFAULT true,
			created_at TIMESTAMPTZ DEFAULT NOW(),
			updated_at TIMESTAMPTZ DEFAULT NOW(),
			deleted_at TIMESTAMPTZ
		)`,

		`CREATE TABLE IF NOT EXISTS user_roles (
			user_id UUID NOT NULL REFERENCES users(id),
			role_id UUID NOT NULL REFERENCES roles(id),
			PRIMARY KEY (user_id, role_id)
		)`,

		`CREATE TABLE IF NOT EXISTS academic_years (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name VARCHAR(20) UNIQUE NOT NULL,
			start_date DATE NOT NULL,
			end_date DATE NOT NULL,
			is_current BOOLEAN DEFAULT false,
			is_active BOOLEAN DEFAULT true,
			created_at TIMESTAMPTZ DEFAULT NOW(),
			updated_at TIMESTAMPTZ DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS subjects (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name VARCHAR(100) UNIQUE NOT NULL,
			code VARCHAR(20) UNIQUE NOT NULL,
			is_active BOOLEAN DEFAULT true,
			created_at TIMESTAMPTZ DEFAULT NOW(),
			updated_at TIMESTAMPTZ DEFAULT NOW(),
			deleted_at TIMESTAMPTZ
		)`,

		`CREATE TABLE IF NOT EXISTS teachers (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			user_id UUID REFERENCES users(id),
			employee_id VARCHAR(50) UNIQUE NOT NULL,
			first_name VARCHAR(100) NOT NULL,
			last_name VARCHAR(100) NOT NULL,
			phone VARCHAR(20),
			subject_id UUID REFERENCES subjects(id),
			join_date DATE,
			is_active BOOLEAN DEFAULT true,
			created_at TIMESTAMPTZ DEFAULT NOW(),
			updated_at TIMESTAMPTZ DEFAULT NOW(),
			deleted_at TIMESTAMPTZ
		)`,

		`CREATE TABLE IF NOT EXISTS classes (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name VARCHAR(100) UNIQUE NOT NULL,
			code VARCHAR(20) UNIQUE NOT NULL,
			teacher_id UUID REFERENCES teachers(id),
			is_active BOOLEAN DEFAULT true,
			created_at TIMESTAMPTZ DEFAULT NOW(),
			updated_at TIMESTAMPTZ DEFAULT NOW(),
			deleted_at TIMESTAMPTZ
		)`,

		`CREATE TABLE IF NOT EXISTS sections (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			class_id UUID NOT NULL REFERENCES classes(id),
			name VARCHAR(20) NOT NULL,
			capacity INT DEFAULT 40,
			is_active BOOLEAN DEFAULT true,
			created_at TIMESTAMPTZ DEFAULT NOW(),
			updated_at TIMESTAMPTZ DEFAULT NOW(),
			UNIQUE (class_id, name)
		)`,

		`CREATE TABLE IF NOT EXISTS students (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			admission_no VARCHAR(50) UNIQUE NOT NULL,
			roll_no INT,
			first_name VARCHAR(100) NOT NULL,
			last_name VARCHAR(100) NOT NULL,
			gender VARCHAR(10),
			date_of_birth DATE,
			class_id UUID REFERENCES classes(id),
			section_id UUID REFERENCES sections(id),
			academic_year_id UUID REFERENCES academic_years(id),
			guardian_name VARCHAR(200),
			guardian_phone VARCHAR(20),
			admission_date DATE,
			is_active BOOLEAN DEFAULT true,
			created_at TIMESTAMPTZ DEFAULT NOW(),
			updated_at TIMESTAMPTZ DEFAULT NOW(),
			deleted_at TIMESTAMPTZ
		)`,

		`CREATE TABLE IF NOT EXISTS teacher_attendances (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			teacher_id UUID NOT NULL REFERENCES teachers(id),
			date DATE NOT NULL,
			status VARCHAR(20) NOT NULL DEFAULT 'present',
			in_time TIMESTAMPTZ,
			out_time TIMESTAMPTZ,
			last_punch_time TIMESTAMPTZ,
			punch_state INT,
			punch_type VARCHAR(30),
			device_serial VARCHAR(64),
			marked_by VARCHAR(64) DEFAULT 'system',
			remarks TEXT,
			created_at TIMESTAMPTZ DEFAULT NOW(),
			updated_at TIMESTAMPTZ DEFAULT NOW(),
			UNIQUE (teacher_id, date)
		)`,

		`CREATE TABLE IF NOT EXISTS student_attendances (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			student_id UUID NOT NULL REFERENCES students(id),
			academic_year_id UUID REFERENCES academic_years(id),
			date DATE NOT NULL,
			status VARCHAR(20) NOT NULL DEFAULT 'present',
			in_time TIMESTAMPTZ,
			out_time TIMESTAMPTZ,
			last_punch_time TIMESTAMPTZ,
			punch_state INT,
			punch_type VARCHAR(30),
			device_serial VARCHAR(64),
			marked_by VARCHAR(64) DEFAULT 'system',
			remarks TEXT,
			created_at TIMESTAMPTZ DEFAULT NOW(),
			updated_at TIMESTAMPTZ DEFAULT NOW(),
			UNIQUE (student_id, date)
		)`,

		`CREATE TABLE IF NOT EXISTS fee_types (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name VARCHAR(100) UNIQUE NOT NULL,
			code VARCHAR(20) UNIQUE NOT NULL,
			description TEXT,
			is_active BOOLEAN DEFAULT true,
			created_at TIMESTAMPTZ DEFAULT NOW(),
			updated_at TIMESTAMPTZ DEFAULT NOW(),
			deleted_at TIMESTAMPTZ
		)`,

		`CREATE TABLE IF NOT EXISTS fee_structures (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			fee_type_id UUID NOT NULL REFERENCES fee_types(id),
			class_id UUID NOT NULL REFERENCES classes(id),
			academic_year_id UUID NOT NULL REFERENCES academic_years(id),
			amount NUMERIC(12,2) NOT NULL,
			frequency VARCHAR(20) NOT NULL DEFAULT 'monthly',
			due_date DATE,
			late_fee NUMERIC(12,2) DEFAULT 0,
			late_fee_days INT DEFAULT 0,
			is_active BOOLEAN DEFAULT true,
			created_at TIMESTAMPTZ DEFAULT NOW(),
			updated_at TIMESTAMPTZ DEFAULT NOW(),
			deleted_at TIMESTAMPTZ,
			UNIQUE (fee_type_id, class_id, academic_year_id)
		)`,

		`CREATE TABLE IF NOT EXISTS fee_collections (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			student_id UUID NOT NULL REFERENCES students(id),
			fee_type_id UUID NOT NULL REFERENCES fee_types(id),
			academic_year_id UUID REFERENCES academic_years(id),
			month INT NOT NULL DEFAULT 0,
			year INT NOT NULL,
			amount NUMERIC(12,2) NOT NULL,
			discount NUMERIC(12,2) DEFAULT 0,
			late_fee NUMERIC(12,2) DEFAULT 0,
			total_amount NUMERIC(12,2) NOT NULL,
			paid_amount NUMERIC(12,2) DEFAULT 0,
			status VARCHAR(10) NOT NULL DEFAULT 'pending',
			receipt_no VARCHAR(30) UNIQUE NOT NULL,
			due_date DATE,
			payment_date DATE,
			created_at TIMESTAMPTZ DEFAULT NOW(),
			updated_at TIMESTAMPTZ DEFAULT NOW(),
			UNIQUE (student_id, fee_type_id, month, year)
		)`,

		`CREATE TABLE IF NOT EXISTS device_settings (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			teacher_in_time VARCHAR(5) DEFAULT '09:00',
			teacher_out_time VARCHAR(5) DEFAULT '16:00',
			teacher_late_time VARCHAR(5) DEFAULT '09:00',
			student_in_time VARCHAR(5) DEFAULT '08:00',
			student_late_minutes INT DEFAULT 15,
			auto_mark_late BOOLEAN DEFAULT true,
			auto_mark_early_leave BOOLEAN DEFAULT true,
			weekend_days INTEGER[] DEFAULT '{0,6}',
			created_at TIMESTAMPTZ DEFAULT NOW(),
			updated_at TIMESTAMPTZ DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS device_statuses (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			device_id VARCHAR(64),
			device_name VARCHAR(100),
			device_ip VARCHAR(45),
			serial_number VARCHAR(64),
			last_sync_at TIMESTAMPTZ,
			last_sync_ok BOOLEAN DEFAULT false,
			processed INT DEFAULT 0,
			absent_marked INT DEFAULT 0,
			error_count INT DEFAULT 0,
			message TEXT,
			updated_at TIMESTAMPTZ DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS holidays (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name VARCHAR(200) NOT NULL,
			date DATE UNIQUE NOT NULL,
			created_at TIMESTAMPTZ DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS notices (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			title VARCHAR(255) NOT NULL,
			body TEXT NOT NULL,
			audience VARCHAR(20) DEFAULT 'all',
			published_at DATE DEFAULT CURRENT_DATE,
			expires_at DATE,
			created_by UUID,
			is_active BOOLEAN DEFAULT true,
			created_at TIMESTAMPTZ DEFAULT NOW(),
			updated_at TIMESTAMPTZ DEFAULT NOW()
		)`,

		`CREATE INDEX IF NOT EXISTS idx_students_class ON students(class_id)`,
		`CREATE INDEX IF NOT EXISTS idx_teacher_attendances_date ON teacher_attendances(date)`,
		`CREATE INDEX IF NOT EXISTS idx_student_attendances_date ON student_attendances(date)`,
		`CREATE INDEX IF NOT EXISTS idx_fee_collections_status ON fee_collections(status)`,
		`CREATE INDEX IF NOT EXISTS idx_fee_collections_student ON fee_collections(student_id)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			log.Printf("Migration failed: %v", err)
			return err
		}
	}

	if err := seedRoles(db); err != nil {
		return err
	}

	log.Println("Database migrations completed successfully")
	return nil
}

func seedRoles(db *sql.DB) error {
	_, err := db.Exec(`INSERT INTO roles (name)
		VALUES ('admin'), ('head_teacher'), ('teacher'), ('student'), ('parent')
		ON CONFLICT (name) DO NOTHING`)
	if err != nil {
		log.Printf("Failed to seed roles: %v", err)
	}
	return err
}
