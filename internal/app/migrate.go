package app

import (
	"github.com/tanish1120/hrms-lite-backend/internal/messaging/kafka"

	"gorm.io/gorm"
)

const schema = `
CREATE TABLE IF NOT EXISTS employees (
	id BIGSERIAL PRIMARY KEY,
	employee_id VARCHAR(50) NOT NULL,
	full_name VARCHAR(255) NOT NULL,
	email VARCHAR(255) NOT NULL,
	department VARCHAR(255) NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE UNIQUE INDEX IF NOT EXISTS uq_employees_employee_id ON employees (employee_id);
CREATE UNIQUE INDEX IF NOT EXISTS uq_employees_email ON employees (email);

CREATE TABLE IF NOT EXISTS attendance (
	id BIGSERIAL PRIMARY KEY,
	employee_id BIGINT NOT NULL REFERENCES employees (id) ON DELETE CASCADE,
	date DATE NOT NULL,
	status VARCHAR(20) NOT NULL CHECK (status IN ('Present', 'Absent')),
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_attendance_employee_id ON attendance (employee_id);
CREATE INDEX IF NOT EXISTS idx_attendance_date ON attendance (date);
`

// Migrate creates the tables the API and the outbox worker use. Every
// statement is idempotent.
func Migrate(db *gorm.DB) error {
	if err := db.Exec(schema).Error; err != nil {
		return err
	}
	return db.Exec(kafka.OutboxSchema).Error
}
