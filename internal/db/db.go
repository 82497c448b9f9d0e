package db

import (
	"time"

	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/medagenda/clinic-scheduler/internal/config"
	"github.com/medagenda/clinic-scheduler/internal/models"
)

func NewDB(cfg *config.Config, log zerolog.Logger) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to get sql.DB")
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.Staff{},
		&models.Client{},
		&models.Room{},
		&models.Service{},
		&models.RecurrencePattern{},
		&models.Appointment{},
		&models.WorkingHours{},
		&models.Reminder{},
		&models.AuditLog{},
	); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate")
	}

	// The in-engine conflict detector is the fast path with friendly
	// suggestions; these exclusion constraints are the correctness
	// backstop when two bookings race.
	db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`)
	db.Exec(`
        DO $$ BEGIN
            ALTER TABLE appointments
                ADD CONSTRAINT appointments_staff_no_overlap
                EXCLUDE USING gist (
                    staff_id WITH =,
                    tsrange(start_time, end_time) WITH &&
                ) WHERE (status <> 'cancelled');
        EXCEPTION WHEN duplicate_table OR duplicate_object THEN NULL;
        END $$
    `)
	db.Exec(`
        DO $$ BEGIN
            ALTER TABLE appointments
                ADD CONSTRAINT appointments_room_no_overlap
                EXCLUDE USING gist (
                    room_id WITH =,
                    tsrange(start_time, end_time) WITH &&
                ) WHERE (status <> 'cancelled' AND room_id IS NOT NULL);
        EXCEPTION WHEN duplicate_table OR duplicate_object THEN NULL;
        END $$
    `)

	return db
}
