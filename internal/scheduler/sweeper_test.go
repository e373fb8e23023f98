package scheduler

import (
	"testing"
	"time"

	"healthcard-backend/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1) // every query must see the same in-memory DB

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Appointment{}))
	return db
}

func seedAppointment(t *testing.T, db *gorm.DB, status string, date time.Time) uint64 {
	t.Helper()

	a := models.Appointment{
		PatientID:       1,
		DoctorID:        2,
		AppointmentDate: date,
		AppointmentTime: "10:00",
		Status:          status,
	}
	require.NoError(t, db.Create(&a).Error)
	return a.ID
}

func statusOf(t *testing.T, db *gorm.DB, id uint64) string {
	t.Helper()

	var a models.Appointment
	require.NoError(t, db.First(&a, id).Error)
	return a.Status
}

func TestSweepOnlyCompletesPastScheduled(t *testing.T) {
	db := newTestDB(t)
	now := time.Now()
	yesterday := now.AddDate(0, 0, -1)
	tomorrow := now.AddDate(0, 0, 1)

	pastScheduled := seedAppointment(t, db, models.AppointmentScheduled, yesterday)
	futureScheduled := seedAppointment(t, db, models.AppointmentScheduled, tomorrow)
	pastPending := seedAppointment(t, db, models.AppointmentPending, yesterday)
	pastCancelled := seedAppointment(t, db, models.AppointmentCancelled, yesterday)
	pastCompleted := seedAppointment(t, db, models.AppointmentCompleted, yesterday)

	s := NewSweeper(db, time.Minute)
	count, err := s.Sweep(now)
	require.NoError(t, err)
	require.EqualValues(t, 1, count)

	require.Equal(t, models.AppointmentCompleted, statusOf(t, db, pastScheduled))
	require.Equal(t, models.AppointmentScheduled, statusOf(t, db, futureScheduled))
	// Pending is never auto-advanced, no matter how old.
	require.Equal(t, models.AppointmentPending, statusOf(t, db, pastPending))
	require.Equal(t, models.AppointmentCancelled, statusOf(t, db, pastCancelled))
	require.Equal(t, models.AppointmentCompleted, statusOf(t, db, pastCompleted))
}

func TestSweepIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	now := time.Now()

	seedAppointment(t, db, models.AppointmentScheduled, now.AddDate(0, 0, -2))
	seedAppointment(t, db, models.AppointmentScheduled, now.AddDate(0, 0, -1))

	s := NewSweeper(db, time.Minute)

	count, err := s.Sweep(now)
	require.NoError(t, err)
	require.EqualValues(t, 2, count)

	count, err = s.Sweep(now)
	require.NoError(t, err)
	require.EqualValues(t, 0, count)
}

func TestSweepPicksUpNewlyScheduled(t *testing.T) {
	db := newTestDB(t)
	now := time.Now()

	// Created pending with a past date: untouched until someone schedules it.
	id := seedAppointment(t, db, models.AppointmentPending, now.AddDate(0, 0, -1))

	s := NewSweeper(db, time.Minute)

	count, err := s.Sweep(now)
	require.NoError(t, err)
	require.EqualValues(t, 0, count)

	require.NoError(t, db.Model(&models.Appointment{}).Where("id = ?", id).
		Update("status", models.AppointmentScheduled).Error)

	count, err = s.Sweep(now)
	require.NoError(t, err)
	require.EqualValues(t, 1, count)
	require.Equal(t, models.AppointmentCompleted, statusOf(t, db, id))
}
