package database

import (
	"io"
	"path/filepath"
	"testing"
	"time"

	"gympoint/internal/config"
	"gympoint/internal/model"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestOpenSQLiteMigrates(t *testing.T) {
	cfg := config.DB{Driver: "sqlite", Path: filepath.Join(t.TempDir(), "gym.db")}

	db, err := Open(cfg, quietLogger())
	require.NoError(t, err)

	for _, table := range []interface{}{&model.User{}, &model.Student{}, &model.Plan{}, &model.Enrollment{}, &model.HelpOrder{}} {
		assert.True(t, db.Migrator().HasTable(table))
	}
}

func TestOpenUnknownDriver(t *testing.T) {
	_, err := Open(config.DB{Driver: "oracle"}, quietLogger())
	assert.ErrorContains(t, err, "unsupported database driver")
}

func TestSQLiteDeleteCascades(t *testing.T) {
	db, err := Open(config.DB{Driver: "sqlite", Path: filepath.Join(t.TempDir(), "gym.db")}, quietLogger())
	require.NoError(t, err)

	student := model.Student{Name: "Ana", Email: "ana@x.com", Age: 30, Weight: 60, Height: 1.65}
	require.NoError(t, db.Create(&student).Error)
	plan := model.Plan{Title: "Start", Duration: 1, Price: 129}
	require.NoError(t, db.Create(&plan).Error)
	require.NoError(t, db.Create(&model.HelpOrder{StudentID: student.ID, Question: "Can I train twice a day?"}).Error)
	start := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, db.Create(&model.Enrollment{
		StudentID: student.ID, PlanID: plan.ID, StartDate: start, EndDate: start.AddDate(0, 1, 0), Price: 129,
	}).Error)

	require.NoError(t, db.Delete(&model.Student{}, student.ID).Error)

	var orders, enrollments int64
	require.NoError(t, db.Model(&model.HelpOrder{}).Count(&orders).Error)
	require.NoError(t, db.Model(&model.Enrollment{}).Count(&enrollments).Error)
	assert.Zero(t, orders)
	assert.Zero(t, enrollments)
}

func TestSQLiteDSN(t *testing.T) {
	assert.Equal(t, "gym.db?_foreign_keys=on", sqliteDSN("gym.db"))
	assert.Equal(t, "file:gym.db?cache=shared&_foreign_keys=on", sqliteDSN("file:gym.db?cache=shared"))
}
