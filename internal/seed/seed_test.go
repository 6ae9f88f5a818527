package seed

import (
	"context"
	"testing"

	"github.com/gdg-garage/school-activities-api/internal/config"
	"github.com/gdg-garage/school-activities-api/internal/database"
	"github.com/gdg-garage/school-activities-api/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func openDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open(&config.Config{DatabaseURL: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { database.Close(db) })
	return db
}

func TestRun_SeedsEmptyStore(t *testing.T) {
	db := openDB(t)

	seeded, err := Run(context.Background(), db)
	require.NoError(t, err)
	require.True(t, seeded)

	var activities []models.Activity
	require.NoError(t, db.Preload("Participants", func(db *gorm.DB) *gorm.DB {
		return db.Order("id")
	}).Order("id").Find(&activities).Error)
	require.Len(t, activities, 9)

	for i, want := range Activities {
		got := activities[i]
		require.Equal(t, want.Name, got.Name)
		require.Equal(t, want.Description, got.Description)
		require.Equal(t, want.Schedule, got.Schedule)
		require.Equal(t, *want.MaxParticipants, *got.MaxParticipants)
		require.Equal(t, want.Participants, got.Emails())
	}
}

func TestRun_Idempotent(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()

	_, err := Run(ctx, db)
	require.NoError(t, err)

	seeded, err := Run(ctx, db)
	require.NoError(t, err)
	require.False(t, seeded)

	var activities, participants int64
	db.Model(&models.Activity{}).Count(&activities)
	db.Model(&models.Participant{}).Count(&participants)
	require.EqualValues(t, 9, activities)
	require.EqualValues(t, 18, participants)
}

func TestRun_SkipsNonEmptyStore(t *testing.T) {
	db := openDB(t)
	require.NoError(t, db.Create(&models.Activity{Name: "Robotics"}).Error)

	seeded, err := Run(context.Background(), db)
	require.NoError(t, err)
	require.False(t, seeded)

	var count int64
	db.Model(&models.Activity{}).Count(&count)
	require.EqualValues(t, 1, count)
}

func TestLoad_RollsBackOnFailure(t *testing.T) {
	db := openDB(t)

	_, err := Load(context.Background(), db, []Activity{
		{Name: "Chess Club"},
		{Name: "Chess Club"},
	})
	require.Error(t, err)

	var count int64
	db.Model(&models.Activity{}).Count(&count)
	require.Zero(t, count)
}
