// Package store holds the queries behind the activity board.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/gdg-garage/school-activities-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrActivityNotFound = errors.New("activity not found")
	ErrAlreadySignedUp  = errors.New("student is already signed up")
	ErrActivityFull     = errors.New("activity is full")
	ErrNotSignedUp      = errors.New("student is not signed up for this activity")
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// ListActivities returns every activity with its participants, both ordered by id.
func (s *Store) ListActivities(ctx context.Context) ([]models.Activity, error) {
	var activities []models.Activity
	err := s.db.WithContext(ctx).
		Preload("Participants", func(db *gorm.DB) *gorm.DB {
			return db.Order("id")
		}).
		Order("id").
		Find(&activities).Error
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	return activities, nil
}

// SignUp adds email to the named activity. The lookup, the duplicate and
// capacity checks and the insert share one transaction, and the activity row
// is locked for its duration where the driver supports it.
func (s *Store) SignUp(ctx context.Context, activityName, email string) (*models.Participant, error) {
	var participant models.Participant
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		activity, err := findActivity(tx.Clauses(clause.Locking{Strength: "UPDATE"}), activityName)
		if err != nil {
			return err
		}

		var existing int64
		if err := tx.Model(&models.Participant{}).
			Where("activity_id = ? AND email = ?", activity.ID, email).
			Count(&existing).Error; err != nil {
			return fmt.Errorf("check existing participant: %w", err)
		}
		if existing > 0 {
			return ErrAlreadySignedUp
		}

		if activity.MaxParticipants != nil {
			count, err := countParticipants(tx, activity.ID)
			if err != nil {
				return err
			}
			if count >= int64(*activity.MaxParticipants) {
				return ErrActivityFull
			}
		}

		participant = models.Participant{ActivityID: activity.ID, Email: email}
		if err := tx.Create(&participant).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrAlreadySignedUp
			}
			return fmt.Errorf("insert participant: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &participant, nil
}

// Unregister removes the (activity, email) row and nothing else.
func (s *Store) Unregister(ctx context.Context, activityName, email string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		activity, err := findActivity(tx, activityName)
		if err != nil {
			return err
		}

		res := tx.Where("activity_id = ? AND email = ?", activity.ID, email).Delete(&models.Participant{})
		if res.Error != nil {
			return fmt.Errorf("delete participant: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNotSignedUp
		}
		return nil
	})
}

func findActivity(db *gorm.DB, name string) (*models.Activity, error) {
	var activity models.Activity
	if err := db.Where("name = ?", name).First(&activity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrActivityNotFound
		}
		return nil, fmt.Errorf("find activity: %w", err)
	}
	return &activity, nil
}

func countParticipants(db *gorm.DB, activityID uint) (int64, error) {
	var count int64
	if err := db.Model(&models.Participant{}).Where("activity_id = ?", activityID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count participants: %w", err)
	}
	return count, nil
}
