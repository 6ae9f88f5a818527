// Package seed loads the sample activity board into an empty store.
package seed

import (
	"context"
	"fmt"
	"log"

	"github.com/gdg-garage/school-activities-api/internal/models"
	"gorm.io/gorm"
)

type Activity struct {
	Name            string
	Description     string
	Schedule        string
	MaxParticipants *int
	Participants    []string
}

func capacity(n int) *int { return &n }

var Activities = []Activity{
	{
		Name:            "Chess Club",
		Description:     "Learn strategies and compete in chess tournaments",
		Schedule:        "Fridays, 3:30 PM - 5:00 PM",
		MaxParticipants: capacity(12),
		Participants:    []string{"michael@mergington.edu", "daniel@mergington.edu"},
	},
	{
		Name:            "Programming Class",
		Description:     "Learn programming fundamentals and build software projects",
		Schedule:        "Tuesdays and Thursdays, 3:30 PM - 4:30 PM",
		MaxParticipants: capacity(20),
		Participants:    []string{"emma@mergington.edu", "sophia@mergington.edu"},
	},
	{
		Name:            "Gym Class",
		Description:     "Physical education and sports activities",
		Schedule:        "Mondays, Wednesdays, Fridays, 2:00 PM - 3:00 PM",
		MaxParticipants: capacity(30),
		Participants:    []string{"john@mergington.edu", "olivia@mergington.edu"},
	},
	{
		Name:            "Soccer Team",
		Description:     "Join the school soccer team and compete in matches",
		Schedule:        "Tuesdays and Thursdays, 4:00 PM - 5:30 PM",
		MaxParticipants: capacity(22),
		Participants:    []string{"liam@mergington.edu", "noah@mergington.edu"},
	},
	{
		Name:            "Basketball Team",
		Description:     "Practice and play basketball with the school team",
		Schedule:        "Wednesdays and Fridays, 3:30 PM - 5:00 PM",
		MaxParticipants: capacity(15),
		Participants:    []string{"ava@mergington.edu", "mia@mergington.edu"},
	},
	{
		Name:            "Art Club",
		Description:     "Explore your creativity through painting and drawing",
		Schedule:        "Thursdays, 3:30 PM - 5:00 PM",
		MaxParticipants: capacity(15),
		Participants:    []string{"amelia@mergington.edu", "harper@mergington.edu"},
	},
	{
		Name:            "Drama Club",
		Description:     "Act, direct, and produce plays and performances",
		Schedule:        "Mondays and Wednesdays, 4:00 PM - 5:30 PM",
		MaxParticipants: capacity(20),
		Participants:    []string{"ella@mergington.edu", "scarlett@mergington.edu"},
	},
	{
		Name:            "Math Club",
		Description:     "Solve challenging problems and participate in math competitions",
		Schedule:        "Tuesdays, 3:30 PM - 4:30 PM",
		MaxParticipants: capacity(10),
		Participants:    []string{"james@mergington.edu", "benjamin@mergington.edu"},
	},
	{
		Name:            "Debate Team",
		Description:     "Develop public speaking and argumentation skills",
		Schedule:        "Fridays, 4:00 PM - 5:30 PM",
		MaxParticipants: capacity(12),
		Participants:    []string{"charlotte@mergington.edu", "henry@mergington.edu"},
	},
}

// Run inserts the sample activities when the activity table is empty and
// reports whether it did. A non-empty table is left untouched.
func Run(ctx context.Context, db *gorm.DB) (bool, error) {
	return Load(ctx, db, Activities)
}

func Load(ctx context.Context, db *gorm.DB, activities []Activity) (bool, error) {
	seeded := false
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Activity{}).Count(&count).Error; err != nil {
			return fmt.Errorf("count activities: %w", err)
		}
		if count > 0 {
			return nil
		}

		for _, a := range activities {
			activity := models.Activity{
				Name:            a.Name,
				Description:     a.Description,
				Schedule:        a.Schedule,
				MaxParticipants: a.MaxParticipants,
			}
			for _, email := range a.Participants {
				activity.Participants = append(activity.Participants, models.Participant{Email: email})
			}
			if err := tx.Create(&activity).Error; err != nil {
				return fmt.Errorf("seed %q: %w", a.Name, err)
			}
		}
		seeded = true
		return nil
	})
	if err != nil {
		return false, err
	}

	if seeded {
		log.Printf("Seeded %d activities", len(activities))
	}
	return seeded, nil
}
