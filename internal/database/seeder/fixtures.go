package seeder

import (
	"time"

	"skill-swap/internal/domain/user"

	"github.com/google/uuid"
)

var fixtureTime = time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

// DemoUsers returns the directory fixtures shared by the in-memory store and
// the Postgres seeder. Ids are fixed so dev tokens stay valid across restarts.
func DemoUsers() []user.User {
	users := []user.User{
		{
			ID:            uuid.MustParse("0f8a3b8e-5d1c-4d62-9a57-1c2f1b3a0001"),
			Name:          "Alex Doe",
			Email:         "alex@example.com",
			Location:      "San Francisco, CA",
			SkillsOffered: []string{"Guitar", "JavaScript"},
			SkillsWanted:  []string{"Spanish", "Photography"},
			Availability:  "Weekends",
			Visibility:    user.VisibilityPublic,
			PhotoURL:      "https://placehold.co/100x100.png",
			Rating:        4.8,
		},
		{
			ID:            uuid.MustParse("0f8a3b8e-5d1c-4d62-9a57-1c2f1b3a0002"),
			Name:          "Maria Garcia",
			Email:         "maria@example.com",
			Location:      "Madrid, Spain",
			SkillsOffered: []string{"Spanish", "Cooking"},
			SkillsWanted:  []string{"Guitar", "Yoga"},
			Availability:  "Evenings",
			Visibility:    user.VisibilityPublic,
			PhotoURL:      "https://placehold.co/100x100.png",
			Rating:        4.9,
		},
		{
			ID:            uuid.MustParse("0f8a3b8e-5d1c-4d62-9a57-1c2f1b3a0003"),
			Name:          "Kenji Tanaka",
			Email:         "kenji@example.com",
			Location:      "Tokyo, Japan",
			SkillsOffered: []string{"Photography", "Japanese"},
			SkillsWanted:  []string{"JavaScript"},
			Availability:  "Weekdays",
			Visibility:    user.VisibilityPublic,
			Rating:        4.6,
		},
		{
			ID:            uuid.MustParse("0f8a3b8e-5d1c-4d62-9a57-1c2f1b3a0004"),
			Name:          "Priya Sharma",
			Email:         "priya@example.com",
			Location:      "Bangalore, India",
			SkillsOffered: []string{"Yoga", "Python"},
			SkillsWanted:  []string{"Cooking"},
			Availability:  "Mornings",
			Visibility:    user.VisibilityPrivate,
			Rating:        4.7,
		},
	}
	for i := range users {
		users[i].CreatedAt = fixtureTime.Add(time.Duration(i) * time.Minute)
		users[i].UpdatedAt = users[i].CreatedAt
	}
	return users
}
