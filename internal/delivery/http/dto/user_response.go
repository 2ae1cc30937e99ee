package dto

import (
	"time"

	"skill-swap/internal/domain/user"
	ucprofile "skill-swap/internal/usecase/profile"
	ucswap "skill-swap/internal/usecase/swap"

	"github.com/google/uuid"
)

type UserResponse struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email,omitempty"`
	Location      string    `json:"location"`
	SkillsOffered []string  `json:"skills_offered"`
	SkillsWanted  []string  `json:"skills_wanted"`
	Availability  string    `json:"availability"`
	Visibility    string    `json:"visibility"`
	PhotoURL      string    `json:"photo_url"`
	Rating        float64   `json:"rating"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type RatingSummaryResponse struct {
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

type ProfileResponse struct {
	User   UserResponse          `json:"user"`
	Rating RatingSummaryResponse `json:"rating_summary"`
}

type SkillSuggestionsResponse struct {
	Skills []string `json:"skills"`
}

// NewUserResponse renders u. Email is only included for the owner.
func NewUserResponse(u user.User, withEmail bool) UserResponse {
	res := UserResponse{
		ID:            u.ID,
		Name:          u.Name,
		Location:      u.Location,
		SkillsOffered: nonNil(u.SkillsOffered),
		SkillsWanted:  nonNil(u.SkillsWanted),
		Availability:  u.Availability,
		Visibility:    string(u.Visibility),
		PhotoURL:      u.PhotoURL,
		Rating:        u.Rating,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
	if withEmail {
		res.Email = u.Email
	}
	return res
}

func NewUserListResponse(users []user.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, NewUserResponse(u, false))
	}
	return out
}

func NewProfileResponse(p ucprofile.Profile, withEmail bool) ProfileResponse {
	return ProfileResponse{
		User:   NewUserResponse(p.User, withEmail),
		Rating: NewRatingSummaryResponse(p.Rating),
	}
}

func NewRatingSummaryResponse(s ucswap.RatingSummary) RatingSummaryResponse {
	return RatingSummaryResponse{Average: s.Average, Count: s.Count}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
