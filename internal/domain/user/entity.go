package user

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Visibility string

const (
	VisibilityPublic  Visibility = "Public"
	VisibilityPrivate Visibility = "Private"
)

func (v Visibility) Valid() bool {
	return v == VisibilityPublic || v == VisibilityPrivate
}

type User struct {
	ID            uuid.UUID
	Name          string
	Email         string
	Location      string
	SkillsOffered []string
	SkillsWanted  []string
	Availability  string
	Visibility    Visibility
	PhotoURL      string
	Rating        float64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Offers reports whether skill is in the offered list, matching
// case-insensitively, and returns the spelling the user stored.
func (u User) Offers(skill string) (string, bool) {
	skill = strings.TrimSpace(skill)
	if skill == "" {
		return "", false
	}
	for _, s := range u.SkillsOffered {
		if strings.EqualFold(s, skill) {
			return s, true
		}
	}
	return "", false
}

func (u User) IsPublic() bool {
	return u.Visibility == VisibilityPublic
}

// Clone returns a copy that shares no slices with u.
func (u User) Clone() User {
	out := u
	out.SkillsOffered = append([]string(nil), u.SkillsOffered...)
	out.SkillsWanted = append([]string(nil), u.SkillsWanted...)
	return out
}
