package usecase

import (
	"context"

	"skill-swap/internal/domain/user"
	ucprofile "skill-swap/internal/usecase/profile"

	"github.com/google/uuid"
)

type ProfileUsecase interface {
	GetUser(ctx context.Context, id uuid.UUID) (user.User, error)
	ListPublicUsers(ctx context.Context) ([]user.User, error)
	PublicProfile(ctx context.Context, id, viewerID uuid.UUID) (ucprofile.Profile, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, in ucprofile.UpdateProfileInput) (user.User, error)
	SuggestSkills(ctx context.Context, userID uuid.UUID, prompt string) ([]string, error)
}

var _ ProfileUsecase = (*ucprofile.Service)(nil)
