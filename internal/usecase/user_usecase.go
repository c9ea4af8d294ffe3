package usecase

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/JawherBalti/HiredIn-Back/internal/domain"
)

type userUsecase struct {
	users domain.UserRepository
}

func NewUserUsecase(users domain.UserRepository) domain.UserUsecase {
	return &userUsecase{users: users}
}

func (uc *userUsecase) GetCurrentUser(ctx context.Context, actor domain.Actor) (*domain.User, error) {
	user, err := uc.users.GetByID(ctx, actor.UserID)
	if err != nil {
		return nil, fail(err, "User not found")
	}
	return user, nil
}

// UpdateProfile applies the fields present in update
func (uc *userUsecase) UpdateProfile(ctx context.Context, actor domain.Actor, update domain.ProfileUpdate) (*domain.User, error) {
	limits := []struct {
		field string
		value domain.OptionalString
		max   int
	}{
		{"phone", update.Phone, domain.MaxPhoneLength},
		{"location", update.Location, domain.MaxProfileLocation},
		{"bio", update.Bio, domain.MaxBioLength},
	}
	for _, l := range limits {
		if l.value.Set && l.value.Value != nil && utf8.RuneCountInString(*l.value.Value) > l.max {
			return nil, invalid(fmt.Sprintf("The %s must not be longer than %d characters.", l.field, l.max))
		}
	}

	user, err := uc.GetCurrentUser(ctx, actor)
	if err != nil {
		return nil, err
	}
	if update.Name != nil {
		user.Name = strings.TrimSpace(*update.Name)
		if user.Name == "" {
			return nil, invalid("The name field is required.")
		}
	}
	if update.Phone.Set {
		user.Phone = update.Phone.Value
	}
	if update.Location.Set {
		user.Location = update.Location.Value
	}
	if update.Bio.Set {
		user.Bio = update.Bio.Value
	}

	if err := uc.users.UpdateProfile(ctx, user); err != nil {
		return nil, fail(err, "User not found")
	}
	return user, nil
}

func (uc *userUsecase) GetSettings(ctx context.Context, actor domain.Actor) (*domain.UserSettings, error) {
	user, err := uc.GetCurrentUser(ctx, actor)
	if err != nil {
		return nil, err
	}
	return &user.Settings, nil
}

// UpdateSettings replaces the sections present in update and keeps the rest
func (uc *userUsecase) UpdateSettings(ctx context.Context, actor domain.Actor, update domain.SettingsUpdate) (*domain.UserSettings, error) {
	user, err := uc.GetCurrentUser(ctx, actor)
	if err != nil {
		return nil, err
	}
	settings := update.Apply(user.Settings)
	if settings.Preferences.SalaryRange.Max < settings.Preferences.SalaryRange.Min {
		return nil, invalid("The maximum salary must be greater than or equal to the minimum salary.")
	}
	if err := uc.users.UpdateSettings(ctx, actor.UserID, settings); err != nil {
		return nil, fail(err, "User not found")
	}
	return &settings, nil
}
