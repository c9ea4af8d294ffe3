package domain

import (
	"context"
	"time"
)

type User struct {
	ID        int64        `json:"id"`
	Name      string       `json:"name"`
	Email     string       `json:"email"`
	Phone     *string      `json:"phone,omitempty"`
	Location  *string      `json:"location,omitempty"`
	Bio       *string      `json:"bio,omitempty"`
	Settings  UserSettings `json:"settings"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// Public strips contact details the user chose to hide
func (u User) Public() User {
	if !u.Settings.Privacy.ShowPhone {
		u.Phone = nil
	}
	if !u.Settings.Privacy.ShowEmail {
		u.Email = ""
	}
	return u
}

// Column limits of the editable profile fields
const (
	MaxPhoneLength     = 20
	MaxProfileLocation = 255
	MaxBioLength       = 1000
)

// ProfileUpdate edits the caller's profile. Name is left alone when absent;
// phone, location and bio may be cleared with an explicit null.
// Email belongs to the identity provider and is not editable here.
type ProfileUpdate struct {
	Name     *string        `json:"name" binding:"omitempty,min=1,max=255,no_emoji"`
	Phone    OptionalString `json:"phone"`
	Location OptionalString `json:"location"`
	Bio      OptionalString `json:"bio"`
}

type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*User, error)
	UpdateProfile(ctx context.Context, user *User) error
	UpdateSettings(ctx context.Context, id int64, settings UserSettings) error
}

type UserUsecase interface {
	GetCurrentUser(ctx context.Context, actor Actor) (*User, error)
	UpdateProfile(ctx context.Context, actor Actor, update ProfileUpdate) (*User, error)
	GetSettings(ctx context.Context, actor Actor) (*UserSettings, error)
	UpdateSettings(ctx context.Context, actor Actor, update SettingsUpdate) (*UserSettings, error)
}
