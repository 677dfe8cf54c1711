package profile

import (
	"errors"
	"strings"
	"time"
)

const (
	UserTypeListener = "Listener"
	UserTypeArtist   = "Artist"
	UserTypeDJ       = "DJ"
)

const (
	PartyPreferenceHost = "Host"
	PartyPreferenceJoin = "Join"
	PartyPreferenceAll  = "All of the above"
)

// Profile is the onboarding identity record. The id comes from the identity
// provider; everything else is user-editable.
type Profile struct {
	ID              string    `json:"id"`
	Username        string    `json:"username"`
	DisplayName     *string   `json:"displayName,omitempty"`
	Bio             *string   `json:"bio,omitempty"`
	AvatarURL       *string   `json:"avatarUrl,omitempty"`
	UserType        *string   `json:"userType,omitempty"`
	PartyPreference *string   `json:"partyPreference,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// TaxonomyItem is a row of one of the onboarding pick lists (genres, vibes,
// soundscapes).
type TaxonomyItem struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

type Artist struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	ImageURL  *string   `json:"imageUrl,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type UpdateProfileRequest struct {
	Username        *string `json:"username,omitempty"`
	DisplayName     *string `json:"displayName,omitempty"`
	Bio             *string `json:"bio,omitempty"`
	AvatarURL       *string `json:"avatarUrl,omitempty"`
	UserType        *string `json:"userType,omitempty"`
	PartyPreference *string `json:"partyPreference,omitempty"`
}

func (r *UpdateProfileRequest) Validate() error {
	if r.Username != nil {
		name := strings.TrimSpace(*r.Username)
		if len(name) < 3 || len(name) > 30 {
			return errors.New("username must be between 3 and 30 characters")
		}
	}
	if r.Bio != nil && len(*r.Bio) > 500 {
		return errors.New("bio is too long")
	}
	if r.UserType != nil {
		switch *r.UserType {
		case UserTypeListener, UserTypeArtist, UserTypeDJ:
		default:
			return errors.New("unknown user type")
		}
	}
	if r.PartyPreference != nil {
		switch *r.PartyPreference {
		case PartyPreferenceHost, PartyPreferenceJoin, PartyPreferenceAll:
		default:
			return errors.New("unknown party preference")
		}
	}
	return nil
}
