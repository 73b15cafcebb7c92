package domain

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
	"unicode"
)

// DefaultDisplayName is given to profiles created on first sign-in.
const DefaultDisplayName = "New User"

// Profile is the display information kept on a user document.
type Profile struct {
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name,omitempty"`
	Username    string `json:"username,omitempty"`
	PhotoURL    string `json:"photo_url,omitempty"`
}

// ProfileFromDocument extracts profile fields. Missing fields stay empty.
func ProfileFromDocument(doc *UserDocument) Profile {
	if doc == nil {
		return Profile{}
	}
	p := Profile{UserID: doc.UserID}
	p.DisplayName, _ = doc.String(DisplayNameField)
	p.Username, _ = doc.String(UsernameField)
	p.PhotoURL, _ = doc.String(PhotoURLField)
	return p
}

// IsProfileField reports whether field is one of the editable profile fields.
func IsProfileField(field string) bool {
	switch field {
	case DisplayNameField, UsernameField, PhotoURLField:
		return true
	default:
		return false
	}
}

// ValidateProfileField rejects every field that is not a profile field,
// the favourites list included.
func ValidateProfileField(field string) error {
	if !IsProfileField(field) {
		return fmt.Errorf("%w: %q is not a profile field", ErrInvalidInput, field)
	}
	return nil
}

// ProfileUpdate lists the profile fields to change. Nil fields are left alone.
type ProfileUpdate struct {
	DisplayName *string
	Username    *string
	PhotoURL    *string
}

// Normalize trims surrounding whitespace from every set field.
func (u ProfileUpdate) Normalize() ProfileUpdate {
	trim := func(s *string) *string {
		if s == nil {
			return nil
		}
		v := strings.TrimSpace(*s)
		return &v
	}
	return ProfileUpdate{
		DisplayName: trim(u.DisplayName),
		Username:    trim(u.Username),
		PhotoURL:    trim(u.PhotoURL),
	}
}

// Validate checks a normalized update.
// Names must be non-empty and usernames hold no whitespace. An empty photo
// URL clears the photo; otherwise it must be an absolute http(s) URL.
func (u ProfileUpdate) Validate() error {
	if u.DisplayName == nil && u.Username == nil && u.PhotoURL == nil {
		return fmt.Errorf("%w: nothing to update", ErrInvalidInput)
	}
	if u.DisplayName != nil && *u.DisplayName == "" {
		return fmt.Errorf("%w: display name is empty", ErrInvalidInput)
	}
	if u.Username != nil {
		if *u.Username == "" {
			return fmt.Errorf("%w: username is empty", ErrInvalidInput)
		}
		if strings.IndexFunc(*u.Username, unicode.IsSpace) >= 0 {
			return fmt.Errorf("%w: username %q contains whitespace", ErrInvalidInput, *u.Username)
		}
	}
	if u.PhotoURL != nil && *u.PhotoURL != "" {
		parsed, err := url.Parse(*u.PhotoURL)
		if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
			return fmt.Errorf("%w: photo URL %q must be an http(s) URL", ErrInvalidInput, *u.PhotoURL)
		}
	}
	return nil
}

// Fields returns the set fields keyed by document field name.
func (u ProfileUpdate) Fields() map[string]string {
	fields := make(map[string]string, 3)
	if u.DisplayName != nil {
		fields[DisplayNameField] = *u.DisplayName
	}
	if u.Username != nil {
		fields[UsernameField] = *u.Username
	}
	if u.PhotoURL != nil {
		fields[PhotoURLField] = *u.PhotoURL
	}
	return fields
}

// FieldNames returns the set field names in sorted order.
func (u ProfileUpdate) FieldNames() []string {
	fields := u.Fields()
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
