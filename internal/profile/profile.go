// Package profile provides the signed-in user's profile record.
package profile

// Gender is one of the two genders offered by the forms.
type Gender string

const (
	Male   Gender = "male"
	Female Gender = "female"
)

// IsValid checks if a gender is recognized.
func (g Gender) IsValid() bool {
	return g == Male || g == Female
}

// Label returns the text shown on the gender button.
func (g Gender) Label() string {
	switch g {
	case Male:
		return "男"
	case Female:
		return "女"
	default:
		return string(g)
	}
}

// Avatars are the glyphs a user can pick as avatar.
var Avatars = []string{"👨", "👩", "👦", "👧", "🧑", "👴", "👵", "🧔", "👨‍💼", "👩‍💼", "👨‍🎓", "👩‍🎓"}

// IsAvatar checks if s is one of the offered avatars.
func IsAvatar(s string) bool {
	for _, a := range Avatars {
		if a == s {
			return true
		}
	}
	return false
}

// UserProfile is the profile shown on the profile screens.
type UserProfile struct {
	Username string `json:"username"`
	Gender   Gender `json:"gender"`
	Phone    string `json:"phone"`
	Avatar   string `json:"avatar"`
}

// Default returns the profile a new session starts with.
func Default() UserProfile {
	return UserProfile{
		Username: "查理苏",
		Gender:   Male,
		Phone:    "138****5678",
		Avatar:   "👨",
	}
}
