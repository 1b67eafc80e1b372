package models

type User struct {
	ID              string    `json:"id"`
	FullName        string    `json:"fullname"`
	Email           string    `json:"email"`
	Mobile          string    `json:"mobile"`
	ProfileImage    string    `json:"profile_image,omitempty"`
	IsProfileUpdate bool      `json:"is_profile_update"`
	Addresses       []Address `json:"addresses"`
}

// ProfileUpdate is the body of update-profile; nil fields are left untouched.
type ProfileUpdate struct {
	FullName *string `json:"fullname,omitempty"`
	Email    *string `json:"email,omitempty"`
}

// OTPGrant is what verify-otp hands back on success.
type OTPGrant struct {
	Token           string `json:"token"`
	IsProfileUpdate bool   `json:"is_profile_update"`
}
