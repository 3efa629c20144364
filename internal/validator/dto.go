package validator

// UserRegistrationRequest is the signup view. Status and type supplied by
// the caller are ignored: every new account starts ACTIVE / STUDENT.
type UserRegistrationRequest struct {
	Username    string `json:"username" validate:"required,min=4,max=50,username"`
	Email       string `json:"email" validate:"required,email,max=255"`
	Password    string `json:"password" validate:"required,min=6,max=20"`
	FullName    string `json:"full_name" validate:"omitempty,max=150"`
	PhoneNumber string `json:"phone_number" validate:"omitempty,max=20"`
	TaxID       string `json:"tax_id" validate:"omitempty,max=20"`
}

// UserProfileUpdateRequest is the profile-update view. Username and email
// are immutable after registration and have no place here.
type UserProfileUpdateRequest struct {
	FullName    string `json:"full_name" validate:"omitempty,max=150"`
	PhoneNumber string `json:"phone_number" validate:"omitempty,max=20"`
	TaxID       string `json:"tax_id" validate:"omitempty,max=20"`
}

// UserPasswordUpdateRequest is the password-update view
type UserPasswordUpdateRequest struct {
	OldPassword string `json:"old_password" validate:"required,min=6,max=20"`
	Password    string `json:"password" validate:"required,min=6,max=20"`
}

// UserImageUpdateRequest is the avatar-update view
type UserImageUpdateRequest struct {
	ImageURL string `json:"image_url" validate:"required,url,max=500"`
}
