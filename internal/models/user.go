package models

type User struct {
	ID                 string  `json:"userId"`
	Email              string  `json:"email"`
	Password           string  `json:"-"`
	FirstName          string  `json:"firstName"`
	LastName           string  `json:"lastName"`
	Role               string  `json:"role,omitempty"`
	AccountStatus      string  `json:"accountStatus,omitempty"`
	BusinessID         *string `json:"businessId,omitempty"`
	RefreshToken       string  `json:"-"`
	RefreshTokenExpiry string  `json:"-"`
	ImageFilename      string  `json:"-"`
	CreatedAt          int64   `json:"createdAt,omitempty"`
}
