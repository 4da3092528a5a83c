package domain

import "time"

type UserStatus string

const (
	UserPending   UserStatus = "pending"
	UserActive    UserStatus = "active"
	UserSuspended UserStatus = "suspended"
)

type User struct {
	ID           string
	Email        string
	Phone        string // optional, unique when set
	FirstName    string
	LastName     string
	PasswordHash string // argon2 encoded
	Status       UserStatus
	CreatedAt    time.Time
	LastLoginAt  *time.Time
	ApprovedBy   string
	ApprovedAt   *time.Time
}

func (u User) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

func (u User) IsActive() bool { return u.Status == UserActive }
