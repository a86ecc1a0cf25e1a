package models

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrInvalidEmail = errors.New("email must contain '@'")

type User struct {
	ID        string    `gorm:"type:uuid;primary_key" json:"id"`
	Email     string    `gorm:"type:varchar(254);uniqueIndex;not null" json:"email"`
	Username  string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"username"`
	FullName  string    `gorm:"type:varchar(100)" json:"full_name"`
	Password  string    `gorm:"type:varchar(128);not null" json:"-"`
	OTP       string    `gorm:"column:otp;type:varchar(100)" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return nil
}

// BeforeSave fills username and full name from the email local part when unset.
// Partial updates through an empty model are left alone.
func (u *User) BeforeSave(tx *gorm.DB) error {
	if u.Email == "" && u.ID != "" {
		return nil
	}
	return u.ApplyDefaults()
}

func (u *User) ApplyDefaults() error {
	local, err := EmailLocalPart(u.Email)
	if err != nil {
		return err
	}
	if u.Username == "" {
		u.Username = local
	}
	if u.FullName == "" {
		u.FullName = local
	}
	return nil
}

func EmailLocalPart(email string) (string, error) {
	local, _, found := strings.Cut(email, "@")
	if !found || local == "" {
		return "", ErrInvalidEmail
	}
	return local, nil
}
