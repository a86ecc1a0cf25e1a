package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const DefaultProfileImage = "default/default-user.jpg"

type Profile struct {
	ID        string    `gorm:"type:uuid;primary_key" json:"id"`
	UserID    string    `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	Image     string    `gorm:"type:varchar(255);default:'default/default-user.jpg'" json:"image"`
	FullName  string    `gorm:"type:varchar(100)" json:"full_name"`
	Bio       string    `gorm:"type:text" json:"bio"`
	About     string    `gorm:"type:text" json:"about"`
	Author    bool      `gorm:"default:false" json:"author"`
	Country   string    `gorm:"type:varchar(100)" json:"country"`
	Github    string    `gorm:"type:varchar(100)" json:"github"`
	Instagram string    `gorm:"type:varchar(100)" json:"instagram"`
	CreatedAt time.Time `json:"date"`
	UpdatedAt time.Time `json:"updated_at"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.Image == "" {
		p.Image = DefaultProfileImage
	}
	return nil
}

// FillDefaultsFrom copies the owner's full name when the profile has none.
func (p *Profile) FillDefaultsFrom(owner *User) {
	if p.FullName == "" && owner != nil {
		p.FullName = owner.FullName
	}
}
