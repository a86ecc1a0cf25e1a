package entity

import "time"

const (
	RoleUser   = "user"
	RoleAuthor = "author"
)

type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	FullName     string    `json:"full_name"`
	PasswordHash string    `json:"-"`
	OTP          string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type Profile struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Image     string    `json:"image"`
	FullName  string    `json:"full_name"`
	Bio       string    `json:"bio"`
	About     string    `json:"about"`
	Author    bool      `json:"author"`
	Country   string    `json:"country"`
	Github    string    `json:"github"`
	Instagram string    `json:"instagram"`
	CreatedAt time.Time `json:"date"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Role is the token role granted to the profile owner.
func (p *Profile) Role() string {
	if p != nil && p.Author {
		return RoleAuthor
	}
	return RoleUser
}
