package model

import "time"

type User struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Name         string         `gorm:"size:128;not null" json:"name"`
	Email        string         `gorm:"size:128;not null;uniqueIndex" json:"email"`
	Age          int            `gorm:"not null;default:0" json:"age"`
	PasswordHash string         `gorm:"size:255;not null" json:"-"`
	Avatar       []byte         `gorm:"type:mediumblob" json:"-"`
	Tokens       []SessionToken `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// SessionToken is one active login session. A user may hold several at
// once (multi-device); deleting a row revokes that session only.
type SessionToken struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Token     string    `gorm:"size:512;not null" json:"token"`
	CreatedAt time.Time `json:"created_at"`
}

// HasToken reports whether the token string is still active for the
// user. Signature validity alone does not authenticate a request.
func (u *User) HasToken(token string) bool {
	for _, t := range u.Tokens {
		if t.Token == token {
			return true
		}
	}
	return false
}
