package entity

import (
	"time"
)

// User is the aggregate root for the account domain.
// Password holds the bcrypt hash and is never serialized.
// Token fields hold SHA-256 hashes of single-use tokens, never the plain value.
type User struct {
	ID                  string     `json:"id"`
	Name                string     `json:"name"`
	Email               string     `json:"email"`
	Role                Role       `json:"role"`
	Password            string     `json:"-"`
	Avatar              string     `json:"avatar,omitempty"`
	ResetPasswordToken  string     `json:"-"`
	ResetPasswordExpire *time.Time `json:"-"`
	ConfirmEmailToken   string     `json:"-"`
	ConfirmEmailExpire  *time.Time `json:"-"`
	IsEmailConfirmed    bool       `json:"isEmailConfirmed"`
	CreatedAt           time.Time  `json:"createdAt"`
}

func (u *User) Principal() Principal { return Principal{ID: u.ID, Role: u.Role} }

func (u *User) ClearResetToken() {
	u.ResetPasswordToken = ""
	u.ResetPasswordExpire = nil
}

func (u *User) ClearConfirmToken() {
	u.ConfirmEmailToken = ""
	u.ConfirmEmailExpire = nil
}
