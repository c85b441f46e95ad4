package domain

import (
	"strings"

	"gopkg.in/guregu/null.v4"
)

// User mirrors the record served from /users. Password is client-visible in
// this store and is compared verbatim at login.
type User struct {
	ID        ID          `json:"id"`
	Email     string      `json:"email"`
	Password  string      `json:"password,omitempty"`
	FirstName string      `json:"firstName"`
	LastName  string      `json:"lastName"`
	Role      null.String `json:"role"`
	AvatarURL string      `json:"avatarUrl"`
	Location  null.String `json:"location"`
	CreatedAt null.String `json:"createdAt"`
	UpdatedAt null.String `json:"updatedAt"`
}

func (u User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

type LoginUserDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
