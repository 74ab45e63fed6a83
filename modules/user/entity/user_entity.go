package entity

import (
	"dingdong-api/core/entity"
)

// User is a registered account. Password is empty for oauth-only accounts.
type User struct {
	ID           int64   `db:"id" json:"id"`
	Email        string  `db:"email" json:"email"`
	Password     string  `db:"password" json:"-"`
	Username     string  `db:"username" json:"username"`
	PhoneNum     *string `db:"phone_num" json:"phone_num,omitempty"`
	ProfileColor string  `db:"profile_color" json:"profile_color"`
	IsAdmin      bool    `db:"is_admin" json:"is_admin"`
	IsDeleted    bool    `db:"is_deleted" json:"-"`
	entity.BaseEntity
}
