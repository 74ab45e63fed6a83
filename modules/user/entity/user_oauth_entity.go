package entity

import "dingdong-api/core/entity"

// UserOauth links a user to an external identity provider account.
type UserOauth struct {
	ID                int64  `db:"id" json:"id"`
	UserID            int64  `db:"user_id" json:"user_id"`
	Provider          string `db:"provider" json:"provider"`
	ProviderAccountID string `db:"provider_account_id" json:"provider_account_id"`
	entity.BaseEntity
}
