package entity

import "dingdong-api/core/entity"

// Workspace is a user-owned container for experiment projects. Active
// workspaces of one owner hold order_no values 1..N with no gaps.
type Workspace struct {
	ID        int64  `db:"id" json:"id"`
	UserID    int64  `db:"user_id" json:"user_id"`
	Title     string `db:"title" json:"title"`
	OrderNo   int    `db:"order_no" json:"order_no"`
	IsDeleted bool   `db:"is_deleted" json:"-"`
	entity.BaseEntity
}
