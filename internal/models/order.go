package models

import "time"

// Order is intentionally thin: a unique name plus a free-text status. The
// richer shipping/line-item order never shipped and is not modeled here.
type Order struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name      string    `json:"name" gorm:"uniqueIndex;type:varchar(50)"`
	Status    string    `json:"status" gorm:"default:Pending"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
