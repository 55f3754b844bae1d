package models

import "time"

// Category groups products. The name is the natural key.
type Category struct {
	ID           string     `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name         string     `json:"name" gorm:"uniqueIndex;type:varchar(50)"`
	Icon         string     `json:"icon"`
	Color        StringList `json:"color" gorm:"type:text"`
	Image        string     `json:"image"`
	CloudinaryID string     `json:"cloudinary_id"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}
