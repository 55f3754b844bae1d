package models

import "time"

// Product is a catalog entry. Both name and description are unique natural
// keys; the category is stored by identifier but addressed by name on the
// wire.
type Product struct {
	ID              string     `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name            string     `json:"name" gorm:"uniqueIndex;type:varchar(50)"`
	Description     string     `json:"description" gorm:"uniqueIndex;type:varchar(100)"`
	RichDescription string     `json:"richDescription"`
	Price           float64    `json:"price"`
	Image           string     `json:"image"`
	Images          StringList `json:"images" gorm:"type:text"`
	CloudinaryID    string     `json:"cloudinary_id"`
	Size            StringList `json:"size" gorm:"type:text"`
	Color           StringList `json:"color" gorm:"type:text"`
	CategoryID      string     `json:"category" gorm:"type:varchar(36)"`
	Category        *Category  `json:"-" gorm:"foreignKey:CategoryID"`
	CountInStock    int        `json:"countInStock"`
	Rating          float64    `json:"rating"`
	IsFeatured      bool       `json:"isFeatured"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}
