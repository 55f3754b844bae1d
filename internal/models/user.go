package models

import "time"

// User roles. Only ROOT and ADMIN pass the access gate on protected routes.
const (
	RoleRoot  = "ROOT"
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

// User represents an account in the catalog. Username and email are the
// natural keys used for lookups; the password hash is never serialized.
type User struct {
	ID           string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Username     string    `json:"username" gorm:"uniqueIndex;type:varchar(50)"`
	Email        string    `json:"email" gorm:"uniqueIndex;type:varchar(255)"`
	Password     string    `json:"-" gorm:"type:varchar(1024)"`
	Firstname    string    `json:"firstname"`
	Lastname     string    `json:"lastname"`
	Phone        string    `json:"phone"`
	Image        string    `json:"image"`
	CloudinaryID string    `json:"cloudinary_id"`
	Role         string    `json:"role" gorm:"type:varchar(5);default:USER"`
	Active       bool      `json:"active" gorm:"default:true"`
	Street       string    `json:"street"`
	Apartment    string    `json:"apartment"`
	ZipCode      string    `json:"zip_code"`
	City         string    `json:"city"`
	Country      string    `json:"country"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
