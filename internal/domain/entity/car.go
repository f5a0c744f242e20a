package entity

import (
	"time"
)

const (
	CarStatusActive = "active"
	CarStatusSold   = "sold"
)

type CarImage struct {
	ID           string `json:"id" firestore:"id"`
	URL          string `json:"url" firestore:"url"`
	DisplayOrder int    `json:"display_order" firestore:"displayOrder"`
}

// Car belongs to exactly one showroom and inherits its visibility from the
// showroom's publication status.
type Car struct {
	ID         string `json:"id" firestore:"id"`
	ShowroomID string `json:"showroom_id" firestore:"showroomId"`

	Title        string  `json:"title" firestore:"title"`
	Make         string  `json:"make" firestore:"make"`
	Model        string  `json:"model" firestore:"model"`
	Year         int     `json:"year" firestore:"year"`
	Price        float64 `json:"price" firestore:"price"`
	Mileage      int     `json:"mileage" firestore:"mileage"`
	Transmission string  `json:"transmission,omitempty" firestore:"transmission,omitempty"` // "manual", "automatic"
	FuelType     string  `json:"fuel_type,omitempty" firestore:"fuelType,omitempty"`
	Description  string  `json:"description,omitempty" firestore:"description,omitempty"`

	Images     []CarImage `json:"images" firestore:"images"`
	Status     string     `json:"status" firestore:"status"` // "active", "sold"
	IsFeatured bool       `json:"is_featured" firestore:"isFeatured"`
	Views      int        `json:"views" firestore:"views"`

	CreatedAt time.Time  `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time  `json:"updated_at" firestore:"updatedAt"`
	DeletedAt *time.Time `json:"deleted_at,omitempty" firestore:"deletedAt,omitempty"`
}
