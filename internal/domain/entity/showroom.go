package entity

import (
	"time"
)

const (
	ShowroomStatusDraft     = "draft"
	ShowroomStatusPublished = "published"
)

// Showroom is a seller's storefront. A seller owns at most one showroom;
// the repository enforces the uniqueness, not the entity.
type Showroom struct {
	ID          string `json:"id" firestore:"id"`
	OwnerID     string `json:"owner_id" firestore:"ownerId"`
	Name        string `json:"name" firestore:"name"`
	Slug        string `json:"slug" firestore:"slug"`
	Description string `json:"description,omitempty" firestore:"description,omitempty"`
	LogoURL     string `json:"logo_url,omitempty" firestore:"logoUrl,omitempty"`
	BannerURL   string `json:"banner_url,omitempty" firestore:"bannerUrl,omitempty"`
	City        string `json:"city,omitempty" firestore:"city,omitempty"`
	Phone       string `json:"phone,omitempty" firestore:"phone,omitempty"`
	Status      string `json:"status" firestore:"status"` // "draft", "published"

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}
