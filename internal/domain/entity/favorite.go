package entity

import (
	"time"
)

type Favorite struct {
	ID        string    `json:"id" firestore:"id"`
	UserID    string    `json:"user_id" firestore:"userId"`
	CarID     string    `json:"car_id" firestore:"carId"`
	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
}

type FavoriteWithCar struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	CarID     string    `json:"car_id"`
	Car       *Car      `json:"car"`
	CreatedAt time.Time `json:"created_at"`
}
