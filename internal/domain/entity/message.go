package entity

import "time"

// Message is a single entry in the flat message log between two users.
// Immutable except IsRead, which transitions false to true exactly once
// and only by the receiver.
type Message struct {
	ID         string `json:"id" firestore:"id"`
	SenderID   string `json:"sender_id" firestore:"senderId"`
	ReceiverID string `json:"receiver_id" firestore:"receiverId"`
	Content    string `json:"content" firestore:"content"`
	IsRead     bool   `json:"is_read" firestore:"isRead"`

	// Participants holds the sorted {sender, receiver} pair so Firestore can
	// answer "all messages involving user X" and "all messages between X and Y"
	// with a single indexed query.
	Participants []string `json:"-" firestore:"participants"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
}
