package domain

import "time"

// Email is an outbound message. Every sent email is persisted, delivery
// itself is an external collaborator's job.
type Email struct {
	ID        string
	To        string
	From      string
	Subject   string
	Body      string
	ProductID string
	CreatedAt time.Time
}
