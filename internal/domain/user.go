package domain

import "time"

// User is the subset of the account model the purchase flow needs: buyers
// and sellers are only ever contacted by email. Registration and password
// handling live outside this service.
type User struct {
	ID        string
	Email     string
	CreatedAt time.Time
}
