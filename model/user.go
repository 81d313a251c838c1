package model

import "time"

// User is an immutable identity owning accounts and cards. The transaction
// engine never mutates users; they are created by the seeder.
type User struct {
	ID         int       `json:"id"`
	FullName   string    `json:"full_name"`
	Mobile     string    `json:"mobile"`
	NationalID string    `json:"national_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
