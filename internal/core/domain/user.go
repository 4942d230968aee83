package domain

import "time"

// User models an account that can authenticate against the API.
// Email is the natural key and is matched case-sensitively.
type User struct {
	Email        string    `json:"email" bson:"_id"`
	PasswordHash string    `json:"-" bson:"password"`
	Name         string    `json:"name" bson:"name"`
	Role         Role      `json:"role" bson:"role"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"`
}

// Clone returns a shallow copy so callers never share a record with a backend.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}
