package domain

import "time"

// Store is a physical store location managed through the API.
type Store struct {
	ID          string    `json:"id" bson:"_id"`
	Description string    `json:"description" bson:"description"`
	Address     string    `json:"address" bson:"address"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}

func (s *Store) Clone() *Store {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}
