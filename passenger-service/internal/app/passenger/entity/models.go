package entity

import (
	"time"

	"github.com/google/uuid"
)

// Passenger rows are never physically removed: deletion sets IsDeleted and
// every read filters deleted rows out.
type Passenger struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	IsDeleted bool      `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
