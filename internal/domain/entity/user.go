package entity

import "time"

// User is an operator of the POS (cashier or admin). Authentication is a
// boundary concern; sales only record the acting user's id.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
