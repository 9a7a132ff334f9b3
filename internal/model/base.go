package model

import "github.com/google/uuid"

// Roles carried in the bearer token. Hard deletes are restricted to RoleOwner.
const (
	RoleOwner = "owner"
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

// ensureID assigns a random UUID when the caller did not set one. Keys are
// generated in Go rather than by the database so the same models migrate on
// Postgres and SQLite.
func ensureID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}
