// Package repository implements MySQL persistence for members, class
// slots and reservations. Sentinel errors let handlers distinguish
// failure scenarios without inspecting driver messages.
package repository

import "errors"

// ErrEmailExists is returned when creating a member with an email that
// is already registered. Handlers translate this into HTTP 409.
var ErrEmailExists = errors.New("email already exists")

// ErrNotFound is returned when a referenced member or slot does not
// exist. Handlers translate this into HTTP 404.
var ErrNotFound = errors.New("not found")
