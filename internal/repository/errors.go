// Package repository implements data access over the relational store.
// This file defines sentinel errors shared across repositories so that
// handlers can map failure scenarios to HTTP statuses without string
// matching.
package repository

import "errors"

// ErrNotFound is returned when a requested row does not exist.
// Handlers translate it into an HTTP 404 response.
var ErrNotFound = errors.New("not found")

// ErrNicknameExists is returned when registering a nickname that is
// already taken. Handlers translate it into HTTP 409.
var ErrNicknameExists = errors.New("nickname already exists")
