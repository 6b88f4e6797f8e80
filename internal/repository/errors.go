package repository

import "errors"

var (
	// ErrNotFound is returned when a row does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrNoStock is returned by the conditional stock decrement when
	// no available unit remains; nothing is written in that case.
	ErrNoStock = errors.New("no stock available")
	// ErrDuplicate is returned on unique-constraint violations
	// (national ID, profile email).
	ErrDuplicate = errors.New("record already exists")
)
