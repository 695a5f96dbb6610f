package repository

// Package repository contains data access layer abstractions.
// Implementations live in subpackages (e.g., postgres) inside this directory.

import "errors"

// ErrNotFound is returned by implementations when no row matches.
var ErrNotFound = errors.New("repository: record not found")

// ErrConflict is returned when a write violates a unique constraint.
var ErrConflict = errors.New("repository: unique constraint violated")
