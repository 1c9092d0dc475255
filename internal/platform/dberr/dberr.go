// Copyright (c) 2026 Zinery. All rights reserved.

// Package dberr bridges low-level PostgreSQL errors into the application's
// [apperr] vocabulary.
//
// Repositories pass raw pgx errors through [Wrap] before returning them, so
// that a missing row surfaces as NOT_FOUND and a unique-constraint hit
// (duplicate handle, slug, or issue number) surfaces as CONFLICT instead of
// leaking SQLSTATE details.
package dberr

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/zinery/zinery/internal/platform/apperr"
)

// ErrNotFound is the standard error returned when a queried row doesn't exist.
var ErrNotFound = apperr.NotFound("Resource")

// Wrap classifies a database error into a meaningful [apperr.AppError].
//
// The conflictMsg is the client-safe message used when the error is a unique
// violation; it should name the colliding key ("Zine slug already in use").
func Wrap(err error, conflictMsg string) error {
	if err == nil {
		return nil
	}

	// Row absence maps to a generic NOT_FOUND.
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}

	// Unique-key collisions map to CONFLICT with the caller's message.
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return apperr.Conflict(conflictMsg)
	}

	// Everything else is an internal storage failure.
	return apperr.Internal(err)
}

// IsUniqueViolation reports whether err is a PostgreSQL unique-constraint
// violation (SQLSTATE 23505).
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}
