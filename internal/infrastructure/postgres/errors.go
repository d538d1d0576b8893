package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/oksasatya/devcamper-api/pkg/apperror"
)

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
	codeInvalidText         = "22P02"
)

// translate maps pgx failures onto apperror kinds. Missing rows and ids that
// are not valid uuids both become NotFound for the given id.
func translate(err error, what, id string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return notFound(what, id)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUniqueViolation:
			return apperror.Wrap(apperror.ErrConflict, err, "Duplicate field value entered")
		case codeInvalidText:
			return notFound(what, id)
		case codeForeignKeyViolation:
			return apperror.Wrap(apperror.ErrConflict, err, "%s is still referenced by other records", what)
		case codeCheckViolation:
			return apperror.Wrap(apperror.ErrValidation, err, "Invalid %s value", what)
		}
	}
	return fmt.Errorf("postgres: %s: %w", what, err)
}

func notFound(what, id string) error {
	if id == "" {
		return apperror.NotFound("%s not found", what)
	}
	return apperror.NotFound("%s not found with id of %s", what, id)
}
