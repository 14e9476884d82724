package repository

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/jackc/pgx/v5/pgconn"
)

const pgUniqueViolation = "23505"

// UniquenessError is returned when a write collides with a unique field.
type UniquenessError struct {
	Field string
	Err   error
}

func (e *UniquenessError) Error() string {
	return fmt.Sprintf("duplicate value for unique field %q: %v", e.Field, e.Err)
}

func (e *UniquenessError) Unwrap() error {
	return e.Err
}

// ReferentialError is returned when a delete is blocked by dependent records.
type ReferentialError struct {
	Entity    string
	Dependent string
}

func (e *ReferentialError) Error() string {
	return fmt.Sprintf("%s is still referenced by at least one %s", e.Entity, e.Dependent)
}

var sqliteUnique = regexp.MustCompile(`UNIQUE constraint failed: (\w+\.\w+)`)

// uniqueFields maps both "table.column" (SQLite) and constraint names
// (PostgreSQL) to the field reported back to clients.
var uniqueFields = map[string]string{
	"categories.name":         "name",
	"uq_categories_name":      "name",
	"companies.razao":         "razao",
	"uq_companies_razao":      "razao",
	"companies.document":      "document",
	"uq_companies_document":   "document",
	"subscribers.company_id":  "company_id",
	"uq_subscribers_company":  "company_id",
	"subscribers.username":    "username",
	"uq_subscribers_username": "username",
	"users.sub_uuid":          "sub",
	"uq_users_sub":            "sub",
}

// translateError turns driver level unique violations into *UniquenessError.
// Every other error is returned untouched.
func translateError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return &UniquenessError{Field: fieldFor(pgErr.ConstraintName), Err: err}
	}

	if m := sqliteUnique.FindStringSubmatch(err.Error()); m != nil {
		return &UniquenessError{Field: fieldFor(m[1]), Err: err}
	}
	return err
}

func fieldFor(key string) string {
	if field, ok := uniqueFields[key]; ok {
		return field
	}
	return key
}
