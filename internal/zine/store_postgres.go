// Copyright (c) 2026 Zinery. All rights reserved.

package zine

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/zinery/zinery/internal/platform/database/schema"
	"github.com/zinery/zinery/internal/platform/dberr"
)

// PostgresRepository implements [Repository] backed by pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository wires a connection pool into the repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func (repository *PostgresRepository) Create(context context.Context, zine *Zine) error {
	query := fmt.Sprintf(
		`INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING %s, %s`,
		schema.PubZine.Table,
		schema.PubZine.ID, schema.PubZine.PublisherID, schema.PubZine.Slug,
		schema.PubZine.Title, schema.PubZine.Description,
		schema.PubZine.Visibility, schema.PubZine.PasswordHash,
		schema.PubZine.CreatedAt, schema.PubZine.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, query,
		zine.ID, zine.PublisherID, zine.Slug,
		zine.Title, zine.Description,
		string(zine.Visibility), zine.PasswordHash,
	).Scan(&zine.CreatedAt, &zine.UpdatedAt)

	return dberr.Wrap(err, "A zine with this slug already exists for this publisher")
}

func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Zine, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM %s WHERE %s = $1`,
		strings.Join(schema.PubZine.Columns(), ", "), schema.PubZine.Table, schema.PubZine.ID,
	)
	return repository.scanOne(repository.pool.QueryRow(context, query, id))
}

func (repository *PostgresRepository) FindBySlug(context context.Context, publisherID, slug string) (*Zine, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM %s WHERE %s = $1 AND %s = $2`,
		strings.Join(schema.PubZine.Columns(), ", "), schema.PubZine.Table,
		schema.PubZine.PublisherID, schema.PubZine.Slug,
	)
	return repository.scanOne(repository.pool.QueryRow(context, query, publisherID, slug))
}

func (repository *PostgresRepository) ListByPublisher(context context.Context, publisherID string, limit, offset int) ([]*Zine, int, error) {
	countQuery := fmt.Sprintf(
		`SELECT count(*) FROM %s WHERE %s = $1`,
		schema.PubZine.Table, schema.PubZine.PublisherID,
	)

	var total int
	if err := repository.pool.QueryRow(context, countQuery, publisherID).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "")
	}

	query := fmt.Sprintf(
		`SELECT %s FROM %s WHERE %s = $1 ORDER BY %s DESC LIMIT $2 OFFSET $3`,
		strings.Join(schema.PubZine.Columns(), ", "), schema.PubZine.Table,
		schema.PubZine.PublisherID, schema.PubZine.CreatedAt,
	)

	rows, err := repository.pool.Query(context, query, publisherID, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "")
	}
	defer rows.Close()

	zines := make([]*Zine, 0)
	for rows.Next() {
		zine, err := repository.scanOne(rows)
		if err != nil {
			return nil, 0, err
		}
		zines = append(zines, zine)
	}

	return zines, total, dberr.Wrap(rows.Err(), "")
}

func (repository *PostgresRepository) Update(context context.Context, zine *Zine) error {
	query := fmt.Sprintf(
		`UPDATE %s
		 SET %s = $2, %s = $3, %s = $4, %s = $5, %s = NOW()
		 WHERE %s = $1
		 RETURNING %s`,
		schema.PubZine.Table,
		schema.PubZine.Title, schema.PubZine.Description,
		schema.PubZine.Visibility, schema.PubZine.PasswordHash,
		schema.PubZine.UpdatedAt,
		schema.PubZine.ID,
		schema.PubZine.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, query,
		zine.ID, zine.Title, zine.Description,
		string(zine.Visibility), zine.PasswordHash,
	).Scan(&zine.UpdatedAt)

	return dberr.Wrap(err, "")
}

func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	query := fmt.Sprintf(
		`DELETE FROM %s WHERE %s = $1`,
		schema.PubZine.Table, schema.PubZine.ID,
	)

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

// OwnerUserID joins through pub.publisher to resolve the owning account.
func (repository *PostgresRepository) OwnerUserID(context context.Context, zineID string) (string, error) {
	query := fmt.Sprintf(
		`SELECT p.%s FROM %s z
		 JOIN %s p ON z.%s = p.%s
		 WHERE z.%s = $1`,
		schema.PubPublisher.UserID, schema.PubZine.Table,
		schema.PubPublisher.Table, schema.PubZine.PublisherID, schema.PubPublisher.ID,
		schema.PubZine.ID,
	)

	var userID string
	if err := repository.pool.QueryRow(context, query, zineID).Scan(&userID); err != nil {
		return "", dberr.Wrap(err, "")
	}
	return userID, nil
}

// rowScanner matches both pgx.Row and pgx.Rows for shared scan helpers.
type rowScanner interface {
	Scan(destinations ...any) error
}

func (repository *PostgresRepository) scanOne(row rowScanner) (*Zine, error) {
	var zine Zine
	err := row.Scan(
		&zine.ID,
		&zine.PublisherID,
		&zine.Slug,
		&zine.Title,
		&zine.Description,
		&zine.Visibility,
		&zine.PasswordHash,
		&zine.IssueCount,
		&zine.CreatedAt,
		&zine.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "")
	}
	return &zine, nil
}
