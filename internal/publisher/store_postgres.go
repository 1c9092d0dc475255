// Copyright (c) 2026 Zinery. All rights reserved.

package publisher

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

func (repository *PostgresRepository) Create(context context.Context, publisher *Publisher) error {
	query := fmt.Sprintf(
		`INSERT INTO %s (%s, %s, %s, %s, %s)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING %s, %s`,
		schema.PubPublisher.Table,
		schema.PubPublisher.ID, schema.PubPublisher.UserID, schema.PubPublisher.Handle,
		schema.PubPublisher.DisplayName, schema.PubPublisher.Bio,
		schema.PubPublisher.CreatedAt, schema.PubPublisher.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, query,
		publisher.ID, publisher.UserID, publisher.Handle,
		publisher.DisplayName, publisher.Bio,
	).Scan(&publisher.CreatedAt, &publisher.UpdatedAt)

	return dberr.Wrap(err, "Handle is already taken or user already has a publisher profile")
}

func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Publisher, error) {
	return repository.findOne(context, schema.PubPublisher.ID, id)
}

func (repository *PostgresRepository) FindByUserID(context context.Context, userID string) (*Publisher, error) {
	return repository.findOne(context, schema.PubPublisher.UserID, userID)
}

func (repository *PostgresRepository) FindByHandle(context context.Context, handle string) (*Publisher, error) {
	return repository.findOne(context, schema.PubPublisher.Handle, strings.ToLower(handle))
}

func (repository *PostgresRepository) Update(context context.Context, publisher *Publisher) error {
	query := fmt.Sprintf(
		`UPDATE %s SET %s = $2, %s = $3, %s = NOW()
		 WHERE %s = $1
		 RETURNING %s`,
		schema.PubPublisher.Table,
		schema.PubPublisher.DisplayName, schema.PubPublisher.Bio, schema.PubPublisher.UpdatedAt,
		schema.PubPublisher.ID,
		schema.PubPublisher.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, query,
		publisher.ID, publisher.DisplayName, publisher.Bio,
	).Scan(&publisher.UpdatedAt)

	return dberr.Wrap(err, "")
}

func (repository *PostgresRepository) findOne(context context.Context, column, value string) (*Publisher, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM %s WHERE %s = $1`,
		strings.Join(schema.PubPublisher.Columns(), ", "), schema.PubPublisher.Table, column,
	)

	var publisher Publisher
	err := repository.pool.QueryRow(context, query, value).Scan(
		&publisher.ID,
		&publisher.UserID,
		&publisher.Handle,
		&publisher.DisplayName,
		&publisher.Bio,
		&publisher.CreatedAt,
		&publisher.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "")
	}
	return &publisher, nil
}
