// Copyright (c) 2026 Zinery. All rights reserved.

package issue

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/zinery/zinery/internal/platform/database/schema"
	"github.com/zinery/zinery/internal/platform/dberr"
	"github.com/zinery/zinery/pkg/uuid"
)

// PostgresRepository implements [Repository] backed by pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository wires a connection pool into the repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// # Issue Rows

func (repository *PostgresRepository) Create(context context.Context, issue *Issue) error {
	// The issue number is assigned inside the insert; the UNIQUE
	// constraint on (zineid, issuenumber) backstops concurrent creates.
	query := fmt.Sprintf(
		`INSERT INTO %s (%s, %s, %s, %s)
		 VALUES ($1, $2,
		         (SELECT COALESCE(MAX(%s), 0) + 1 FROM %s WHERE %s = $2),
		         $3)
		 RETURNING %s, %s, %s`,
		schema.PubIssue.Table,
		schema.PubIssue.ID, schema.PubIssue.ZineID, schema.PubIssue.IssueNumber, schema.PubIssue.Title,
		schema.PubIssue.IssueNumber, schema.PubIssue.Table, schema.PubIssue.ZineID,
		schema.PubIssue.IssueNumber, schema.PubIssue.CreatedAt, schema.PubIssue.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, query,
		issue.ID, issue.ZineID, issue.Title,
	).Scan(&issue.IssueNumber, &issue.CreatedAt, &issue.UpdatedAt)

	return dberr.Wrap(err, "Issue number already exists in this zine")
}

func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Issue, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM %s WHERE %s = $1`,
		strings.Join(schema.PubIssue.Columns(), ", "), schema.PubIssue.Table, schema.PubIssue.ID,
	)

	issue, err := scanIssue(repository.pool.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "")
	}
	return issue, nil
}

func (repository *PostgresRepository) ListByZine(context context.Context, zineID string) ([]*Issue, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM %s WHERE %s = $1 ORDER BY %s ASC`,
		strings.Join(schema.PubIssue.Columns(), ", "), schema.PubIssue.Table,
		schema.PubIssue.ZineID, schema.PubIssue.IssueNumber,
	)

	rows, err := repository.pool.Query(context, query, zineID)
	if err != nil {
		return nil, dberr.Wrap(err, "")
	}
	defer rows.Close()

	issues := make([]*Issue, 0)
	for rows.Next() {
		issue, err := scanIssue(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "")
		}
		issues = append(issues, issue)
	}

	return issues, dberr.Wrap(rows.Err(), "")
}

// Ownership joins issue → zine → publisher so that authorization and
// public URL composition need a single round trip.
func (repository *PostgresRepository) Ownership(context context.Context, issueID string) (*Ownership, error) {
	query := fmt.Sprintf(
		`SELECT i.%s, z.%s, z.%s, p.%s, p.%s, p.%s, i.%s, i.%s
		 FROM %s i
		 JOIN %s z ON i.%s = z.%s
		 JOIN %s p ON z.%s = p.%s
		 WHERE i.%s = $1`,
		schema.PubIssue.ID, schema.PubZine.ID, schema.PubZine.Slug,
		schema.PubPublisher.ID, schema.PubPublisher.Handle, schema.PubPublisher.UserID,
		schema.PubIssue.IssueNumber, schema.PubIssue.PublishedAt,
		schema.PubIssue.Table,
		schema.PubZine.Table, schema.PubIssue.ZineID, schema.PubZine.ID,
		schema.PubPublisher.Table, schema.PubZine.PublisherID, schema.PubPublisher.ID,
		schema.PubIssue.ID,
	)

	var ownership Ownership
	err := repository.pool.QueryRow(context, query, issueID).Scan(
		&ownership.IssueID,
		&ownership.ZineID,
		&ownership.ZineSlug,
		&ownership.PublisherID,
		&ownership.PublisherHandle,
		&ownership.OwnerUserID,
		&ownership.IssueNumber,
		&ownership.PublishedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "")
	}
	return &ownership, nil
}

func (repository *PostgresRepository) ZineOwnerUserID(context context.Context, zineID string) (string, error) {
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

// # Owned Collections

func (repository *PostgresRepository) ListPages(context context.Context, issueID string) ([]*Page, error) {
	pageQuery := fmt.Sprintf(
		`SELECT %s FROM %s WHERE %s = $1 ORDER BY %s ASC`,
		strings.Join(schema.PubPage.Columns(), ", "), schema.PubPage.Table,
		schema.PubPage.IssueID, schema.PubPage.PageNumber,
	)

	rows, err := repository.pool.Query(context, pageQuery, issueID)
	if err != nil {
		return nil, dberr.Wrap(err, "")
	}
	defer rows.Close()

	pages := make([]*Page, 0)
	pageMap := make(map[string]*Page)

	for rows.Next() {
		page := &Page{Blocks: make([]*Block, 0)}
		if err := rows.Scan(
			&page.ID, &page.IssueID, &page.PageNumber,
			&page.BackgroundColor, &page.Metadata,
		); err != nil {
			return nil, dberr.Wrap(err, "")
		}
		pages = append(pages, page)
		pageMap[page.ID] = page
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "")
	}

	// Stacking order: z-index first, insertion (id) order breaking ties.
	blockQuery := fmt.Sprintf(
		`SELECT b.%s FROM %s b
		 JOIN %s p ON b.%s = p.%s
		 WHERE p.%s = $1
		 ORDER BY b.%s ASC, b.%s ASC`,
		strings.Join(schema.PubBlock.Columns(), ", b."), schema.PubBlock.Table,
		schema.PubPage.Table, schema.PubBlock.PageID, schema.PubPage.ID,
		schema.PubPage.IssueID,
		schema.PubBlock.ZIndex, schema.PubBlock.ID,
	)

	blockRows, err := repository.pool.Query(context, blockQuery, issueID)
	if err != nil {
		return nil, dberr.Wrap(err, "")
	}
	defer blockRows.Close()

	for blockRows.Next() {
		block := &Block{}
		if err := blockRows.Scan(
			&block.ID, &block.PageID, &block.BlockType,
			&block.XPercent, &block.YPercent, &block.WPercent, &block.HPercent,
			&block.Rotation, &block.ZIndex, &block.Data,
		); err != nil {
			return nil, dberr.Wrap(err, "")
		}
		if page, ok := pageMap[block.PageID]; ok {
			page.Blocks = append(page.Blocks, block)
		}
	}

	return pages, dberr.Wrap(blockRows.Err(), "")
}

func (repository *PostgresRepository) ListPageIDs(context context.Context, issueID string) ([]string, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM %s WHERE %s = $1 ORDER BY %s ASC`,
		schema.PubPage.ID, schema.PubPage.Table,
		schema.PubPage.IssueID, schema.PubPage.PageNumber,
	)

	rows, err := repository.pool.Query(context, query, issueID)
	if err != nil {
		return nil, dberr.Wrap(err, "")
	}
	defer rows.Close()

	pageIDs := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, dberr.Wrap(err, "")
		}
		pageIDs = append(pageIDs, id)
	}

	return pageIDs, dberr.Wrap(rows.Err(), "")
}

func (repository *PostgresRepository) ListSpreads(context context.Context, issueID string) ([]*Spread, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM %s WHERE %s = $1 ORDER BY %s ASC`,
		strings.Join(schema.PubSpread.Columns(), ", "), schema.PubSpread.Table,
		schema.PubSpread.IssueID, schema.PubSpread.SpreadNumber,
	)

	rows, err := repository.pool.Query(context, query, issueID)
	if err != nil {
		return nil, dberr.Wrap(err, "")
	}
	defer rows.Close()

	spreads := make([]*Spread, 0)
	for rows.Next() {
		spread := &Spread{}
		if err := rows.Scan(
			&spread.ID, &spread.IssueID, &spread.SpreadNumber,
			&spread.LeftPageID, &spread.RightPageID,
		); err != nil {
			return nil, dberr.Wrap(err, "")
		}
		spreads = append(spreads, spread)
	}

	return spreads, dberr.Wrap(rows.Err(), "")
}

// # Transactional Mutations

/*
ReplaceDocument rewrites the whole document of an issue in one transaction.

Description: Deletes every page (blocks cascade) and spread, bulk-inserts
the new pages, blocks, and spreads through a single pgx batch pipeline,
then updates the title and recomputes both counters from the rows just
written. Any failure rolls the issue back to its pre-save state.
*/
func (repository *PostgresRepository) ReplaceDocument(context context.Context, issueID, title string, pages []*Page, spreads []*Spread) (*Issue, error) {
	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to begin transaction: %w", err)
	}
	defer transaction.Rollback(context)

	// Spreads reference pages, so they go first.
	if err := deleteSpreads(context, transaction, issueID); err != nil {
		return nil, err
	}
	if err := deletePages(context, transaction, issueID); err != nil {
		return nil, err
	}

	if err := insertPages(context, transaction, pages); err != nil {
		return nil, err
	}
	if err := insertSpreads(context, transaction, issueID, spreads); err != nil {
		return nil, err
	}

	issue, err := updateIssueAfterMutation(context, transaction, issueID, &title)
	if err != nil {
		return nil, err
	}

	if err := transaction.Commit(context); err != nil {
		return nil, fmt.Errorf("postgres: failed to commit save transaction: %w", err)
	}
	return issue, nil
}

// ReplaceSpreads rewrites only the derived spread set and refreshes the
// counters, leaving pages and title untouched.
func (repository *PostgresRepository) ReplaceSpreads(context context.Context, issueID string, spreads []*Spread) (*Issue, error) {
	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to begin transaction: %w", err)
	}
	defer transaction.Rollback(context)

	issue, err := replaceSpreadsInTx(context, transaction, issueID, spreads)
	if err != nil {
		return nil, err
	}

	if err := transaction.Commit(context); err != nil {
		return nil, fmt.Errorf("postgres: failed to commit regeneration transaction: %w", err)
	}
	return issue, nil
}

// Publish rewrites the spread set, stamps publishedAt, and refreshes the
// zine's published-issue count, all in one transaction.
func (repository *PostgresRepository) Publish(context context.Context, issueID string, spreads []*Spread, publishedAt time.Time) (*Issue, error) {
	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to begin transaction: %w", err)
	}
	defer transaction.Rollback(context)

	if _, err := replaceSpreadsInTx(context, transaction, issueID, spreads); err != nil {
		return nil, err
	}

	stampQuery := fmt.Sprintf(
		`UPDATE %s SET %s = $2, %s = NOW() WHERE %s = $1`,
		schema.PubIssue.Table,
		schema.PubIssue.PublishedAt, schema.PubIssue.UpdatedAt,
		schema.PubIssue.ID,
	)
	if _, err := transaction.Exec(context, stampQuery, issueID, publishedAt); err != nil {
		return nil, fmt.Errorf("postgres: failed to stamp publish time: %w", err)
	}

	if err := recomputeIssueCount(context, transaction, issueID); err != nil {
		return nil, err
	}

	issue, err := findIssueInTx(context, transaction, issueID)
	if err != nil {
		return nil, err
	}

	if err := transaction.Commit(context); err != nil {
		return nil, fmt.Errorf("postgres: failed to commit publish transaction: %w", err)
	}
	return issue, nil
}

// Unpublish clears publishedAt and refreshes the zine's published-issue
// count in one transaction.
func (repository *PostgresRepository) Unpublish(context context.Context, issueID string) (*Issue, error) {
	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to begin transaction: %w", err)
	}
	defer transaction.Rollback(context)

	clearQuery := fmt.Sprintf(
		`UPDATE %s SET %s = NULL, %s = NOW() WHERE %s = $1`,
		schema.PubIssue.Table,
		schema.PubIssue.PublishedAt, schema.PubIssue.UpdatedAt,
		schema.PubIssue.ID,
	)
	if _, err := transaction.Exec(context, clearQuery, issueID); err != nil {
		return nil, fmt.Errorf("postgres: failed to clear publish time: %w", err)
	}

	if err := recomputeIssueCount(context, transaction, issueID); err != nil {
		return nil, err
	}

	issue, err := findIssueInTx(context, transaction, issueID)
	if err != nil {
		return nil, err
	}

	if err := transaction.Commit(context); err != nil {
		return nil, fmt.Errorf("postgres: failed to commit unpublish transaction: %w", err)
	}
	return issue, nil
}

func (repository *PostgresRepository) Delete(context context.Context, issueID string) error {
	query := fmt.Sprintf(
		`DELETE FROM %s WHERE %s = $1`,
		schema.PubIssue.Table, schema.PubIssue.ID,
	)

	tag, err := repository.pool.Exec(context, query, issueID)
	if err != nil {
		return dberr.Wrap(err, "")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

// # Transaction Helpers

func deleteSpreads(context context.Context, transaction pgx.Tx, issueID string) error {
	query := fmt.Sprintf(
		`DELETE FROM %s WHERE %s = $1`,
		schema.PubSpread.Table, schema.PubSpread.IssueID,
	)
	if _, err := transaction.Exec(context, query, issueID); err != nil {
		return fmt.Errorf("postgres: failed to delete spreads: %w", err)
	}
	return nil
}

func deletePages(context context.Context, transaction pgx.Tx, issueID string) error {
	query := fmt.Sprintf(
		`DELETE FROM %s WHERE %s = $1`,
		schema.PubPage.Table, schema.PubPage.IssueID,
	)
	if _, err := transaction.Exec(context, query, issueID); err != nil {
		return fmt.Errorf("postgres: failed to delete pages: %w", err)
	}
	return nil
}

// insertPages queues every page and block insert through one pgx batch
// pipeline to avoid a network round trip per row.
func insertPages(context context.Context, transaction pgx.Tx, pages []*Page) error {
	if len(pages) == 0 {
		return nil
	}

	pageQuery := fmt.Sprintf(
		`INSERT INTO %s (%s, %s, %s, %s, %s) VALUES ($1, $2, $3, $4, $5)`,
		schema.PubPage.Table,
		schema.PubPage.ID, schema.PubPage.IssueID, schema.PubPage.PageNumber,
		schema.PubPage.BackgroundColor, schema.PubPage.Metadata,
	)
	blockQuery := fmt.Sprintf(
		`INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		schema.PubBlock.Table,
		schema.PubBlock.ID, schema.PubBlock.PageID, schema.PubBlock.BlockType,
		schema.PubBlock.XPercent, schema.PubBlock.YPercent,
		schema.PubBlock.WPercent, schema.PubBlock.HPercent,
		schema.PubBlock.Rotation, schema.PubBlock.ZIndex, schema.PubBlock.Data,
	)

	batch := &pgx.Batch{}
	for _, page := range pages {
		batch.Queue(pageQuery,
			page.ID, page.IssueID, page.PageNumber,
			page.BackgroundColor, page.Metadata,
		)
		for _, block := range page.Blocks {
			batch.Queue(blockQuery,
				block.ID, block.PageID, block.BlockType,
				block.XPercent, block.YPercent, block.WPercent, block.HPercent,
				block.Rotation, block.ZIndex, block.Data,
			)
		}
	}

	result := transaction.SendBatch(context, batch)
	defer result.Close()

	for i := 0; i < batch.Len(); i++ {
		if _, err := result.Exec(); err != nil {
			return fmt.Errorf("postgres: failed to insert pages: %w", err)
		}
	}
	return result.Close()
}

// insertSpreads persists a derived spread set, assigning row IDs here so
// the deriver itself stays a pure function.
func insertSpreads(context context.Context, transaction pgx.Tx, issueID string, spreads []*Spread) error {
	if len(spreads) == 0 {
		return nil
	}

	query := fmt.Sprintf(
		`INSERT INTO %s (%s, %s, %s, %s, %s) VALUES ($1, $2, $3, $4, $5)`,
		schema.PubSpread.Table,
		schema.PubSpread.ID, schema.PubSpread.IssueID, schema.PubSpread.SpreadNumber,
		schema.PubSpread.LeftPageID, schema.PubSpread.RightPageID,
	)

	batch := &pgx.Batch{}
	for _, spread := range spreads {
		if spread.ID == "" {
			spread.ID = uuid.New()
		}
		spread.IssueID = issueID
		batch.Queue(query,
			spread.ID, spread.IssueID, spread.SpreadNumber,
			spread.LeftPageID, spread.RightPageID,
		)
	}

	result := transaction.SendBatch(context, batch)
	defer result.Close()

	for i := 0; i < batch.Len(); i++ {
		if _, err := result.Exec(); err != nil {
			return fmt.Errorf("postgres: failed to insert spreads: %w", err)
		}
	}
	return result.Close()
}

func replaceSpreadsInTx(context context.Context, transaction pgx.Tx, issueID string, spreads []*Spread) (*Issue, error) {
	if err := deleteSpreads(context, transaction, issueID); err != nil {
		return nil, err
	}
	if err := insertSpreads(context, transaction, issueID, spreads); err != nil {
		return nil, err
	}
	return updateIssueAfterMutation(context, transaction, issueID, nil)
}

// updateIssueAfterMutation recomputes PageCount and SpreadCount from the
// rows currently in the transaction, optionally updates the title, and
// returns the refreshed issue. Counts are always derived from the owned
// collections, never adjusted by delta.
func updateIssueAfterMutation(context context.Context, transaction pgx.Tx, issueID string, title *string) (*Issue, error) {
	query := fmt.Sprintf(
		`UPDATE %s SET
		   %s = (SELECT COUNT(*) FROM %s WHERE %s = $1),
		   %s = (SELECT COUNT(*) FROM %s WHERE %s = $1),
		   %s = COALESCE($2, %s),
		   %s = NOW()
		 WHERE %s = $1
		 RETURNING %s`,
		schema.PubIssue.Table,
		schema.PubIssue.PageCount, schema.PubPage.Table, schema.PubPage.IssueID,
		schema.PubIssue.SpreadCount, schema.PubSpread.Table, schema.PubSpread.IssueID,
		schema.PubIssue.Title, schema.PubIssue.Title,
		schema.PubIssue.UpdatedAt,
		schema.PubIssue.ID,
		strings.Join(schema.PubIssue.Columns(), ", "),
	)

	issue, err := scanIssue(transaction.QueryRow(context, query, issueID, title))
	if err != nil {
		return nil, dberr.Wrap(err, "")
	}
	return issue, nil
}

// recomputeIssueCount refreshes the parent zine's cache of published
// sibling issues from the issue table itself.
func recomputeIssueCount(context context.Context, transaction pgx.Tx, issueID string) error {
	query := fmt.Sprintf(
		`UPDATE %s z SET %s = (
		   SELECT COUNT(*) FROM %s i
		   WHERE i.%s = z.%s AND i.%s IS NOT NULL
		 ), %s = NOW()
		 WHERE z.%s = (SELECT %s FROM %s WHERE %s = $1)`,
		schema.PubZine.Table, schema.PubZine.IssueCount,
		schema.PubIssue.Table,
		schema.PubIssue.ZineID, schema.PubZine.ID, schema.PubIssue.PublishedAt,
		schema.PubZine.UpdatedAt,
		schema.PubZine.ID, schema.PubIssue.ZineID, schema.PubIssue.Table, schema.PubIssue.ID,
	)
	if _, err := transaction.Exec(context, query, issueID); err != nil {
		return fmt.Errorf("postgres: failed to recompute issue count: %w", err)
	}
	return nil
}

func findIssueInTx(context context.Context, transaction pgx.Tx, issueID string) (*Issue, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM %s WHERE %s = $1`,
		strings.Join(schema.PubIssue.Columns(), ", "), schema.PubIssue.Table, schema.PubIssue.ID,
	)

	issue, err := scanIssue(transaction.QueryRow(context, query, issueID))
	if err != nil {
		return nil, dberr.Wrap(err, "")
	}
	return issue, nil
}

// rowScanner matches both pgx.Row and pgx.Rows for shared scan helpers.
type rowScanner interface {
	Scan(destinations ...any) error
}

func scanIssue(row rowScanner) (*Issue, error) {
	var issue Issue
	err := row.Scan(
		&issue.ID,
		&issue.ZineID,
		&issue.IssueNumber,
		&issue.Title,
		&issue.PageCount,
		&issue.SpreadCount,
		&issue.PublishedAt,
		&issue.CreatedAt,
		&issue.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &issue, nil
}
