// Copyright (c) 2026 Zinery. All rights reserved.

package reader

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/zinery/zinery/internal/platform/database/schema"
	"github.com/zinery/zinery/internal/platform/dberr"
	"github.com/zinery/zinery/internal/zine"
)

// PostgresRepository implements [Repository] backed by pgx. All queries
// here are read-only and anonymous-safe: drafts and password hashes
// never leave the service layer.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository wires a connection pool into the repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func (repository *PostgresRepository) FindPublisher(context context.Context, handle string) (*PublisherView, error) {
	query := fmt.Sprintf(
		`SELECT %s, %s, %s FROM %s WHERE %s = LOWER($1)`,
		schema.PubPublisher.Handle, schema.PubPublisher.DisplayName, schema.PubPublisher.Bio,
		schema.PubPublisher.Table, schema.PubPublisher.Handle,
	)

	var view PublisherView
	err := repository.pool.QueryRow(context, query, handle).Scan(
		&view.Handle, &view.DisplayName, &view.Bio,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "")
	}
	return &view, nil
}

func (repository *PostgresRepository) ListListedZines(context context.Context, handle string) ([]*ZineView, error) {
	query := fmt.Sprintf(
		`SELECT z.%s, z.%s, z.%s, z.%s, z.%s
		 FROM %s z
		 JOIN %s p ON z.%s = p.%s
		 WHERE p.%s = LOWER($1) AND z.%s <> $2
		 ORDER BY z.%s DESC`,
		schema.PubZine.Slug, schema.PubZine.Title, schema.PubZine.Description,
		schema.PubZine.Visibility, schema.PubZine.IssueCount,
		schema.PubZine.Table,
		schema.PubPublisher.Table, schema.PubZine.PublisherID, schema.PubPublisher.ID,
		schema.PubPublisher.Handle, schema.PubZine.Visibility,
		schema.PubZine.CreatedAt,
	)

	rows, err := repository.pool.Query(context, query, handle, string(zine.VisibilityUnlisted))
	if err != nil {
		return nil, dberr.Wrap(err, "")
	}
	defer rows.Close()

	zines := make([]*ZineView, 0)
	for rows.Next() {
		view := &ZineView{}
		if err := rows.Scan(
			&view.Slug, &view.Title, &view.Description,
			&view.Visibility, &view.IssueCount,
		); err != nil {
			return nil, dberr.Wrap(err, "")
		}
		zines = append(zines, view)
	}

	return zines, dberr.Wrap(rows.Err(), "")
}

func (repository *PostgresRepository) FindZine(context context.Context, handle, slug string) (*Zine, error) {
	query := fmt.Sprintf(
		`SELECT z.%s, z.%s, z.%s, z.%s, z.%s, z.%s, z.%s
		 FROM %s z
		 JOIN %s p ON z.%s = p.%s
		 WHERE p.%s = LOWER($1) AND z.%s = $2`,
		schema.PubZine.ID, schema.PubZine.Slug, schema.PubZine.Title,
		schema.PubZine.Description, schema.PubZine.Visibility,
		schema.PubZine.PasswordHash, schema.PubZine.IssueCount,
		schema.PubZine.Table,
		schema.PubPublisher.Table, schema.PubZine.PublisherID, schema.PubPublisher.ID,
		schema.PubPublisher.Handle, schema.PubZine.Slug,
	)

	var record Zine
	err := repository.pool.QueryRow(context, query, handle, slug).Scan(
		&record.ID, &record.Slug, &record.Title,
		&record.Description, &record.Visibility,
		&record.PasswordHash, &record.IssueCount,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "")
	}
	return &record, nil
}

func (repository *PostgresRepository) ListPublishedIssues(context context.Context, zineID string) ([]*IssueListing, error) {
	query := fmt.Sprintf(
		`SELECT %s, %s, %s, %s FROM %s
		 WHERE %s = $1 AND %s IS NOT NULL
		 ORDER BY %s DESC`,
		schema.PubIssue.IssueNumber, schema.PubIssue.Title,
		schema.PubIssue.PageCount, schema.PubIssue.PublishedAt,
		schema.PubIssue.Table,
		schema.PubIssue.ZineID, schema.PubIssue.PublishedAt,
		schema.PubIssue.IssueNumber,
	)

	rows, err := repository.pool.Query(context, query, zineID)
	if err != nil {
		return nil, dberr.Wrap(err, "")
	}
	defer rows.Close()

	listings := make([]*IssueListing, 0)
	for rows.Next() {
		listing := &IssueListing{}
		if err := rows.Scan(
			&listing.IssueNumber, &listing.Title,
			&listing.PageCount, &listing.PublishedAt,
		); err != nil {
			return nil, dberr.Wrap(err, "")
		}
		listings = append(listings, listing)
	}

	return listings, dberr.Wrap(rows.Err(), "")
}

/*
FindPublishedIssue loads a published issue with its spread layout fully
resolved to page content.

Description: Three reads — the issue row, the pages with blocks, the
spread rows — then the weak page references on each spread are resolved
in memory. Draft issues resolve to NotFound exactly like missing ones so
the reading surface never leaks their existence.
*/
func (repository *PostgresRepository) FindPublishedIssue(context context.Context, zineID string, issueNumber int) (*IssueView, error) {
	issueQuery := fmt.Sprintf(
		`SELECT %s, %s, %s, %s, %s, %s FROM %s
		 WHERE %s = $1 AND %s = $2 AND %s IS NOT NULL`,
		schema.PubIssue.ID, schema.PubIssue.Title, schema.PubIssue.IssueNumber,
		schema.PubIssue.PageCount, schema.PubIssue.SpreadCount, schema.PubIssue.PublishedAt,
		schema.PubIssue.Table,
		schema.PubIssue.ZineID, schema.PubIssue.IssueNumber, schema.PubIssue.PublishedAt,
	)

	var issueID string
	view := &IssueView{}
	err := repository.pool.QueryRow(context, issueQuery, zineID, issueNumber).Scan(
		&issueID, &view.Title, &view.IssueNumber,
		&view.PageCount, &view.SpreadCount, &view.PublishedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "")
	}

	pages, err := repository.loadPages(context, issueID)
	if err != nil {
		return nil, err
	}

	spreadQuery := fmt.Sprintf(
		`SELECT %s, %s, %s FROM %s
		 WHERE %s = $1 ORDER BY %s ASC`,
		schema.PubSpread.SpreadNumber, schema.PubSpread.LeftPageID, schema.PubSpread.RightPageID,
		schema.PubSpread.Table,
		schema.PubSpread.IssueID, schema.PubSpread.SpreadNumber,
	)

	rows, err := repository.pool.Query(context, spreadQuery, issueID)
	if err != nil {
		return nil, dberr.Wrap(err, "")
	}
	defer rows.Close()

	view.Spreads = make([]SpreadView, 0, view.SpreadCount)
	for rows.Next() {
		var spread SpreadView
		var leftID, rightID *string
		if err := rows.Scan(&spread.SpreadNumber, &leftID, &rightID); err != nil {
			return nil, dberr.Wrap(err, "")
		}
		if leftID != nil {
			spread.Left = pages[*leftID]
		}
		if rightID != nil {
			spread.Right = pages[*rightID]
		}
		view.Spreads = append(view.Spreads, spread)
	}

	return view, dberr.Wrap(rows.Err(), "")
}

// loadPages returns the issue's pages with blocks, keyed by page ID for
// spread resolution.
func (repository *PostgresRepository) loadPages(context context.Context, issueID string) (map[string]*PageView, error) {
	pageQuery := fmt.Sprintf(
		`SELECT %s, %s, %s FROM %s WHERE %s = $1`,
		schema.PubPage.ID, schema.PubPage.PageNumber, schema.PubPage.BackgroundColor,
		schema.PubPage.Table, schema.PubPage.IssueID,
	)

	rows, err := repository.pool.Query(context, pageQuery, issueID)
	if err != nil {
		return nil, dberr.Wrap(err, "")
	}
	defer rows.Close()

	pages := make(map[string]*PageView)
	for rows.Next() {
		var pageID string
		page := &PageView{Blocks: make([]BlockView, 0)}
		if err := rows.Scan(&pageID, &page.PageNumber, &page.BackgroundColor); err != nil {
			return nil, dberr.Wrap(err, "")
		}
		pages[pageID] = page
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "")
	}

	blockQuery := fmt.Sprintf(
		`SELECT b.%s, b.%s, b.%s, b.%s, b.%s, b.%s, b.%s, b.%s, b.%s
		 FROM %s b
		 JOIN %s p ON b.%s = p.%s
		 WHERE p.%s = $1
		 ORDER BY b.%s ASC, b.%s ASC`,
		schema.PubBlock.PageID, schema.PubBlock.BlockType,
		schema.PubBlock.XPercent, schema.PubBlock.YPercent,
		schema.PubBlock.WPercent, schema.PubBlock.HPercent,
		schema.PubBlock.Rotation, schema.PubBlock.ZIndex, schema.PubBlock.Data,
		schema.PubBlock.Table,
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
		var pageID string
		var block BlockView
		if err := blockRows.Scan(
			&pageID, &block.BlockType,
			&block.XPercent, &block.YPercent, &block.WPercent, &block.HPercent,
			&block.Rotation, &block.ZIndex, &block.Data,
		); err != nil {
			return nil, dberr.Wrap(err, "")
		}
		if page, ok := pages[pageID]; ok {
			page.Blocks = append(page.Blocks, block)
		}
	}

	return pages, dberr.Wrap(blockRows.Err(), "")
}
