package database

import (
	"context"

	"github.com/jackc/pgx/v5"
)

const getSiteContent = `
SELECT id, content_key, content_value, content_type, updated_at
FROM site_content
WHERE content_key = $1
`

// GetSiteContent returns the record for a single content key.
// Returns pgx.ErrNoRows when the key does not exist.
func (q *Queries) GetSiteContent(ctx context.Context, key string) (SiteContent, error) {
	return scanSiteContent(q.db.QueryRow(ctx, getSiteContent, key))
}

const listSiteContent = `
SELECT id, content_key, content_value, content_type, updated_at
FROM site_content
ORDER BY content_key ASC
`

func (q *Queries) ListSiteContent(ctx context.Context) ([]SiteContent, error) {
	rows, err := q.db.Query(ctx, listSiteContent)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var contents []SiteContent
	for rows.Next() {
		c, err := scanSiteContent(rows)
		if err != nil {
			return nil, err
		}
		contents = append(contents, c)
	}
	return contents, rows.Err()
}

type UpsertSiteContentParams struct {
	ContentKey   string
	ContentValue string
	ContentType  string
}

const upsertSiteContent = `
INSERT INTO site_content (content_key, content_value, content_type)
VALUES ($1, $2, $3)
ON CONFLICT (content_key)
DO UPDATE SET content_value = EXCLUDED.content_value, content_type = EXCLUDED.content_type, updated_at = NOW()
RETURNING id, content_key, content_value, content_type, updated_at
`

// UpsertSiteContent inserts the key or overwrites its existing value.
func (q *Queries) UpsertSiteContent(ctx context.Context, arg UpsertSiteContentParams) (SiteContent, error) {
	return scanSiteContent(q.db.QueryRow(ctx, upsertSiteContent, arg.ContentKey, arg.ContentValue, arg.ContentType))
}

func scanSiteContent(row pgx.Row) (SiteContent, error) {
	var c SiteContent
	err := row.Scan(
		&c.ID,
		&c.ContentKey,
		&c.ContentValue,
		&c.ContentType,
		&c.UpdatedAt,
	)
	return c, err
}
