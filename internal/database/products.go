package database

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const productColumns = `id, name, description, price, image_url, benefits, usage_instructions, is_active, created_at, updated_at`

const listProducts = `
SELECT ` + productColumns + `
FROM products
ORDER BY created_at ASC
`

const listActiveProducts = `
SELECT ` + productColumns + `
FROM products
WHERE is_active = TRUE
ORDER BY created_at ASC
`

// ListProducts returns all products, optionally filtered to active only.
func (q *Queries) ListProducts(ctx context.Context, activeOnly bool) ([]Product, error) {
	query := listProducts
	if activeOnly {
		query = listActiveProducts
	}
	rows, err := q.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

const getProduct = `
SELECT ` + productColumns + `
FROM products
WHERE id = $1
`

func (q *Queries) GetProduct(ctx context.Context, id uuid.UUID) (Product, error) {
	return scanProduct(q.db.QueryRow(ctx, getProduct, id))
}

const getCanonicalProduct = `
SELECT ` + productColumns + `
FROM products
WHERE is_active = TRUE
ORDER BY created_at ASC
LIMIT 1
`

// GetCanonicalProduct returns the single product treated as "the"
// product: the first active record. Returns pgx.ErrNoRows when no
// product is active.
func (q *Queries) GetCanonicalProduct(ctx context.Context) (Product, error) {
	return scanProduct(q.db.QueryRow(ctx, getCanonicalProduct))
}

type CreateProductParams struct {
	Name              string
	Description       pgtype.Text
	Price             pgtype.Numeric
	ImageURL          pgtype.Text
	Benefits          []ProductBenefit
	UsageInstructions pgtype.Text
	IsActive          bool
}

const createProduct = `
INSERT INTO products (name, description, price, image_url, benefits, usage_instructions, is_active)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING ` + productColumns + `
`

func (q *Queries) CreateProduct(ctx context.Context, arg CreateProductParams) (Product, error) {
	benefits, err := benefitsJSON(arg.Benefits)
	if err != nil {
		return Product{}, err
	}
	row := q.db.QueryRow(ctx, createProduct,
		arg.Name,
		arg.Description,
		arg.Price,
		arg.ImageURL,
		benefits,
		arg.UsageInstructions,
		arg.IsActive,
	)
	return scanProduct(row)
}

type UpdateProductParams struct {
	ID                uuid.UUID
	Name              string
	Description       pgtype.Text
	Price             pgtype.Numeric
	ImageURL          pgtype.Text
	Benefits          []ProductBenefit
	UsageInstructions pgtype.Text
	IsActive          bool
}

const updateProduct = `
UPDATE products
SET name = $2, description = $3, price = $4, image_url = $5, benefits = $6, usage_instructions = $7, is_active = $8, updated_at = NOW()
WHERE id = $1
RETURNING ` + productColumns + `
`

// UpdateProduct replaces the product record. Existing orders keep their
// name/price snapshots; nothing here touches the orders table.
func (q *Queries) UpdateProduct(ctx context.Context, arg UpdateProductParams) (Product, error) {
	benefits, err := benefitsJSON(arg.Benefits)
	if err != nil {
		return Product{}, err
	}
	row := q.db.QueryRow(ctx, updateProduct,
		arg.ID,
		arg.Name,
		arg.Description,
		arg.Price,
		arg.ImageURL,
		benefits,
		arg.UsageInstructions,
		arg.IsActive,
	)
	return scanProduct(row)
}

const deleteProduct = `
DELETE FROM products WHERE id = $1
`

func (q *Queries) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	tag, err := q.db.Exec(ctx, deleteProduct, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanProduct(row pgx.Row) (Product, error) {
	var p Product
	var benefits []byte
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.Price,
		&p.ImageURL,
		&benefits,
		&p.UsageInstructions,
		&p.IsActive,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return Product{}, err
	}
	if len(benefits) > 0 {
		if err := json.Unmarshal(benefits, &p.Benefits); err != nil {
			return Product{}, err
		}
	}
	return p, nil
}

func benefitsJSON(benefits []ProductBenefit) ([]byte, error) {
	if benefits == nil {
		benefits = []ProductBenefit{}
	}
	return json.Marshal(benefits)
}
