package database

import (
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// Order is a customer's request to purchase the tracked product.
// ProductName and ProductPrice are stamped from the canonical product at
// creation time and never retroactively changed.
type Order struct {
	ID              uuid.UUID
	CustomerName    string
	CustomerPhone   string
	CustomerAddress string
	CustomerNotes   pgtype.Text
	Status          string
	ProductName     string
	ProductPrice    pgtype.Numeric
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ProductBenefit is one entry of a product's ordered benefit list,
// stored as JSONB.
type ProductBenefit struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type Product struct {
	ID                uuid.UUID
	Name              string
	Description       pgtype.Text
	Price             pgtype.Numeric
	ImageURL          pgtype.Text
	Benefits          []ProductBenefit
	UsageInstructions pgtype.Text
	IsActive          bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// SiteContent is one row of the flat key-value store backing editable
// site copy (brand name, tagline, contact number, feature toggles).
type SiteContent struct {
	ID           uuid.UUID
	ContentKey   string
	ContentValue string
	ContentType  string
	UpdatedAt    time.Time
}
