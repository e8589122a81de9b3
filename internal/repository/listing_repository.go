package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/records-service/internal/domain"
)

// ListingFilter captures list parameters for listings.
type ListingFilter struct {
	Sort   []domain.SortField
	Limit  int
	Offset int
}

// ListingRepository encapsulates listing document persistence. Lookups and
// mutations come in pairs keyed by the application id and the system id; the
// caller decides the resolution order.
type ListingRepository interface {
	Create(ctx context.Context, listing *domain.Listing) error
	FindByAppID(ctx context.Context, id string) (*domain.Listing, error)
	FindByOID(ctx context.Context, oid string) (*domain.Listing, error)
	UpdateByAppID(ctx context.Context, id string, patch map[string]any) (*domain.Listing, error)
	UpdateByOID(ctx context.Context, oid string, patch map[string]any) (*domain.Listing, error)
	DeleteByAppID(ctx context.Context, id string) (*domain.Listing, error)
	DeleteByOID(ctx context.Context, oid string) (*domain.Listing, error)
	List(ctx context.Context, filter ListingFilter) ([]domain.Listing, error)
	Count(ctx context.Context) (int64, error)
}

// firstByAppID selects the oldest listing carrying an application id.
const firstByAppID = `(SELECT oid FROM airbnb WHERE id = $1 ORDER BY oid LIMIT 1)`

type listingRepository struct {
	db DBTX
}

// NewListingRepository instantiates repository.
func NewListingRepository(db DBTX) ListingRepository {
	return &listingRepository{db: db}
}

func (r *listingRepository) Create(ctx context.Context, listing *domain.Listing) error {
	doc, err := json.Marshal(listing)
	if err != nil {
		return fmt.Errorf("encode listing: %w", err)
	}
	if _, err := r.db.Exec(ctx, `INSERT INTO airbnb (oid, doc) VALUES ($1, $2::jsonb)`, listing.OID, doc); err != nil {
		return translatePgError(err)
	}
	return nil
}

func (r *listingRepository) FindByAppID(ctx context.Context, id string) (*domain.Listing, error) {
	return scanListing(r.db.QueryRow(ctx, `SELECT oid, doc FROM airbnb WHERE id = $1 ORDER BY oid LIMIT 1`, id))
}

func (r *listingRepository) FindByOID(ctx context.Context, oid string) (*domain.Listing, error) {
	return scanListing(r.db.QueryRow(ctx, `SELECT oid, doc FROM airbnb WHERE oid = $1`, oid))
}

func (r *listingRepository) UpdateByAppID(ctx context.Context, id string, patch map[string]any) (*domain.Listing, error) {
	return r.update(ctx, `UPDATE airbnb SET doc = doc || $2::jsonb WHERE oid = `+firstByAppID+` RETURNING oid, doc`, id, patch)
}

func (r *listingRepository) UpdateByOID(ctx context.Context, oid string, patch map[string]any) (*domain.Listing, error) {
	return r.update(ctx, `UPDATE airbnb SET doc = doc || $2::jsonb WHERE oid = $1 RETURNING oid, doc`, oid, patch)
}

func (r *listingRepository) update(ctx context.Context, query, key string, patch map[string]any) (*domain.Listing, error) {
	body, err := json.Marshal(patch)
	if err != nil {
		return nil, fmt.Errorf("encode listing patch: %w", err)
	}
	listing, err := scanListing(r.db.QueryRow(ctx, query, key, body))
	if err != nil {
		return nil, translatePgError(err)
	}
	return listing, nil
}

func (r *listingRepository) DeleteByAppID(ctx context.Context, id string) (*domain.Listing, error) {
	return scanListing(r.db.QueryRow(ctx, `DELETE FROM airbnb WHERE oid = `+firstByAppID+` RETURNING oid, doc`, id))
}

func (r *listingRepository) DeleteByOID(ctx context.Context, oid string) (*domain.Listing, error) {
	return scanListing(r.db.QueryRow(ctx, `DELETE FROM airbnb WHERE oid = $1 RETURNING oid, doc`, oid))
}

func (r *listingRepository) List(ctx context.Context, filter ListingFilter) ([]domain.Listing, error) {
	order, err := orderBy(filter.Sort, listingSortExpr, "oid")
	if err != nil {
		return nil, err
	}
	query := `SELECT oid, doc FROM airbnb ` + order + ` LIMIT $1 OFFSET $2`

	rows, err := r.db.Query(ctx, query, filter.Limit, filter.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]domain.Listing, 0)
	for rows.Next() {
		listing, err := scanListing(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *listing)
	}
	return result, rows.Err()
}

func (r *listingRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM airbnb`).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

// listingSortExpr resolves a whitelisted document key to a JSONB accessor.
// Keys are embedded as literals only after the whitelist check.
func listingSortExpr(field string) (string, bool) {
	if _, ok := domain.ListingSortFields[field]; !ok {
		return "", false
	}
	if field == "_id" {
		return "oid", true
	}
	return fmt.Sprintf("doc->>'%s'", field), true
}

func scanListing(row pgx.Row) (*domain.Listing, error) {
	var (
		oid string
		doc []byte
	)
	if err := row.Scan(&oid, &doc); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrListingNotFound
		}
		return nil, err
	}
	var listing domain.Listing
	if err := json.Unmarshal(doc, &listing); err != nil {
		return nil, fmt.Errorf("decode listing %s: %w", oid, err)
	}
	listing.OID = oid
	if listing.Images == nil {
		listing.Images = []string{}
	}
	return &listing, nil
}
