package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/spec-kit/records-service/internal/domain"
)

// MemoryListingRepository is an in-memory implementation of ListingRepository.
// Documents are held in their encoded form so patches merge the same way the
// JSONB store does.
type MemoryListingRepository struct {
	mu   sync.RWMutex
	docs map[string]map[string]any
}

// NewMemoryListingRepository creates an empty repository.
func NewMemoryListingRepository() *MemoryListingRepository {
	return &MemoryListingRepository{docs: make(map[string]map[string]any)}
}

func (r *MemoryListingRepository) Create(_ context.Context, listing *domain.Listing) error {
	doc, err := listingToDoc(listing)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.docs[listing.OID]; exists {
		return fmt.Errorf("listing %s already exists", listing.OID)
	}
	r.docs[listing.OID] = doc
	return nil
}

func (r *MemoryListingRepository) FindByAppID(_ context.Context, id string) (*domain.Listing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	oid, ok := r.oidForAppID(id)
	if !ok {
		return nil, domain.ErrListingNotFound
	}
	return docToListing(oid, r.docs[oid])
}

func (r *MemoryListingRepository) FindByOID(_ context.Context, oid string) (*domain.Listing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	doc, ok := r.docs[oid]
	if !ok {
		return nil, domain.ErrListingNotFound
	}
	return docToListing(oid, doc)
}

func (r *MemoryListingRepository) UpdateByAppID(_ context.Context, id string, patch map[string]any) (*domain.Listing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	oid, ok := r.oidForAppID(id)
	if !ok {
		return nil, domain.ErrListingNotFound
	}
	return r.merge(oid, patch)
}

func (r *MemoryListingRepository) UpdateByOID(_ context.Context, oid string, patch map[string]any) (*domain.Listing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.docs[oid]; !ok {
		return nil, domain.ErrListingNotFound
	}
	return r.merge(oid, patch)
}

func (r *MemoryListingRepository) DeleteByAppID(_ context.Context, id string) (*domain.Listing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	oid, ok := r.oidForAppID(id)
	if !ok {
		return nil, domain.ErrListingNotFound
	}
	return r.remove(oid)
}

func (r *MemoryListingRepository) DeleteByOID(_ context.Context, oid string) (*domain.Listing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.docs[oid]; !ok {
		return nil, domain.ErrListingNotFound
	}
	return r.remove(oid)
}

func (r *MemoryListingRepository) List(_ context.Context, filter ListingFilter) ([]domain.Listing, error) {
	for _, s := range filter.Sort {
		if _, ok := domain.ListingSortFields[s.Field]; !ok {
			return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedSortField, s.Field)
		}
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	oids := make([]string, 0, len(r.docs))
	for oid := range r.docs {
		oids = append(oids, oid)
	}
	sort.SliceStable(oids, func(i, j int) bool {
		for _, s := range filter.Sort {
			c := strings.Compare(docField(oids[i], r.docs[oids[i]], s.Field), docField(oids[j], r.docs[oids[j]], s.Field))
			if c == 0 {
				continue
			}
			if s.Desc {
				return c > 0
			}
			return c < 0
		}
		return oids[i] < oids[j]
	})

	page := paginate(oids, filter.Offset, filter.Limit)
	result := make([]domain.Listing, 0, len(page))
	for _, oid := range page {
		listing, err := docToListing(oid, r.docs[oid])
		if err != nil {
			return nil, err
		}
		result = append(result, *listing)
	}
	return result, nil
}

func (r *MemoryListingRepository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.docs)), nil
}

// oidForAppID returns the smallest system id carrying the application id.
// Callers hold the lock.
func (r *MemoryListingRepository) oidForAppID(id string) (string, bool) {
	found := ""
	for oid, doc := range r.docs {
		if appID, _ := doc["id"].(string); appID == "" || appID != id {
			continue
		}
		if found == "" || oid < found {
			found = oid
		}
	}
	return found, found != ""
}

func (r *MemoryListingRepository) merge(oid string, patch map[string]any) (*domain.Listing, error) {
	doc := r.docs[oid]
	merged := make(map[string]any, len(doc)+len(patch))
	for k, v := range doc {
		merged[k] = v
	}
	for k, v := range patch {
		merged[k] = v
	}
	listing, err := docToListing(oid, merged)
	if err != nil {
		return nil, err
	}
	r.docs[oid] = merged
	return listing, nil
}

func (r *MemoryListingRepository) remove(oid string) (*domain.Listing, error) {
	listing, err := docToListing(oid, r.docs[oid])
	if err != nil {
		return nil, err
	}
	delete(r.docs, oid)
	return listing, nil
}

func docField(oid string, doc map[string]any, field string) string {
	if field == "_id" {
		return oid
	}
	if v, ok := doc[field].(string); ok {
		return v
	}
	return ""
}

func listingToDoc(listing *domain.Listing) (map[string]any, error) {
	raw, err := json.Marshal(listing)
	if err != nil {
		return nil, fmt.Errorf("encode listing: %w", err)
	}
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("encode listing: %w", err)
	}
	return doc, nil
}

func docToListing(oid string, doc map[string]any) (*domain.Listing, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("decode listing %s: %w", oid, err)
	}
	var listing domain.Listing
	if err := json.Unmarshal(raw, &listing); err != nil {
		return nil, fmt.Errorf("decode listing %s: %w", oid, err)
	}
	listing.OID = oid
	if listing.Images == nil {
		listing.Images = []string{}
	}
	return &listing, nil
}
