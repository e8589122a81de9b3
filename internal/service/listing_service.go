package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/records-service/internal/cache"
	"github.com/spec-kit/records-service/internal/domain"
	"github.com/spec-kit/records-service/internal/events"
	"github.com/spec-kit/records-service/internal/repository"
	apperrors "github.com/spec-kit/records-service/pkg/util/errorutil"
)

// DefaultListingSort orders listings when no sort is requested.
const DefaultListingSort = "price"

// ListingService coordinates listing workflows and dual-key resolution.
type ListingService struct {
	listings   repository.ListingRepository
	cache      cache.ListingCache
	dispatcher events.Dispatcher
	pagination Pagination
	logger     *zap.Logger
}

// ListingDependencies bundles collaborators for the listing service.
type ListingDependencies struct {
	ListingRepo repository.ListingRepository
	Cache       cache.ListingCache
	Dispatcher  events.Dispatcher
	Pagination  Pagination
	Logger      *zap.Logger
}

// ListingListQuery carries list parameters.
type ListingListQuery struct {
	Page  int
	Limit int
	Sort  string
}

// ListingPage is one page of listings.
type ListingPage struct {
	PageInfo
	Items []domain.Listing
}

type listingCandidate struct {
	Name  string `json:"NAME" validate:"required"`
	Price string `json:"price" validate:"required"`
}

// NewListingService constructs the service.
func NewListingService(deps ListingDependencies) *ListingService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	listingCache := deps.Cache
	if listingCache == nil {
		listingCache = cache.NoopListingCache{}
	}
	return &ListingService{
		listings:   deps.ListingRepo,
		cache:      listingCache,
		dispatcher: deps.Dispatcher,
		pagination: deps.Pagination,
		logger:     logger,
	}
}

// List returns a sorted page of listings.
func (s *ListingService) List(ctx context.Context, query ListingListQuery) (*ListingPage, error) {
	sort, err := ParseSort(query.Sort, domain.ListingSortFields, DefaultListingSort)
	if err != nil {
		return nil, err
	}
	page := s.pagination.Normalize(query.Page, query.Limit)

	items, err := s.listings.List(ctx, repository.ListingFilter{
		Sort:   sort,
		Limit:  page.Limit,
		Offset: page.Offset(),
	})
	if err != nil {
		return nil, err
	}
	total, err := s.listings.Count(ctx)
	if err != nil {
		return nil, err
	}
	return &ListingPage{PageInfo: NewPageInfo(page, len(items), total), Items: items}, nil
}

// Get resolves key by application id first, then by system id.
func (s *ListingService) Get(ctx context.Context, key string) (*domain.Listing, error) {
	key = strings.TrimSpace(key)
	if listing, ok := s.cache.Lookup(ctx, key); ok {
		return listing, nil
	}
	listing, err := resolveDualKey(ctx, s.logger, key, domain.ErrListingNotFound,
		s.listings.FindByAppID, s.listings.FindByOID)
	if err != nil {
		return nil, listingError(err, key)
	}
	s.cache.Store(ctx, key, listing)
	return listing, nil
}

// Create stores a new listing. NAME and price are required.
func (s *ListingService) Create(ctx context.Context, input map[string]any) (*domain.Listing, error) {
	fields, err := NormalizeListingFields(input)
	if err != nil {
		return nil, err
	}
	listing, err := listingFromFields(fields)
	if err != nil {
		return nil, err
	}
	if err := validate.Struct(listingCandidate{Name: listing.Name, Price: listing.Price}); err != nil {
		return nil, validationError("NAME and price are required fields", err)
	}

	listing.OID = domain.NewObjectID()
	if err := s.listings.Create(ctx, listing); err != nil {
		return nil, err
	}
	s.evictAppID(ctx, listing.ID)
	s.publishEvent(ctx, events.EventListingCreated, listing, nil)
	return listing, nil
}

// Update merges input into the listing resolved from key. The application id
// mutation is attempted first; the system id mutation runs only when it
// matched nothing.
func (s *ListingService) Update(ctx context.Context, key string, input map[string]any) (*domain.Listing, error) {
	patch, err := NormalizeListingFields(input)
	if err != nil {
		return nil, err
	}
	key = strings.TrimSpace(key)
	listing, err := resolveDualKey(ctx, s.logger, key, domain.ErrListingNotFound,
		func(ctx context.Context, id string) (*domain.Listing, error) {
			return s.listings.UpdateByAppID(ctx, id, patch)
		},
		func(ctx context.Context, oid string) (*domain.Listing, error) {
			return s.listings.UpdateByOID(ctx, oid, patch)
		})
	if err != nil {
		return nil, listingError(err, key)
	}

	s.cache.Evict(ctx, listing.OID)
	s.evictAppID(ctx, listing.ID)
	s.publishEvent(ctx, events.EventListingUpdated, listing, fieldNames(patch))
	return listing, nil
}

// Delete removes the listing resolved from key and returns it.
func (s *ListingService) Delete(ctx context.Context, key string) (*domain.Listing, error) {
	key = strings.TrimSpace(key)
	listing, err := resolveDualKey(ctx, s.logger, key, domain.ErrListingNotFound,
		s.listings.DeleteByAppID, s.listings.DeleteByOID)
	if err != nil {
		return nil, listingError(err, key)
	}

	s.cache.Evict(ctx, listing.OID)
	s.publishEvent(ctx, events.EventListingDeleted, listing, nil)
	return listing, nil
}

// evictAppID drops any cached resolution that a listing now carrying id
// would take over.
func (s *ListingService) evictAppID(ctx context.Context, id string) {
	if id == "" {
		return
	}
	s.cache.EvictKey(ctx, id)
}

func listingError(err error, key string) error {
	if errors.Is(err, domain.ErrListingNotFound) {
		return apperrors.NewNotFound("Listing", map[string]any{"id": key})
	}
	return err
}

func (s *ListingService) publishEvent(ctx context.Context, eventType events.EventType, listing *domain.Listing, fields []string) {
	if s.dispatcher == nil {
		return
	}
	event := events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Resource:  events.ResourceListing,
		RecordID:  listing.OID,
		Timestamp: time.Now().UTC(),
		Payload: events.ListingChangedPayload{
			AppID:  listing.ID,
			Name:   listing.Name,
			Fields: fields,
		},
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("event handler failed", zap.String("event_type", string(eventType)), zap.Error(err))
	}
}
