package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/spec-kit/records-service/internal/domain"
	"github.com/spec-kit/records-service/internal/events"
	"github.com/spec-kit/records-service/internal/repository"
)

// MockEmployeeRepository is a mock implementation of repository.EmployeeRepository.
type MockEmployeeRepository struct {
	mock.Mock
}

func (m *MockEmployeeRepository) Create(ctx context.Context, emp *domain.Employee) error {
	return m.Called(ctx, emp).Error(0)
}

func (m *MockEmployeeRepository) GetByID(ctx context.Context, id string) (*domain.Employee, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) Update(ctx context.Context, emp *domain.Employee) error {
	return m.Called(ctx, emp).Error(0)
}

func (m *MockEmployeeRepository) Delete(ctx context.Context, id string) (*domain.Employee, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) List(ctx context.Context, filter repository.EmployeeFilter) ([]domain.Employee, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) Count(ctx context.Context, filter repository.EmployeeFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockListingRepository is a mock implementation of repository.ListingRepository.
type MockListingRepository struct {
	mock.Mock
}

func (m *MockListingRepository) listing(args mock.Arguments) (*domain.Listing, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Listing), args.Error(1)
}

func (m *MockListingRepository) Create(ctx context.Context, listing *domain.Listing) error {
	return m.Called(ctx, listing).Error(0)
}

func (m *MockListingRepository) FindByAppID(ctx context.Context, id string) (*domain.Listing, error) {
	return m.listing(m.Called(ctx, id))
}

func (m *MockListingRepository) FindByOID(ctx context.Context, oid string) (*domain.Listing, error) {
	return m.listing(m.Called(ctx, oid))
}

func (m *MockListingRepository) UpdateByAppID(ctx context.Context, id string, patch map[string]any) (*domain.Listing, error) {
	return m.listing(m.Called(ctx, id, patch))
}

func (m *MockListingRepository) UpdateByOID(ctx context.Context, oid string, patch map[string]any) (*domain.Listing, error) {
	return m.listing(m.Called(ctx, oid, patch))
}

func (m *MockListingRepository) DeleteByAppID(ctx context.Context, id string) (*domain.Listing, error) {
	return m.listing(m.Called(ctx, id))
}

func (m *MockListingRepository) DeleteByOID(ctx context.Context, oid string) (*domain.Listing, error) {
	return m.listing(m.Called(ctx, oid))
}

func (m *MockListingRepository) List(ctx context.Context, filter repository.ListingFilter) ([]domain.Listing, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Listing), args.Error(1)
}

func (m *MockListingRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockListingCache is a mock implementation of cache.ListingCache.
type MockListingCache struct {
	mock.Mock
}

func (m *MockListingCache) Lookup(ctx context.Context, key string) (*domain.Listing, bool) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Bool(1)
	}
	return args.Get(0).(*domain.Listing), args.Bool(1)
}

func (m *MockListingCache) Store(ctx context.Context, key string, listing *domain.Listing) {
	m.Called(ctx, key, listing)
}

func (m *MockListingCache) Evict(ctx context.Context, oid string) {
	m.Called(ctx, oid)
}

func (m *MockListingCache) EvictKey(ctx context.Context, key string) {
	m.Called(ctx, key)
}

// recordingDispatcher keeps published events.
type recordingDispatcher struct {
	published []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.published = append(d.published, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (d *recordingDispatcher) types() []events.EventType {
	out := make([]events.EventType, 0, len(d.published))
	for _, e := range d.published {
		out = append(out, e.Type)
	}
	return out
}
