package worker

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/records-service/internal/events"
	"github.com/spec-kit/records-service/internal/observability"
	"github.com/spec-kit/records-service/internal/service"
)

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, messageID, messageType string, body []byte) error {
	return m.Called(ctx, messageID, messageType, body).Error(0)
}

func TestEventRelayPublishesRecordEvents(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()
	publisher := new(MockPublisher)
	StartEventRelay(dispatcher, publisher)

	var body []byte
	publisher.On("Publish", mock.Anything, "evt-1", "listing_deleted", mock.Anything).
		Run(func(args mock.Arguments) { body = args.Get(3).([]byte) }).
		Return(nil).Once()

	err := dispatcher.Publish(context.Background(), events.Event{
		ID:       "evt-1",
		Type:     events.EventListingDeleted,
		Resource: events.ResourceListing,
		RecordID: "65a1f0c2e4b0a1b2c3d4e5f6",
	})
	require.NoError(t, err)
	publisher.AssertExpectations(t)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(body, &decoded))
	assert.Equal(t, "listing", decoded["resource"])
	assert.Equal(t, "65a1f0c2e4b0a1b2c3d4e5f6", decoded["record_id"])
}

func TestEventRelaySurfacesPublishFailure(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()
	publisher := new(MockPublisher)
	StartEventRelay(dispatcher, publisher)

	broken := errors.New("channel closed")
	publisher.On("Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(broken).Once()

	err := dispatcher.Publish(context.Background(), events.Event{ID: "evt-2", Type: events.EventEmployeeCreated})
	assert.ErrorIs(t, err, broken)
}

func TestStartEventRelayWithoutPublisher(t *testing.T) {
	StartEventRelay(events.NewInMemoryDispatcher(), nil)
	StartEventRelay(nil, new(MockPublisher))
}

func TestAuditWorkerCountsEvents(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()
	metrics := observability.NewMetrics()
	StartAuditWorker(service.NewAuditService(dispatcher, zap.NewNop(), metrics))
	StartAuditWorker(nil)

	for _, eventType := range []events.EventType{events.EventEmployeeCreated, events.EventEmployeeCreated, events.EventListingUpdated} {
		require.NoError(t, dispatcher.Publish(context.Background(), events.Event{Type: eventType}))
	}

	snap := metrics.Snapshot()
	assert.Equal(t, int64(2), snap.Events["employee_created"])
	assert.Equal(t, int64(1), snap.Events["listing_updated"])
}
