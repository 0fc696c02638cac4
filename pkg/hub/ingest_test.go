package hub

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"devicerelay.xyz/device-relay-service/pkg/common"
	"devicerelay.xyz/device-relay-service/pkg/hub/mocks"
	_ "devicerelay.xyz/device-relay-service/pkg/testing"
)

func TestIngestBatchRoundTrip(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, hubInstance, _, _ := GetMockHubWithMemorySqliteDialector(t, false, false)
	defer ctrl.Finish()

	ctx := context.Background()
	deviceID := uuid.NewString()

	err := hubInstance.Ingest.IngestBatch(ctx, deviceID, CategorySMS, []any{
		map[string]any{"from": "111", "text": "hi"},
	})
	require.NoError(t, err)

	blob, err := hubInstance.Ingest.GetRecords(ctx, deviceID, CategorySMS)
	require.NoError(t, err)

	var seq []any
	require.NoError(t, json.Unmarshal(blob, &seq))
	assert.Len(t, seq, 1)
}

func TestIngestLocationUpdatesRegistry(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, hubInstance, _, _ := GetMockHubWithMemorySqliteDialector(t, false, false)
	defer ctrl.Finish()

	deviceID := uuid.NewString()

	err := hubInstance.Ingest.IngestBatch(context.Background(), deviceID, CategoryLocation, []any{
		map[string]any{"lat": 12.5, "lon": -7.25, "accuracy": 3.0},
	})
	require.NoError(t, err)

	status := hubInstance.Registry.GetStatus(deviceID)
	assert.Equal(t, 12.5, status.Attributes["lat"])
	assert.Equal(t, -7.25, status.Attributes["lon"])
	assert.True(t, status.Online, "a location fix counts as liveness")
}

func TestIngestStorageUnavailable(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := mocks.NewMockStore(ctrl)
	mockRegistry := mocks.NewMockIRegistry(ctrl)

	hubInstance := New(mockStore, DefaultConfig())
	hubInstance.WithServices(ServiceOpts{
		Registry: mockRegistry,
		Ingest:   hubInstance.GetIIngest(),
	})

	mockStore.
		EXPECT().
		Get(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, errors.New("disk on fire"))

	// the failed batch must not touch registry state
	mockRegistry.EXPECT().UpdateLocation(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	err := hubInstance.Ingest.IngestBatch(context.Background(), uuid.NewString(), CategoryLocation, []any{
		map[string]any{"lat": 1.0, "lon": 2.0},
	})
	require.Error(t, err)
}

func TestIngestPutFailureSurfaced(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := mocks.NewMockStore(ctrl)

	hubInstance := New(mockStore, DefaultConfig())
	hubInstance.WithServices(ServiceOpts{Ingest: hubInstance.GetIIngest()})

	mockStore.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("unreachable"))

	err := hubInstance.Ingest.IngestBatch(context.Background(), "x1", CategorySMS, []any{"m"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read records")
}

func TestGetRecordsMissingKeyIsEmptySequence(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, hubInstance, _, _ := GetMockHubWithMemorySqliteDialector(t, false, false)
	defer ctrl.Finish()

	blob, err := hubInstance.Ingest.GetRecords(context.Background(), uuid.NewString(), CategoryContacts)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(blob))
}

func TestIngestConcurrentSameKeySerialized(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, hubInstance, _, _ := GetMockHubWithMemorySqliteDialector(t, false, false)
	defer ctrl.Finish()

	ctx := context.Background()
	deviceID := uuid.NewString()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			err := hubInstance.Ingest.IngestBatch(ctx, deviceID, CategoryNotifications, []any{n})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	blob, err := hubInstance.Ingest.GetRecords(ctx, deviceID, CategoryNotifications)
	require.NoError(t, err)

	var seq []any
	require.NoError(t, json.Unmarshal(blob, &seq))
	assert.Len(t, seq, 20, "no update may be lost to an interleaved read-modify-write")
}
