package hub

import (
	"testing"

	"go.uber.org/mock/gomock"

	"devicerelay.xyz/device-relay-service/pkg/db"
	"devicerelay.xyz/device-relay-service/pkg/hub/mocks"
	"devicerelay.xyz/device-relay-service/pkg/store"
)

func GetMockHubWithMemorySqliteDialector(t *testing.T, useMockRegistry, useMockIngest bool) (
	*gomock.Controller,
	*Hub,
	*mocks.MockIRegistry,
	*mocks.MockIIngest,
) {
	ctrl := gomock.NewController(t)

	mockRegistry := mocks.NewMockIRegistry(ctrl)
	mockIngest := mocks.NewMockIIngest(ctrl)

	records := store.NewGormStore(db.GetInstance(db.UseMemorySqliteDialector()))
	hubInstance := New(records, DefaultConfig())

	registryService := hubInstance.GetIRegistry()
	if useMockRegistry {
		registryService = mockRegistry
	}

	ingestService := hubInstance.GetIIngest()
	if useMockIngest {
		ingestService = mockIngest
	}

	hubInstance.WithServices(ServiceOpts{
		Registry: registryService,
		Ingest:   ingestService,
	})

	return ctrl, hubInstance, mockRegistry, mockIngest
}
