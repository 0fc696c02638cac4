package hub

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"devicerelay.xyz/device-relay-service/pkg/common"
	"devicerelay.xyz/device-relay-service/pkg/store"
)

// keyedMutex serializes read-modify-write cycles per blob key so two
// concurrent uploads of the same (device, category) cannot lose updates.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[string]*sync.Mutex)}
}

func (k *keyedMutex) get(key string) *sync.Mutex {
	k.mu.Lock()
	defer k.mu.Unlock()

	lock, exists := k.locks[key]
	if !exists {
		lock = &sync.Mutex{}
		k.locks[key] = lock
	}
	return lock
}

func (h *Hub) ingestBatch(ctx context.Context, deviceID string, category string, payload any) error {
	id := common.NormalizeDeviceID(deviceID)

	logger := common.GetLoggerWith(
		common.LoggerNameHubCore,
		zap.String(common.LoggerFieldHubCategory, common.LoggerCategoryIngest),
	)

	lock := h.keys.get(store.Key(id, category))
	lock.Lock()
	defer lock.Unlock()

	existing, err := h.Records.Get(ctx, id, category)
	if errors.Is(err, store.ErrNotFound) {
		existing = nil
	} else if err != nil {
		return fmt.Errorf("read records for %s/%s: %w", id, category, err)
	}

	blob, geo, err := Reconcile(category, payload, existing, h.cfg, time.Now())
	if err != nil {
		return fmt.Errorf("reconcile %s/%s: %w", id, category, err)
	}

	if err := h.Records.Put(ctx, id, category, blob); err != nil {
		return fmt.Errorf("persist records for %s/%s: %w", id, category, err)
	}

	if geo != nil && h.Registry != nil {
		h.Registry.UpdateLocation(id, geo.Lat, geo.Lon)
	}

	logger.Info("Stored batch for device",
		zap.String("device_id", id),
		zap.String("batch_category", category),
		zap.Int("blob_bytes", len(blob)))

	return nil
}

func (h *Hub) getRecords(ctx context.Context, deviceID string, category string) ([]byte, error) {
	id := common.NormalizeDeviceID(deviceID)

	blob, err := h.Records.Get(ctx, id, category)
	if errors.Is(err, store.ErrNotFound) {
		// dashboards always expect a displayable result
		return []byte("[]"), nil
	}
	return blob, err
}

type IIngestImpl struct {
	hub *Hub
}

func (ii *IIngestImpl) IngestBatch(ctx context.Context, deviceID string, category string, payload any) error {
	return ii.hub.ingestBatch(ctx, deviceID, category, payload)
}

func (ii *IIngestImpl) GetRecords(ctx context.Context, deviceID string, category string) ([]byte, error) {
	return ii.hub.getRecords(ctx, deviceID, category)
}

func (h *Hub) GetIIngest() IIngest {
	return &IIngestImpl{hub: h}
}
