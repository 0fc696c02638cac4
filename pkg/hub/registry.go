package hub

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"devicerelay.xyz/device-relay-service/pkg/common"
	"devicerelay.xyz/device-relay-service/pkg/models"
)

type deviceRecord struct {
	id             string
	attrs          models.Attributes
	lastSeenAt     time.Time
	pendingCommand string
}

// DeviceRegistry is the in-memory device map plus the single-slot command
// mailbox. Records are created lazily and never removed; liveness is derived
// from lastSeenAt at read time, so stale entries self-heal without teardown.
// Unbounded growth over process lifetime is an accepted trade-off of the
// single-instance design.
type DeviceRegistry struct {
	mu      sync.RWMutex
	devices map[string]*deviceRecord
	window  time.Duration
	now     func() time.Time
}

func NewDeviceRegistry(window time.Duration) *DeviceRegistry {
	if window <= 0 {
		window = time.Duration(common.DefaultLivenessWindowSeconds) * time.Second
	}
	return &DeviceRegistry{
		devices: make(map[string]*deviceRecord),
		window:  window,
		now:     time.Now,
	}
}

func (r *DeviceRegistry) getOrCreateLocked(id string) *deviceRecord {
	rec, exists := r.devices[id]
	if !exists {
		rec = &deviceRecord{id: id, attrs: make(models.Attributes)}
		r.devices[id] = rec
	}
	return rec
}

// ReportHeartbeat merges non-null telemetry fields, stamps lastSeenAt, and
// reads-and-clears the pending command in the same critical section as
// QueueCommand's write. A command queued after the clear survives for the
// next heartbeat; one queued before is returned exactly once.
func (r *DeviceRegistry) ReportHeartbeat(deviceID string, attrs models.Attributes) string {
	id := common.NormalizeDeviceID(deviceID)

	r.mu.Lock()
	defer r.mu.Unlock()

	rec := r.getOrCreateLocked(id)
	for field, value := range attrs {
		if value != nil {
			rec.attrs[field] = value
		}
	}
	rec.lastSeenAt = r.now()

	command := rec.pendingCommand
	rec.pendingCommand = ""
	return command
}

// QueueCommand arms the mailbox, creating the record if the device has never
// reported. Last writer wins; an unpolled earlier command is discarded.
func (r *DeviceRegistry) QueueCommand(deviceID string, command string) {
	id := common.NormalizeDeviceID(deviceID)

	r.mu.Lock()
	defer r.mu.Unlock()

	r.getOrCreateLocked(id).pendingCommand = command
}

func (r *DeviceRegistry) statusLocked(rec *deviceRecord) models.DeviceStatus {
	attrs := make(models.Attributes, len(rec.attrs))
	for field, value := range rec.attrs {
		attrs[field] = value
	}

	status := models.DeviceStatus{
		ID:         rec.id,
		Attributes: attrs,
	}
	if !rec.lastSeenAt.IsZero() {
		lastSeen := rec.lastSeenAt
		status.LastSeenAt = &lastSeen
		status.Online = r.now().Sub(lastSeen) < r.window
	}
	return status
}

// GetStatus never errors: an unknown device yields an offline, never-seen
// snapshot.
func (r *DeviceRegistry) GetStatus(deviceID string) models.DeviceStatus {
	id := common.NormalizeDeviceID(deviceID)

	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, exists := r.devices[id]
	if !exists {
		return models.DeviceStatus{ID: id, Attributes: models.Attributes{}}
	}
	return r.statusLocked(rec)
}

func (r *DeviceRegistry) ListAll() map[string]models.DeviceStatus {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make(map[string]models.DeviceStatus, len(r.devices))
	for id, rec := range r.devices {
		all[id] = r.statusLocked(rec)
	}
	return all
}

// UpdateLocation is the secondary write performed by location batches. A
// location fix proves the device is alive, so lastSeenAt is stamped too.
func (r *DeviceRegistry) UpdateLocation(deviceID string, lat float64, lon float64) {
	id := common.NormalizeDeviceID(deviceID)

	r.mu.Lock()
	defer r.mu.Unlock()

	rec := r.getOrCreateLocked(id)
	rec.attrs["lat"] = lat
	rec.attrs["lon"] = lon
	rec.lastSeenAt = r.now()
}

func (h *Hub) reportHeartbeat(deviceID string, attrs models.Attributes) string {
	logger := common.GetLoggerWith(
		common.LoggerNameHubCore,
		zap.String(common.LoggerFieldHubCategory, common.LoggerCategoryRegistry),
	)

	command := h.devices.ReportHeartbeat(deviceID, attrs)

	logger.Debug("Heartbeat for device",
		zap.String("device_id", common.NormalizeDeviceID(deviceID)),
		zap.String("command", command))

	return command
}

func (h *Hub) queueCommand(deviceID string, command string) {
	logger := common.GetLoggerWith(
		common.LoggerNameHubCore,
		zap.String(common.LoggerFieldHubCategory, common.LoggerCategoryRegistry),
	)

	h.devices.QueueCommand(deviceID, command)

	logger.Info("Queued command for device",
		zap.String("device_id", common.NormalizeDeviceID(deviceID)),
		zap.String("command", command))
}

type IRegistryImpl struct {
	hub *Hub
}

func (ir *IRegistryImpl) ReportHeartbeat(deviceID string, attrs models.Attributes) string {
	return ir.hub.reportHeartbeat(deviceID, attrs)
}

func (ir *IRegistryImpl) QueueCommand(deviceID string, command string) {
	ir.hub.queueCommand(deviceID, command)
}

func (ir *IRegistryImpl) GetStatus(deviceID string) models.DeviceStatus {
	return ir.hub.devices.GetStatus(deviceID)
}

func (ir *IRegistryImpl) ListAll() map[string]models.DeviceStatus {
	return ir.hub.devices.ListAll()
}

func (ir *IRegistryImpl) UpdateLocation(deviceID string, lat float64, lon float64) {
	ir.hub.devices.UpdateLocation(deviceID, lat, lon)
}

func (h *Hub) GetIRegistry() IRegistry {
	return &IRegistryImpl{hub: h}
}
