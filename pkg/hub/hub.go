package hub

import (
	"context"
	"time"

	"devicerelay.xyz/device-relay-service/pkg/common"
	"devicerelay.xyz/device-relay-service/pkg/models"
	"devicerelay.xyz/device-relay-service/pkg/store"
)

type IRegistry interface {
	ReportHeartbeat(deviceID string, attrs models.Attributes) string
	QueueCommand(deviceID string, command string)
	GetStatus(deviceID string) models.DeviceStatus
	ListAll() map[string]models.DeviceStatus
	UpdateLocation(deviceID string, lat float64, lon float64)
}

type IIngest interface {
	IngestBatch(ctx context.Context, deviceID string, category string, payload any) error
	GetRecords(ctx context.Context, deviceID string, category string) ([]byte, error)
}

type Config struct {
	// LivenessWindow bounds how stale lastSeenAt may be for a device to
	// still count as online.
	LivenessWindow time.Duration
	// AppendCap bounds new-first capped categories (sms, notifications).
	AppendCap int
	// ChatLogCap bounds chat_logs; trimming drops the oldest entries.
	ChatLogCap int
}

func DefaultConfig() Config {
	return Config{
		LivenessWindow: time.Duration(common.DefaultLivenessWindowSeconds) * time.Second,
		AppendCap:      common.DefaultAppendCap,
		ChatLogCap:     common.DefaultChatLogCap,
	}
}

// Hub owns the in-memory device registry and the reconciliation path in
// front of the record store. Live state is process-local; only record blobs
// are durable.
type Hub struct {
	Records  store.Store
	Registry IRegistry
	Ingest   IIngest

	cfg     Config
	devices *DeviceRegistry
	keys    *keyedMutex
}

func New(records store.Store, cfg Config) *Hub {
	if cfg.AppendCap <= 0 {
		cfg.AppendCap = common.DefaultAppendCap
	}
	if cfg.ChatLogCap <= 0 {
		cfg.ChatLogCap = common.DefaultChatLogCap
	}
	return &Hub{
		Records: records,
		cfg:     cfg,
		devices: NewDeviceRegistry(cfg.LivenessWindow),
		keys:    newKeyedMutex(),
	}
}

type ServiceOpts struct {
	Registry IRegistry
	Ingest   IIngest
}

func (h *Hub) WithServices(opts ServiceOpts) *Hub {
	if opts.Registry != nil {
		h.Registry = opts.Registry
	}
	if opts.Ingest != nil {
		h.Ingest = opts.Ingest
	}
	return h
}
