package models

import "time"

// Attributes is the open telemetry mapping carried by heartbeats. Fields are
// independently optional; a missing field never erases a previously reported
// value (merge-by-field happens in the registry).
type Attributes map[string]any

// DeviceStatus is the read-side snapshot of a device. LastSeenAt is nil for
// devices that have never reported.
type DeviceStatus struct {
	ID         string     `json:"id"`
	Attributes Attributes `json:"attributes"`
	LastSeenAt *time.Time `json:"last_seen_at"`
	Online     bool       `json:"online"`
}

// RecordBlob is one stored blob per (device, category). The whole blob is
// overwritten on every write; the reconciliation engine computes the full
// next value before it reaches the store.
type RecordBlob struct {
	Key       string `gorm:"primaryKey"`
	DeviceID  string `gorm:"index"`
	Category  string `gorm:"index"`
	Data      []byte
	UpdatedAt time.Time
}
