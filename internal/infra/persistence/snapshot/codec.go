// Package snapshot serializes store state as one JSON array per collection,
// the external schema shared by all durable backends.
package snapshot

import (
	"encoding/json"
	"fmt"

	"cellarcore/pkg/domain"
)

// Collections fixes the persisted collection names and write order.
var Collections = []string{
	"customers",
	"deliveryLocations",
	"products",
	"orders",
	"deliveries",
	"cellarStock",
	"usageRecords",
	"activities",
	"discountRules",
	"invoices",
	"notices",
}

// Encode marshals each collection of the snapshot to its JSON payload.
func Encode(snap domain.Snapshot) (map[string][]byte, error) {
	collections := map[string]any{
		"customers":         emptySlice(snap.Customers),
		"deliveryLocations": emptySlice(snap.DeliveryLocations),
		"products":          emptySlice(snap.Products),
		"orders":            emptySlice(snap.Orders),
		"deliveries":        emptySlice(snap.Deliveries),
		"cellarStock":       emptySlice(snap.CellarStock),
		"usageRecords":      emptySlice(snap.UsageRecords),
		"activities":        emptySlice(snap.Activities),
		"discountRules":     emptySlice(snap.DiscountRules),
		"invoices":          emptySlice(snap.Invoices),
		"notices":           emptySlice(snap.Notices),
	}
	payloads := make(map[string][]byte, len(collections))
	for name, records := range collections {
		payload, err := json.Marshal(records)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", name, err)
		}
		payloads[name] = payload
	}
	return payloads, nil
}

// Decode rebuilds a snapshot from per-collection payloads. Unknown
// collection names are ignored; missing ones decode as empty.
func Decode(payloads map[string][]byte) (domain.Snapshot, error) {
	var snap domain.Snapshot
	for name, payload := range payloads {
		if err := DecodeCollection(&snap, name, payload); err != nil {
			return domain.Snapshot{}, err
		}
	}
	return snap, nil
}

// DecodeCollection unmarshals one collection payload into the snapshot,
// leaving every other collection untouched. Callers that tolerate corrupt
// state per collection decode each payload separately through this.
func DecodeCollection(snap *domain.Snapshot, name string, payload []byte) error {
	targets := map[string]any{
		"customers":         &snap.Customers,
		"deliveryLocations": &snap.DeliveryLocations,
		"products":          &snap.Products,
		"orders":            &snap.Orders,
		"deliveries":        &snap.Deliveries,
		"cellarStock":       &snap.CellarStock,
		"usageRecords":      &snap.UsageRecords,
		"activities":        &snap.Activities,
		"discountRules":     &snap.DiscountRules,
		"invoices":          &snap.Invoices,
		"notices":           &snap.Notices,
	}
	target, ok := targets[name]
	if !ok || len(payload) == 0 {
		return nil
	}
	if err := json.Unmarshal(payload, target); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}

// emptySlice keeps persisted payloads as [] instead of null.
func emptySlice[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return in
}
