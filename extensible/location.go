// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package extensible

import (
	"github.com/bureau-foundation/extevents/lib/namespace"
	"github.com/bureau-foundation/extevents/lib/validate"
)

var (
	// LocationType carries a geo URI and an optional description.
	LocationType = namespace.MustNewUnstable("m.location", "org.matrix.msc3488.location")

	// AssetType says what the location describes.
	AssetType = namespace.MustNewUnstable("m.asset", "org.matrix.msc3488.asset")

	// TimestampType is when the location was accurate, in milliseconds
	// since the Unix epoch.
	TimestampType = namespace.MustNewUnstable("m.ts", "org.matrix.msc3488.ts")
)

// LocationAssetType is the value of an m.asset block's type.
type LocationAssetType string

const (
	// AssetSelf is the sender's own location.
	AssetSelf LocationAssetType = "m.self"
	// AssetSelfLive is the sender's location, shared live.
	AssetSelfLive LocationAssetType = "m.self.live"
	// AssetPin is a location that is not the sender's.
	AssetPin LocationAssetType = "m.location"
)

// LocationEvent shares a location.
type LocationEvent struct {
	wired

	GeoURI      string
	Description string
	AssetType   LocationAssetType

	// Timestamp is 0 when the event carries none.
	Timestamp int64

	Text string
}

// NewLocationEvent interprets partial as a location. Namespaced fields
// win over the legacy geo_uri and body fields.
func NewLocationEvent(partial PartialEvent) (*LocationEvent, error) {
	content := partial.Content
	locationValue, _ := LocationType.FindIn(content)
	location, _ := validate.AsObject(locationValue)

	event := &LocationEvent{wired: wired{wire: partial}, AssetType: AssetSelf}

	event.GeoURI, _ = location["uri"].(string)
	if event.GeoURI == "" {
		event.GeoURI, _ = content["geo_uri"].(string)
	}
	if event.GeoURI == "" {
		return nil, invalid(LocationType.Stable(), "Location must have a geo URI")
	}
	event.Description, _ = location["description"].(string)

	assetValue, _ := AssetType.FindIn(content)
	asset, _ := validate.AsObject(assetValue)
	if assetType, _ := asset["type"].(string); assetType != "" {
		event.AssetType = LocationAssetType(assetType)
	}

	if value, ok := TimestampType.FindIn(content); ok {
		event.Timestamp, _ = validate.AsInteger(value)
	}

	if value, ok := TextType.FindIn(content); ok {
		event.Text, _ = value.(string)
	}
	if event.Text == "" {
		event.Text, _ = content["body"].(string)
	}
	return event, nil
}

func (e *LocationEvent) IsEquivalentTo(eventType namespace.Value) bool {
	return IsEventTypeSame(eventType, LocationType)
}

func (e *LocationEvent) Serialize() PartialEvent {
	location := map[string]any{"uri": e.GeoURI}
	if e.Description != "" {
		location["description"] = e.Description
	}
	content := map[string]any{
		"body":              e.Text,
		"msgtype":           LocationType.Name(),
		"geo_uri":           e.GeoURI,
		LocationType.Name(): location,
		AssetType.Name():    map[string]any{"type": string(e.AssetType)},
	}
	if e.Text != "" {
		content[TextType.Name()] = e.Text
	}
	if e.Timestamp != 0 {
		content[TimestampType.Name()] = e.Timestamp
	}
	return PartialEvent{Type: LegacyRoomMessage.Name(), Content: content}
}

// LocationFrom builds a location. An empty assetType means AssetSelf;
// a zero timestamp and an empty description are omitted.
func LocationFrom(text, geoURI string, timestamp int64, description string, assetType LocationAssetType) (*LocationEvent, error) {
	if assetType == "" {
		assetType = AssetSelf
	}
	location := map[string]any{"uri": geoURI}
	if description != "" {
		location["description"] = description
	}
	content := map[string]any{
		"msgtype":           LocationType.Name(),
		"body":              text,
		"geo_uri":           geoURI,
		LocationType.Name(): location,
		AssetType.Name():    map[string]any{"type": string(assetType)},
		TextType.Name():     text,
	}
	if timestamp != 0 {
		content[TimestampType.Name()] = timestamp
	}
	return NewLocationEvent(PartialEvent{Type: LocationType.Name(), Content: content})
}
