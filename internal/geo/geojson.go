// Package geo assembles claims into GeoJSON documents for map display.
package geo

import "github.com/fra-atlas/fra-atlas-backend/types"

// ContentType is the media type for GeoJSON responses (RFC 7946).
const ContentType = "application/geo+json"

// Geometry is a GeoJSON geometry object. Only Polygon is produced today.
type Geometry struct {
	Type        string         `json:"type"`
	Coordinates [][][2]float64 `json:"coordinates"`
}

// Feature pairs a claim's attributes with its parcel geometry.
type Feature struct {
	Type       string                 `json:"type"`
	Geometry   Geometry               `json:"geometry"`
	Properties map[string]interface{} `json:"properties"`
}

// FeatureCollection is the top-level GeoJSON document served by the map
// endpoint.
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

// placeholderPolygon returns a small square near the origin, offset per claim
// so adjacent demo parcels do not fully overlap. Parcel surveys are not yet
// digitized; real geometries will replace this once the survey import lands.
func placeholderPolygon(index int) Geometry {
	const cell = 0.001
	dx := float64(index) * 2 * cell
	return Geometry{
		Type: "Polygon",
		Coordinates: [][][2]float64{{
			{dx, 0},
			{dx + cell, 0},
			{dx + cell, cell},
			{dx, cell},
			{dx, 0},
		}},
	}
}

// BuildFeatureCollection converts claims into a GeoJSON FeatureCollection.
// A nil or empty claim list yields an empty (non-nil) features array, which
// marshals to "features": [] rather than null.
func BuildFeatureCollection(claims []types.Claim) FeatureCollection {
	features := make([]Feature, 0, len(claims))
	for i, claim := range claims {
		features = append(features, Feature{
			Type:     "Feature",
			Geometry: placeholderPolygon(i),
			Properties: map[string]interface{}{
				"id":            claim.ID,
				"claimant_name": claim.ClaimantName,
				"village":       claim.Village,
				"area":          claim.Area,
				"status":        claim.Status,
			},
		})
	}
	return FeatureCollection{Type: "FeatureCollection", Features: features}
}
