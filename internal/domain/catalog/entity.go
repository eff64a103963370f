// internal/domain/catalog/entity.go
package catalog

// Item is a catalog object as returned by the booking platform.
type Item struct {
	ID       string   `json:"id"`
	Type     string   `json:"type"`
	ItemData ItemData `json:"item_data"`
}

type ItemData struct {
	Name       string          `json:"name"`
	Variations []ItemVariation `json:"variations"`
}

type ItemVariation struct {
	ID                string        `json:"id"`
	ItemVariationData VariationData `json:"item_variation_data"`
}

type VariationData struct {
	Name       string `json:"name"`
	PriceMoney *Money `json:"price_money,omitempty"`
}

// Variation is a purchasable service option with its computed display
// name and price in whole currency units.
type Variation struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// Snapshot is the catalog state handed to consumers as a value. It is
// rebuilt by the refresher; holders never observe partial updates.
type Snapshot struct {
	// Index maps a variation id to its display entry, used to resolve
	// booking segments during aggregation.
	Index map[string]Variation

	// List holds the same entries sorted by display name for selection
	// controls.
	List []Variation

	// LocationID is the active location discovered alongside the
	// catalog, required when creating bookings.
	LocationID string

	// Fallback is set when the upstream catalog fetch failed and List
	// carries the built-in service names without ids or prices.
	Fallback bool
}
