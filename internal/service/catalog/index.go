// internal/service/catalog/index.go
package catalog

import (
	"fmt"
	"sort"
	"strings"

	domain "almatiq-service/internal/domain/catalog"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// minorUnitsPerUnit converts platform amounts (cents) to whole currency.
const minorUnitsPerUnit = 100

// defaultItemName stands in for catalog items missing a name.
const defaultItemName = "Service"

// BuildIndex flattens catalog items into a variation index keyed by
// variation id, plus the same entries sorted by display name for
// selection controls.
//
// A variation named "Regular" (any case) or left unnamed collapses to
// the bare item name; anything else renders as "Item (Variation)".
func BuildIndex(items []domain.Item) (map[string]domain.Variation, []domain.Variation) {
	index := make(map[string]domain.Variation)
	var list []domain.Variation

	for _, item := range items {
		itemName := item.ItemData.Name
		if itemName == "" {
			itemName = defaultItemName
		}

		for _, v := range item.ItemData.Variations {
			entry := domain.Variation{
				ID:    v.ID,
				Name:  displayName(itemName, v.ItemVariationData.Name),
				Price: price(v.ItemVariationData.PriceMoney),
			}
			index[v.ID] = entry
			list = append(list, entry)
		}
	}

	sortByName(list)
	return index, list
}

func displayName(itemName, variationName string) string {
	if variationName == "" || strings.EqualFold(variationName, "regular") {
		return itemName
	}
	return fmt.Sprintf("%s (%s)", itemName, variationName)
}

func price(m *domain.Money) float64 {
	if m == nil {
		return 0
	}
	return float64(m.Amount) / minorUnitsPerUnit
}

func sortByName(list []domain.Variation) {
	coll := collate.New(language.English)
	sort.SliceStable(list, func(i, j int) bool {
		return coll.CompareString(list[i].Name, list[j].Name) < 0
	})
}
