package schemas

import "github.com/sheetmap/sheetmap/internal/core"

func init() {
	registerPriceList()
}

// sumLineTotals multiplies quantity and price per matrix row and sums
// the products. Rows missing one of the two factors contribute
// nothing.
func sumLineTotals(rows [][]float64) float64 {
	var total float64
	for _, row := range rows {
		if len(row) < 2 {
			continue
		}
		total += row[0] * row[1]
	}
	return total
}

// maxPrice returns the highest value seen anywhere in the matrix.
func maxPrice(rows [][]float64) float64 {
	var best float64
	for _, row := range rows {
		for _, v := range row {
			if v > best {
				best = v
			}
		}
	}
	return best
}

// registerPriceList handles supplier price list exports. Suppliers
// commonly ship several price columns per article (current list price
// plus previous years under varying headers); the computed fields
// collapse them into one order value and one ceiling price.
func registerPriceList() {
	core.Register(core.SchemaDefinition{
		Info: core.SchemaInfo{
			Key:   "price_list",
			Group: "Purchasing",
			Label: "Price List",
		},
		HeaderRow: 0,
		Fields: []core.FieldSpec{
			{
				Kind:            core.FieldMapped,
				Source:          "Article",
				Variations:      []string{"Article Name", "Product"},
				Output:          "article",
				ExcludeWhenNull: true,
			},
			core.Rename("Supplier"),
			{
				Kind:   core.FieldComputed,
				Output: "orderValue",
				Columns: []core.SourceColumn{
					{Name: "Quantity", Variations: []string{"Qty", "Order Qty"}},
					{Name: "Price", Variations: []string{"Unit Price", "List Price"}},
				},
				Operation: sumLineTotals,
			},
			{
				Kind:   core.FieldComputed,
				Output: "highestPrice",
				Columns: []core.SourceColumn{
					{Name: "Price", Variations: []string{"Unit Price", "List Price", "Price 2024", "Price 2023"}},
				},
				Operation: maxPrice,
			},
		},
	})
}
