package schemas

import "github.com/sheetmap/sheetmap/internal/core"

func init() {
	registerSupplierOrders()
}

// registerSupplierOrders handles multi-sheet order workbooks, one
// sheet per warehouse. Output stays grouped by sheet so each
// warehouse's orders land in their own bucket. The address line is
// split into street and house number; which side the number sits on
// depends on the country column, supplied to both formatters through a
// variation slot.
func registerSupplierOrders() {
	core.Register(core.SchemaDefinition{
		Info: core.SchemaInfo{
			Key:   "supplier_orders",
			Group: "Purchasing",
			Label: "Supplier Orders",
		},
		HeaderRow:    1, // row 0 carries the export banner
		GroupBySheet: true,
		Fields: []core.FieldSpec{
			{
				Kind:            core.FieldMapped,
				Source:          "Order No",
				Variations:      []string{"Order Number", "Ordernummer"},
				Output:          "orderNumber",
				ExcludeWhenNull: true,
			},
			{
				Kind:       core.FieldMapped,
				Source:     "Address",
				Variations: []string{"Country"},
				Output:     "street",
				Format:     streetNameFormat,
			},
			{
				Kind:       core.FieldMapped,
				Source:     "Address",
				Variations: []string{"Country"},
				Output:     "houseNumber",
				Format:     houseNumberFormat,
			},
			{
				Kind:       core.FieldMapped,
				Source:     "Country",
				Variations: []string{"Land"},
				Output:     "country",
				Format:     countryFormat,
				Default:    "NL",
			},
			{
				Kind:       core.FieldMapped,
				Source:     "Amount",
				Variations: []string{"Total", "Bedrag"},
				Output:     "amount",
				Numeric:    true,
				Currency:   true,
			},
		},
	})
}
