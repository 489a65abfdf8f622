package schemas

import "github.com/sheetmap/sheetmap/internal/core"

func init() {
	registerInvoiceLines()
}

// registerInvoiceLines handles exported invoice line sheets. A line
// without an article description is a subtotal or filler row and is
// dropped; a line whose price does not parse is unusable downstream
// and is dropped too.
func registerInvoiceLines() {
	core.Register(core.SchemaDefinition{
		Info: core.SchemaInfo{
			Key:   "invoice_lines",
			Group: "Sales",
			Label: "Invoice Lines",
		},
		HeaderRow: 0,
		Fields: []core.FieldSpec{
			{
				Kind:            core.FieldMapped,
				Source:          "Name",
				Variations:      []string{"Article", "Description", "Omschrijving"},
				Output:          "description",
				ExcludeWhenNull: true,
			},
			{
				Kind:       core.FieldMapped,
				Source:     "Price",
				Variations: []string{"Unit Price", "Prijs"},
				Output:     "price",
				Numeric:    true,
				Currency:   true,
			},
			{
				Kind:       core.FieldMapped,
				Source:     "Quantity",
				Variations: []string{"Qty", "Aantal"},
				Output:     "quantity",
				Numeric:    true,
				Default:    float64(1),
			},
			{
				Kind:       core.FieldMapped,
				Source:     "Invoice Date",
				Variations: []string{"Date", "Datum"},
				Output:     "invoiceDate",
				Format:     isoDateFormat,
			},
			core.Rename("SKU"),
		},
	})
}
