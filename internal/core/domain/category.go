package domain

import "strings"

// Category is one of the fixed document types. Its value doubles as the name
// of the folder the category's spreadsheets are dropped into.
type Category string

// Built-in categories, in the order batch runs visit them.
const (
	CategoryOrderSync           Category = "Sincronizacion de pedidos"
	CategoryDIANReconciliation  Category = "Conciliacion DIAN"
	CategoryCardReconciliation  Category = "Conciliacion TC"
	CategoryDIANAcknowledgment  Category = "Eventos acuse DIAN"
	CategoryTravelAgencyInvoice Category = "Factura agencia de viajes"
	CategoryElectronicInvoice   Category = "Factura electronica"
)

// Categories returns all built-in categories in batch order.
func Categories() []Category {
	return []Category{
		CategoryOrderSync,
		CategoryDIANReconciliation,
		CategoryCardReconciliation,
		CategoryDIANAcknowledgment,
		CategoryTravelAgencyInvoice,
		CategoryElectronicInvoice,
	}
}

// Folder returns the folder name for the category, relative to the root.
func (c Category) Folder() string {
	return string(c)
}

// String implements fmt.Stringer.
func (c Category) String() string {
	return string(c)
}

// ParseCategory resolves a selector to a built-in category.
// Matching is exact after trimming surrounding whitespace.
func ParseCategory(s string) (Category, error) {
	name := strings.TrimSpace(s)
	for _, c := range Categories() {
		if string(c) == name {
			return c, nil
		}
	}
	return "", &UnknownCategoryError{Name: s}
}
