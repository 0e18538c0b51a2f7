package domain

// EntityKind distinguishes the counterparties an invoice can reference.
type EntityKind string

const (
	EntityCustomer EntityKind = "customer"
	EntitySupplier EntityKind = "supplier"
)

// EntityRef is a customer or supplier as returned by the entity lookup.
type EntityRef struct {
	EntityID string     `json:"id"`
	Kind     EntityKind `json:"kind"`
	Name     string     `json:"name"`
}

// CatalogKind enumerates the reference-data catalogs items can point at.
type CatalogKind string

const (
	CatalogCategory CatalogKind = "category"
	CatalogStore    CatalogKind = "store"
	CatalogUnit     CatalogKind = "unit"
)

// Valid reports whether k is a known catalog.
func (k CatalogKind) Valid() bool {
	switch k {
	case CatalogCategory, CatalogStore, CatalogUnit:
		return true
	}
	return false
}

// CatalogEntry is one row of tenant reference data.
type CatalogEntry struct {
	EntryID string      `json:"id"`
	Kind    CatalogKind `json:"kind"`
	Name    string      `json:"name"`
	Code    string      `json:"code"`
}
