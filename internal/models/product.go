package models

// Product is a transport-type tag as used by MVG for stations and departures.
// Tags outside the known set are valid and carried verbatim.
type Product string

const (
	ProductUBahn Product = "UBAHN"
	ProductBus   Product = "BUS"
	ProductTram  Product = "TRAM"
	ProductSBahn Product = "SBAHN"
)

// KnownProducts lists the tags that have a dedicated badge, in display order
var KnownProducts = []Product{ProductUBahn, ProductSBahn, ProductTram, ProductBus}

// Known reports whether p is one of the tags with a dedicated badge
func (p Product) Known() bool {
	switch p {
	case ProductUBahn, ProductBus, ProductTram, ProductSBahn:
		return true
	}
	return false
}
