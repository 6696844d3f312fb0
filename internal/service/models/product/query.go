package product

// Sort directions for product listings.
const (
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
)

// QueryProductsModel represents filter parameters for querying products. One
// model covers every listing variant of the public API: by category, by name
// fragment, by price range, by remaining quantity.
type QueryProductsModel struct {
	Ids           []int64 `json:"ids,omitempty"`
	CategoryIds   []int64 `json:"categoryIds,omitempty"`
	Name          string  `json:"name,omitempty"`
	MinPriceCents *int64  `json:"minPriceCents,omitempty"`
	MaxPriceCents *int64  `json:"maxPriceCents,omitempty"`
	MaxQuantity   *int    `json:"maxQuantity,omitempty"`
	Sort          string  `json:"sort,omitempty"`
	Limit         int     `json:"limit,omitempty"`
	Offset        int     `json:"offset,omitempty"`
}
