package cart

// Item is the product descriptor copied into the cart at add time.
// Prices are integer currency units (XOF); descriptive fields are a
// snapshot, not a live join against the catalog.
type Item struct {
	ProductID int64  `json:"product_id" validate:"gt=0"`
	Name      string `json:"name" validate:"required"`
	UnitPrice int64  `json:"unit_price" validate:"gte=0"`
	ImageURL  string `json:"image_url"`
	Category  string `json:"category"`
}

// CartLine is one product's presence in the active cart. Quantity is
// always >= 1; a line that would drop to zero is removed instead.
type CartLine struct {
	Item
	Quantity int `json:"quantity"`
}

// storageVersion tags persisted payloads so future shape changes can be
// detected instead of misparsed. Loaders treat any other version as absent.
const storageVersion = 1

type persistedCart struct {
	Version int        `json:"version"`
	Items   []CartLine `json:"items"`
}

type persistedFavorites struct {
	Version int     `json:"version"`
	IDs     []int64 `json:"ids"`
}
