package color

// Color represents a product color. Color names are unique.
type Color struct {
	ID        int64  `json:"id"`
	ColorName string `json:"colorName"`
}
