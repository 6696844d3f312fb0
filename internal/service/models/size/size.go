package size

// Size represents a product size.
type Size struct {
	ID       int64  `json:"id"`
	SizeName string `json:"sizeName"`
}
