package user

// User represents a registered customer. The password hash never leaves the
// service layer.
type User struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Image        string `json:"image"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	Age          int    `json:"age"`
	Address      string `json:"address"`
}
