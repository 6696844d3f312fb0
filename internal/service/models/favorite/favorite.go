package favorite

import "time"

// Favorite marks a product as favorited by a user.
type Favorite struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	ProductID int64     `json:"productId"`
	AddedAt   time.Time `json:"addedAt"`
}
