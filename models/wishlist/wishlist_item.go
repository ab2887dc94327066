package wishlist

import "time"

type Item struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	ItemType  string    `gorm:"type:varchar(20);not null" json:"item_type"` // flight, hotel, destination
	Reference string    `gorm:"type:varchar(255);not null" json:"reference"`
	Title     string    `gorm:"type:varchar(255)" json:"title"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Item) TableName() string {
	return "wishlist_items"
}
