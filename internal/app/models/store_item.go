package models

import "time"

// StoreItem is a purchasable skin or title
type StoreItem struct {
	ID      int64    `json:"id" db:"id"`
	KeyName string   `json:"key_name" db:"key_name"`
	Name    string   `json:"name" db:"name"`
	Cost    int      `json:"cost" db:"cost"`
	Type    ItemType `json:"type" db:"type"`
}

// Purchase is an append-only ledger row
type Purchase struct {
	ID          int64     `json:"id" db:"id"`
	StudentID   int64     `json:"student_id" db:"student_id"`
	ItemID      int64     `json:"item_id" db:"item_id"`
	PurchasedAt time.Time `json:"purchased_at" db:"purchased_at"`

	// Related item fields (populated when listing history)
	ItemKey  string   `json:"item_key,omitempty"`
	ItemName string   `json:"item_name,omitempty"`
	ItemCost int      `json:"item_cost,omitempty"`
	ItemType ItemType `json:"item_type,omitempty"`
}
