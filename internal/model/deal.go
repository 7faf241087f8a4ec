package model

import "time"

// Deal represents a sale tied to a partner on the customer side. Deals are
// visible and editable only by their managing user.
type Deal struct {
	ID         int64     `json:"id"`
	Title      string    `json:"title"`
	Body       string    `json:"body,omitempty"`
	ManagerID  int64     `json:"manager_id"`
	CustomerID int64     `json:"customer_id"`
	CreatedAt  time.Time `json:"created_at"`

	// Joined fields (not always populated).
	ManagerName   string `json:"manager_name,omitempty"`
	CustomerTitle string `json:"customer_title,omitempty"`
}
