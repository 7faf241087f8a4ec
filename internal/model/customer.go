package model

import "time"

// Customer represents a legacy contact record managed by a single user.
// All descriptive fields except Title are optional and stored as NULL when
// blank.
type Customer struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	FullName      string    `json:"full_name,omitempty"`
	Phone         string    `json:"phone,omitempty"`
	Website       string    `json:"website,omitempty"`
	ContactPerson string    `json:"contact_person,omitempty"`
	Address       string    `json:"address,omitempty"`
	Note          string    `json:"note,omitempty"`
	ManagerID     int64     `json:"manager_id"`
	CreatedAt     time.Time `json:"created_at"`

	// Joined fields (not always populated).
	ManagerName string `json:"manager_name,omitempty"`
}
