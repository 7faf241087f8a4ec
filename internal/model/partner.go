package model

import "time"

// Partner represents a contact record classified by a partner type.
// All descriptive fields except Title are optional and stored as NULL when
// blank.
type Partner struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	TypeID        int64     `json:"partner_type_id"`
	FullName      string    `json:"full_name,omitempty"`
	Phone         string    `json:"phone,omitempty"`
	Website       string    `json:"website,omitempty"`
	ContactPerson string    `json:"contact_person,omitempty"`
	Address       string    `json:"address,omitempty"`
	Note          string    `json:"note,omitempty"`
	LogoMime      string    `json:"logo_mime,omitempty"`
	ManagerID     int64     `json:"manager_id"`
	CreatedAt     time.Time `json:"created_at"`

	// Joined fields (not always populated).
	ManagerName string `json:"manager_name,omitempty"`
	TypeTitle   string `json:"type_title,omitempty"`
}

// PartnerType classifies partners. The Customer flag marks types that can
// appear on the customer side of a deal.
type PartnerType struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Customer bool   `json:"customer"`
}
