package models

import "time"

// Organization is the tenant boundary: it owns categories, courses and
// discussion topics. Exactly one owner per organization.
type Organization struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	OwnerID   int64     `json:"ownerId" db:"owner_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`

	// Related entities
	Owner *User `json:"owner,omitempty"`
}

// Associate is a user's membership record within one organization, carrying
// approval status. A user has at most one associate profile.
type Associate struct {
	ID             int64     `json:"id" db:"id"`
	UserID         int64     `json:"userId" db:"user_id"`
	OrganizationID int64     `json:"organizationId" db:"organization_id"`
	Approved       bool      `json:"approved" db:"approved"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`

	// Related entities
	User         *User         `json:"user,omitempty"`
	Organization *Organization `json:"organization,omitempty"`
}
