package dto

// UpdateProfileRequest edits the caller's own profile
type UpdateProfileRequest struct {
	FirstName string `json:"firstName" binding:"required,min=2,max=150"`
	LastName  string `json:"lastName" binding:"required,min=2,max=150"`
	Bio       string `json:"bio"`
}

// ProfileResponse is the caller's account view
type ProfileResponse struct {
	ID               int64  `json:"id"`
	Email            string `json:"email"`
	FirstName        string `json:"firstName"`
	LastName         string `json:"lastName"`
	Bio              string `json:"bio,omitempty"`
	ProfilePhotoURL  string `json:"profilePhotoUrl,omitempty"`
	OrganizationID   int64  `json:"organizationId,omitempty"`
	OrganizationName string `json:"organizationName,omitempty"`
	IsOwner          bool   `json:"isOwner"`
	Approved         bool   `json:"approved"`
}
