package dto

import "github.com/rafael/coursehub/internal/app/models"

// AssociateResponse is one membership row on the instructor dashboard
type AssociateResponse struct {
	ID        int64  `json:"id"`
	UserID    int64  `json:"userId"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Approved  bool   `json:"approved"`
}

// DashboardResponse is the owner's overview of their organization
type DashboardResponse struct {
	Organization      *models.Organization `json:"organization"`
	CourseCount       int                  `json:"courseCount"`
	CategoryCount     int                  `json:"categoryCount"`
	AssociateCount    int                  `json:"associateCount"`
	PendingApprovals  int                  `json:"pendingApprovals"`
	OpenQuestionCount int                  `json:"openQuestionCount"`
}
