package api

import (
	"github.com/chirp-bdsa/chirp/models"
)

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	cheepHandler   cheepHandler
	authorHandler  authorHandler
	hashtagHandler hashtagHandler
	meHandler      meHandler
	healthHandler  healthHandler
}

// ErrorResponse represents an error response from the API
// @Description Error response structure
type ErrorResponse struct {
	Error   string `json:"error" example:"Internal Server Error"`
	Status  string `json:"status" example:"error"`
	Field   string `json:"field,omitempty" example:"text"`
	Details string `json:"details,omitempty" example:"Additional error details"`
	Cause   string `json:"cause,omitempty" example:"Underlying error cause"`
}

// CheepPage is one page of any timeline
type CheepPage struct {
	Cheeps      []models.CheepDTO `json:"cheeps"`
	Page        int               `json:"page"`
	Count       int               `json:"count"`
	HasPrevious bool              `json:"hasPrevious"`
	HasNext     bool              `json:"hasNext"`
}

// A full page means there may be more; the next page can come back empty.
func newCheepPage(cheeps []models.CheepDTO, page int) CheepPage {
	return CheepPage{
		Cheeps:      cheeps,
		Page:        page,
		Count:       len(cheeps),
		HasPrevious: page > 1,
		HasNext:     len(cheeps) == models.PageSize,
	}
}

type createCheepRequest struct {
	Text string `json:"text"`
}

type followStatus struct {
	Follower  string `json:"follower"`
	Followed  string `json:"followed"`
	Following bool   `json:"following"`
}

type aboutMe struct {
	UserName  string             `json:"userName"`
	Email     string             `json:"email"`
	Following []models.AuthorDTO `json:"following"`
	Cheeps    CheepPage          `json:"cheeps"`
}

type healthStatus struct {
	Status    string `json:"status"`
	StartedAt string `json:"startedAt"`
	Uptime    string `json:"uptime"`
	Database  string `json:"database"`
}
