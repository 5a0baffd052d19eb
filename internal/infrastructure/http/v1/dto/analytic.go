package dto

import (
	"bizledger/internal/core/entity"
	"bizledger/internal/domain/catalogs/analytic"
)

// CreateAnalyticalAccountRequest is the request body for creating an account.
type CreateAnalyticalAccountRequest struct {
	Code        string            `json:"code"`
	Name        string            `json:"name" binding:"required"`
	Description *string           `json:"description"`
	Active      *bool             `json:"active"`
	ParentID    *string           `json:"parentId"`
	IsFolder    bool              `json:"isFolder"`
	Attributes  entity.Attributes `json:"attributes"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateAnalyticalAccountRequest) ToEntity() *analytic.AnalyticalAccount {
	a := analytic.NewAnalyticalAccount(r.Code, r.Name)
	a.Description = r.Description
	if r.Active != nil {
		a.Active = *r.Active
	}
	a.ParentID = r.ParentID
	a.IsFolder = r.IsFolder
	a.Attributes = r.Attributes
	return a
}

// UpdateAnalyticalAccountRequest is the request body for updating an account.
type UpdateAnalyticalAccountRequest struct {
	Code        string            `json:"code"`
	Name        string            `json:"name" binding:"required"`
	Description *string           `json:"description"`
	Active      bool              `json:"active"`
	ParentID    *string           `json:"parentId"`
	IsFolder    bool              `json:"isFolder"`
	Attributes  entity.Attributes `json:"attributes"`
	Version     int               `json:"version" binding:"required"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdateAnalyticalAccountRequest) ApplyTo(a *analytic.AnalyticalAccount) {
	a.Code = r.Code
	a.Name = r.Name
	a.Description = r.Description
	a.Active = r.Active
	a.ParentID = r.ParentID
	a.IsFolder = r.IsFolder
	a.Attributes = r.Attributes
	a.Version = r.Version
}

// AnalyticalAccountResponse is the response body for an account.
type AnalyticalAccountResponse struct {
	ID           string            `json:"id"`
	Code         string            `json:"code"`
	Name         string            `json:"name"`
	Description  *string           `json:"description,omitempty"`
	Active       bool              `json:"active"`
	ParentID     *string           `json:"parentId,omitempty"`
	IsFolder     bool              `json:"isFolder"`
	DeletionMark bool              `json:"deletionMark"`
	Version      int               `json:"version"`
	Attributes   entity.Attributes `json:"attributes,omitempty"`
}

// FromAnalyticalAccount creates response DTO from domain entity.
func FromAnalyticalAccount(a *analytic.AnalyticalAccount) *AnalyticalAccountResponse {
	return &AnalyticalAccountResponse{
		ID:           a.ID.String(),
		Code:         a.Code,
		Name:         a.Name,
		Description:  a.Description,
		Active:       a.Active,
		ParentID:     a.ParentID,
		IsFolder:     a.IsFolder,
		DeletionMark: a.DeletionMark,
		Version:      a.Version,
		Attributes:   a.Attributes,
	}
}
