package types

import "time"

// ClaimStatus enumerates the lifecycle states of a forest rights claim.
type ClaimStatus string

const (
	ClaimStatusGranted  ClaimStatus = "granted"
	ClaimStatusPending  ClaimStatus = "pending"
	ClaimStatusRejected ClaimStatus = "rejected"
)

// IsValid reports whether the status is one of the known claim states.
func (s ClaimStatus) IsValid() bool {
	switch s {
	case ClaimStatusGranted, ClaimStatusPending, ClaimStatusRejected:
		return true
	}
	return false
}

// Claim is a forest rights record. Identity and timestamps are owned by the
// persistence layer; scoring treats a claim as an immutable input.
type Claim struct {
	ID           int64       `json:"id"`
	ClaimantName string      `json:"claimant_name"`
	Village      string      `json:"village"`
	Area         float64     `json:"area"` // hectares, > 0
	Status       ClaimStatus `json:"status"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// ClaimCreate carries the fields needed to create a claim.
type ClaimCreate struct {
	ClaimantName string      `json:"claimant_name" binding:"required,min=1"`
	Village      string      `json:"village" binding:"required,min=1"`
	Area         float64     `json:"area" binding:"required,gt=0"`
	Status       ClaimStatus `json:"status" binding:"required"`
}
