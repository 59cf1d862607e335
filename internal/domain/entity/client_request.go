package entity

import "time"

// RequestStatus estado de una solicitud de alta de cliente.
type RequestStatus string

const (
	RequestPending  RequestStatus = "PENDING"
	RequestAccepted RequestStatus = "ACCEPTED"
	RequestRejected RequestStatus = "REJECTED"
)

// ClientRequest solicitud de una empresa para contratar la plataforma.
type ClientRequest struct {
	ID           string
	CompanyName  string
	TaxID        string
	ContactName  string
	ContactEmail string
	Plan         PlanTier
	Status       RequestStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
