package entity

import "time"

// PlanTier nivel de plan contratado.
type PlanTier string

const (
	PlanBasic    PlanTier = "BASIC"
	PlanStandard PlanTier = "STANDARD"
	PlanPremium  PlanTier = "PREMIUM"
)

// Subscription plan vigente de una empresa (relación 1:1 con Company).
// MaxBranches siempre se deriva de Plan; ver el paquete domain/plan.
type Subscription struct {
	ID          string
	CompanyID   string
	Plan        PlanTier
	StartDate   time.Time
	EndDate     time.Time
	Active      bool
	MaxBranches int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
