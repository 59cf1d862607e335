// Package plan contiene las reglas de los planes de suscripción (servicio de dominio puro).
package plan

import (
	"strings"
	"time"

	"github.com/jhoicas/temucosoft-retail/internal/domain"
	"github.com/jhoicas/temucosoft-retail/internal/domain/entity"
)

type tierRule struct {
	maxBranches int
	days        int
}

var rules = map[entity.PlanTier]tierRule{
	entity.PlanBasic:    {maxBranches: 3, days: 30},
	entity.PlanStandard: {maxBranches: 6, days: 90},
	entity.PlanPremium:  {maxBranches: 9, days: 365},
}

// Los nombres en español se aceptan por compatibilidad con formularios antiguos.
var aliases = map[string]entity.PlanTier{
	"BASIC":    entity.PlanBasic,
	"BASICO":   entity.PlanBasic,
	"BÁSICO":   entity.PlanBasic,
	"STANDARD": entity.PlanStandard,
	"ESTANDAR": entity.PlanStandard,
	"ESTÁNDAR": entity.PlanStandard,
	"PREMIUM":  entity.PlanPremium,
}

// ParseTier normaliza el nombre del plan. Devuelve domain.ErrInvalidPlan si no existe.
func ParseTier(s string) (entity.PlanTier, error) {
	t, ok := aliases[strings.ToUpper(strings.TrimSpace(s))]
	if !ok {
		return "", domain.ErrInvalidPlan
	}
	return t, nil
}

// MaxBranches sucursales permitidas por el plan (0 si el plan no existe).
func MaxBranches(t entity.PlanTier) int {
	return rules[t].maxBranches
}

// Duration vigencia del plan.
func Duration(t entity.PlanTier) time.Duration {
	return time.Duration(rules[t].days) * 24 * time.Hour
}

// Apply devuelve la suscripción resultante de aplicar el plan t sobre current (nil si no existe).
//   - nueva suscripción o cambio de plan: inicia hoy y vence hoy + duración del plan.
//   - mismo plan: fechas intactas (salvo EndDate vacío), se reactiva.
//
// MaxBranches se recalcula siempre.
func Apply(current *entity.Subscription, companyID string, t entity.PlanTier, now time.Time) (*entity.Subscription, error) {
	if _, ok := rules[t]; !ok {
		return nil, domain.ErrInvalidPlan
	}
	today := Today(now)
	var sub entity.Subscription
	if current != nil {
		sub = *current
	} else {
		sub = entity.Subscription{CompanyID: companyID, CreatedAt: now}
	}
	if current == nil || current.Plan != t {
		sub.Plan = t
		sub.StartDate = today
		sub.EndDate = today.Add(Duration(t))
	}
	if sub.StartDate.IsZero() {
		sub.StartDate = today
	}
	if sub.EndDate.IsZero() {
		sub.EndDate = sub.StartDate.Add(Duration(t))
	}
	sub.Active = true
	sub.MaxBranches = MaxBranches(t)
	sub.UpdatedAt = now
	return &sub, nil
}

// Today trunca la hora al inicio del día (zona de now).
func Today(now time.Time) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, now.Location())
}
