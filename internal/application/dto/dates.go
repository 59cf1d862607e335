package dto

import (
	"fmt"
	"time"

	"github.com/jhoicas/temucosoft-retail/internal/domain"
)

// DateLayout formato de fechas en query params y bodies.
const DateLayout = "2006-01-02"

// ParseDate interpreta YYYY-MM-DD en la zona local. Vacío devuelve nil.
func ParseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(DateLayout, s, time.Local)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidDate, s)
	}
	return &t, nil
}
