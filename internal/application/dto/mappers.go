package dto

import "github.com/jhoicas/temucosoft-retail/internal/domain/entity"

// FromCompany convierte la entidad a su salida HTTP.
func FromCompany(c *entity.Company) CompanyResponse {
	return CompanyResponse{
		ID:        c.ID,
		Name:      c.Name,
		TaxID:     c.TaxID,
		Active:    c.Active,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// FromSubscription convierte la suscripción a su salida HTTP.
func FromSubscription(s *entity.Subscription) SubscriptionResponse {
	return SubscriptionResponse{
		CompanyID:   s.CompanyID,
		Plan:        string(s.Plan),
		StartDate:   s.StartDate,
		EndDate:     s.EndDate,
		Active:      s.Active,
		MaxBranches: s.MaxBranches,
	}
}

// FromUser convierte el usuario a su salida (sin hash de password).
func FromUser(u *entity.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		CompanyID: u.CompanyID,
		BranchID:  u.BranchID,
		Username:  u.Username,
		Email:     u.Email,
		TaxID:     u.TaxID,
		Name:      u.Name,
		Role:      string(u.Role),
		Active:    u.Active,
		CreatedAt: u.CreatedAt,
	}
}
