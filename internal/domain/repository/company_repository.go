package repository

import (
	"context"

	"github.com/jhoicas/temucosoft-retail/internal/domain/entity"
)

// CompanyRepository define el puerto de persistencia para Company (DIP).
// La implementación vive en infrastructure.
type CompanyRepository interface {
	Create(ctx context.Context, company *entity.Company) error
	GetByID(ctx context.Context, id string) (*entity.Company, error)
	// GetForUpdate bloquea la fila de la empresa hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.Company, error)
	GetByTaxID(ctx context.Context, taxID string) (*entity.Company, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Company, error)
}

// SubscriptionRepository persistencia del plan de cada empresa.
type SubscriptionRepository interface {
	GetByCompany(ctx context.Context, companyID string) (*entity.Subscription, error)
	// GetByCompanyForUpdate bloquea la fila (SELECT FOR UPDATE) hasta el fin de la transacción.
	GetByCompanyForUpdate(ctx context.Context, companyID string) (*entity.Subscription, error)
	// Upsert inserta o actualiza por company_id; max_branches se deriva del plan.
	Upsert(ctx context.Context, sub *entity.Subscription) error
}

// ClientRequestRepository solicitudes de alta de clientes.
type ClientRequestRepository interface {
	Create(ctx context.Context, req *entity.ClientRequest) error
	GetByID(ctx context.Context, id string) (*entity.ClientRequest, error)
	GetForUpdate(ctx context.Context, id string) (*entity.ClientRequest, error)
	ListByStatus(ctx context.Context, status entity.RequestStatus, limit, offset int) ([]*entity.ClientRequest, error)
	UpdateStatus(ctx context.Context, id string, status entity.RequestStatus) error
	// DeletePending elimina la solicitud solo si sigue pendiente; false si no se borró nada.
	DeletePending(ctx context.Context, id string) (bool, error)
}
