// Package seed carga datos de demostración desde YAML pasando por los casos de uso,
// de modo que se respetan las mismas validaciones que la API.
package seed

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"

	"github.com/jhoicas/temucosoft-retail/internal/application/dto"
	"github.com/jhoicas/temucosoft-retail/internal/bootstrap"
	"github.com/jhoicas/temucosoft-retail/internal/domain"
	"github.com/jhoicas/temucosoft-retail/internal/domain/access"
	"github.com/jhoicas/temucosoft-retail/internal/domain/entity"
	"github.com/jhoicas/temucosoft-retail/internal/domain/repository"
	"github.com/jhoicas/temucosoft-retail/pkg/rut"
)

// File estructura del archivo de semillas.
type File struct {
	SuperAdmin Account  `yaml:"super_admin"`
	Tenants    []Tenant `yaml:"tenants"`
}

// Account credenciales de un usuario de plataforma.
type Account struct {
	Username string `yaml:"username"`
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
}

// Tenant empresa con su catálogo inicial.
type Tenant struct {
	CompanyName  string     `yaml:"company_name"`
	TaxID        string     `yaml:"rut"`
	ContactName  string     `yaml:"contact_name"`
	ContactEmail string     `yaml:"contact_email"`
	Plan         string     `yaml:"plan"`
	Admin        Admin      `yaml:"admin"`
	Branches     []Branch   `yaml:"branches"`
	Suppliers    []Supplier `yaml:"suppliers"`
	Products     []Product  `yaml:"products"`
	Users        []User     `yaml:"users"`
	Purchases    []Purchase `yaml:"purchases"`
}

// Admin administrador de la empresa; la contraseña es temporal y se genera al aprobar.
type Admin struct {
	Username string `yaml:"username"`
	TaxID    string `yaml:"rut"`
	Email    string `yaml:"email"`
}

type Branch struct {
	Name    string `yaml:"name"`
	Address string `yaml:"address"`
	Phone   string `yaml:"phone"`
}

type Supplier struct {
	Name    string `yaml:"name"`
	TaxID   string `yaml:"rut"`
	Contact string `yaml:"contact"`
	Email   string `yaml:"email"`
	Phone   string `yaml:"phone"`
}

// Product precio y costo como texto para no perder precisión.
type Product struct {
	SKU         string `yaml:"sku"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Price       string `yaml:"price"`
	Cost        string `yaml:"cost"`
	Category    string `yaml:"category"`
}

// User personal de la empresa. Branch es el nombre de la sucursal.
type User struct {
	Username string `yaml:"username"`
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	TaxID    string `yaml:"rut"`
	Role     string `yaml:"role"`
	Branch   string `yaml:"branch"`
}

// Purchase compra inicial: Supplier y Branch por nombre, ítems por SKU. Date vacío es hoy.
type Purchase struct {
	Supplier string         `yaml:"supplier"`
	Branch   string         `yaml:"branch"`
	Date     string         `yaml:"date"`
	Items    []PurchaseItem `yaml:"items"`
}

type PurchaseItem struct {
	SKU      string `yaml:"sku"`
	Quantity int    `yaml:"quantity"`
	UnitCost string `yaml:"unit_cost"`
}

// Summary resultado de una carga.
type Summary struct {
	Tenants   int
	Skipped   int
	Branches  int
	Products  int
	Suppliers int
	Users     int
	Purchases int
}

// Load lee y decodifica el archivo YAML.
func Load(path string) (*File, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("seed: leer %s: %w", path, err)
	}
	return Parse(raw)
}

// Parse decodifica el contenido YAML; campos desconocidos son error.
func Parse(raw []byte) (*File, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("seed: yaml: %w", err)
	}
	return &f, nil
}

// Seeder aplica un File sobre los casos de uso.
type Seeder struct {
	uc    *bootstrap.UseCases
	repos repository.Repos
	log   zerolog.Logger
	now   func() time.Time
}

// New construye el seeder.
func New(uc *bootstrap.UseCases, repos repository.Repos, log zerolog.Logger) *Seeder {
	return &Seeder{uc: uc, repos: repos, log: log, now: time.Now}
}

// Run crea el super_admin si falta y luego cada empresa. Las empresas cuyo RUT ya
// existe se omiten, así que correrlo dos veces no duplica datos.
func (s *Seeder) Run(ctx context.Context, f *File) (*Summary, error) {
	root, err := s.superAdmin(ctx, f.SuperAdmin)
	if err != nil {
		return nil, err
	}
	sum := &Summary{}
	for _, t := range f.Tenants {
		if err := s.tenant(ctx, root, t, sum); err != nil {
			return sum, fmt.Errorf("seed: empresa %q: %w", t.CompanyName, err)
		}
	}
	return sum, nil
}

func (s *Seeder) superAdmin(ctx context.Context, a Account) (access.Principal, error) {
	if a.Username == "" || a.Password == "" {
		return access.Principal{}, fmt.Errorf("seed: super_admin requiere username y password")
	}
	existing, err := s.repos.Users.GetByUsername(ctx, a.Username)
	if err != nil {
		return access.Principal{}, err
	}
	if existing != nil {
		if existing.Role != entity.RoleSuperAdmin {
			return access.Principal{}, fmt.Errorf("seed: %q existe y no es super_admin", a.Username)
		}
		return s.uc.Users.Resolve(ctx, existing.ID)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(a.Password), bcrypt.DefaultCost)
	if err != nil {
		return access.Principal{}, err
	}
	now := s.now()
	u := &entity.User{
		ID:           uuid.New().String(),
		Username:     a.Username,
		Email:        strings.ToLower(a.Email),
		Name:         "Super Admin",
		PasswordHash: string(hash),
		Role:         entity.RoleSuperAdmin,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repos.Users.Create(ctx, u); err != nil {
		return access.Principal{}, err
	}
	s.log.Info().Str("username", u.Username).Msg("super_admin creado")
	return s.uc.Users.Resolve(ctx, u.ID)
}

func (s *Seeder) tenant(ctx context.Context, root access.Principal, t Tenant, sum *Summary) error {
	if taxID, err := rut.Normalize(t.TaxID); err == nil {
		existing, err := s.repos.Companies.GetByTaxID(ctx, taxID)
		if err != nil {
			return err
		}
		if existing != nil {
			s.log.Info().Str("rut", taxID).Msg("empresa existente, se omite")
			sum.Skipped++
			return nil
		}
	}

	req, err := s.uc.Tenants.SubmitRequest(ctx, dto.ClientRequestCreate{
		CompanyName:  t.CompanyName,
		TaxID:        t.TaxID,
		ContactName:  t.ContactName,
		ContactEmail: t.ContactEmail,
		Plan:         t.Plan,
	})
	if err != nil {
		return fmt.Errorf("solicitud: %w", err)
	}
	created, err := s.uc.Tenants.CreateTenantFromRequest(ctx, root, req.ID, dto.CreateTenantRequest{
		CompanyName:   t.CompanyName,
		AdminUsername: t.Admin.Username,
		AdminTaxID:    t.Admin.TaxID,
		AdminEmail:    t.Admin.Email,
	})
	if err != nil {
		return fmt.Errorf("aprobación: %w", err)
	}
	sum.Tenants++
	s.log.Info().
		Str("company", created.Company.Name).
		Str("admin", created.Admin.Username).
		Str("temporary_password", created.TemporaryPassword).
		Msg("empresa creada")

	admin, err := s.uc.Users.Resolve(ctx, created.Admin.ID)
	if err != nil {
		return err
	}

	branches := map[string]string{}
	for _, b := range t.Branches {
		out, err := s.uc.Branches.Create(ctx, admin, dto.CreateBranchRequest{Name: b.Name, Address: b.Address, Phone: b.Phone})
		if err != nil {
			return fmt.Errorf("sucursal %q: %w", b.Name, err)
		}
		branches[b.Name] = out.ID
		sum.Branches++
	}

	suppliers := map[string]string{}
	for _, sp := range t.Suppliers {
		out, err := s.uc.Suppliers.Create(ctx, admin, dto.CreateSupplierRequest{
			Name: sp.Name, TaxID: sp.TaxID, Contact: sp.Contact, Email: sp.Email, Phone: sp.Phone,
		})
		if err != nil {
			return fmt.Errorf("proveedor %q: %w", sp.Name, err)
		}
		suppliers[sp.Name] = out.ID
		sum.Suppliers++
	}

	products := map[string]string{}
	for _, p := range t.Products {
		price, err := amount(p.Price)
		if err != nil {
			return fmt.Errorf("producto %q: %w", p.SKU, err)
		}
		cost, err := amount(p.Cost)
		if err != nil {
			return fmt.Errorf("producto %q: %w", p.SKU, err)
		}
		out, err := s.uc.Products.Create(ctx, admin, dto.CreateProductRequest{
			SKU: p.SKU, Name: p.Name, Description: p.Description, Price: price, Cost: cost, Category: p.Category,
		})
		if err != nil {
			return fmt.Errorf("producto %q: %w", p.SKU, err)
		}
		products[p.SKU] = out.ID
		sum.Products++
	}

	for _, u := range t.Users {
		if _, err := s.uc.Users.Create(ctx, admin, dto.CreateUserRequest{
			BranchID: branches[u.Branch],
			Username: u.Username,
			Email:    u.Email,
			TaxID:    u.TaxID,
			Password: u.Password,
			Name:     u.Name,
			Role:     u.Role,
		}); err != nil {
			return fmt.Errorf("usuario %q: %w", u.Username, err)
		}
		sum.Users++
	}

	for i, p := range t.Purchases {
		in, err := s.purchase(p, suppliers, branches, products)
		if err != nil {
			return fmt.Errorf("compra %d: %w", i+1, err)
		}
		if _, err := s.uc.Purchases.RegisterPurchase(ctx, admin, in); err != nil {
			return fmt.Errorf("compra %d: %w", i+1, err)
		}
		sum.Purchases++
	}
	return nil
}

func (s *Seeder) purchase(p Purchase, suppliers, branches, products map[string]string) (dto.RegisterPurchaseRequest, error) {
	in := dto.RegisterPurchaseRequest{
		SupplierID: suppliers[p.Supplier],
		BranchID:   branches[p.Branch],
		Date:       p.Date,
	}
	if in.SupplierID == "" || in.BranchID == "" {
		return in, fmt.Errorf("%w: proveedor %q o sucursal %q no declarados", domain.ErrInvalidValue, p.Supplier, p.Branch)
	}
	if in.Date == "" {
		in.Date = s.now().Format(dto.DateLayout)
	}
	for _, it := range p.Items {
		id, ok := products[it.SKU]
		if !ok {
			return in, fmt.Errorf("%w: SKU %q no declarado", domain.ErrInvalidValue, it.SKU)
		}
		item := dto.PurchaseItemRequest{ProductID: id, Quantity: it.Quantity}
		if it.UnitCost != "" {
			cost, err := amount(it.UnitCost)
			if err != nil {
				return in, err
			}
			item.UnitCost = &cost
		}
		in.Items = append(in.Items, item)
	}
	return in, nil
}

func amount(s string) (decimal.Decimal, error) {
	if strings.TrimSpace(s) == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, errors.Join(domain.ErrInvalidValue, err)
	}
	return d, nil
}
