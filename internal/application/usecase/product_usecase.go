package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// ProductUseCase aplica reglas de negocio para productos, siempre dentro de la
// empresa del caller. Lectura abierta a todos los roles; mutación solo
// Admin/Manager.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso con el puerto de persistencia.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// Create crea un producto en la empresa del caller.
func (uc *ProductUseCase) Create(ctx context.Context, auth domain.AuthContext, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if err := auth.AuthorizeRole(entity.RoleAdmin, entity.RoleManager); err != nil {
		return nil, err
	}
	if in.Quantity < 0 || in.Price.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	product := &entity.Product{
		ID:        uuid.New().String(),
		CompanyID: auth.CompanyID,
		Name:      in.Name,
		Quantity:  in.Quantity,
		Price:     in.Price.Round(2),
		Category:  in.Category,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto de la empresa del caller; de otra empresa -> ErrNotFound.
func (uc *ProductUseCase) GetByID(ctx context.Context, auth domain.AuthContext, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByIDAndCompany(ctx, id, auth.CompanyID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product), nil
}

// List lista los productos de la empresa del caller.
func (uc *ProductUseCase) List(ctx context.Context, auth domain.AuthContext) ([]*dto.ProductResponse, error) {
	products, err := uc.repo.ListByCompany(ctx, auth.CompanyID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p))
	}
	return out, nil
}

// Update aplica una actualización parcial: solo los campos presentes.
// Quantity aquí es la edición manual del stock: escape hatch deliberado para
// correcciones, no pasa por el ledger ni se reconcilia contra él.
func (uc *ProductUseCase) Update(ctx context.Context, auth domain.AuthContext, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if err := auth.AuthorizeRole(entity.RoleAdmin, entity.RoleManager); err != nil {
		return nil, err
	}
	product, err := uc.repo.GetByIDAndCompany(ctx, id, auth.CompanyID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Quantity != nil {
		if *in.Quantity < 0 {
			return nil, domain.ErrInvalidInput
		}
		product.Quantity = *in.Quantity
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.Price = in.Price.Round(2)
	}
	if in.Category != nil {
		product.Category = *in.Category
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Delete elimina un producto de la empresa del caller. Las transacciones
// históricas del producto conservan su id (referencia blanda).
func (uc *ProductUseCase) Delete(ctx context.Context, auth domain.AuthContext, id string) error {
	if err := auth.AuthorizeRole(entity.RoleAdmin, entity.RoleManager); err != nil {
		return err
	}
	product, err := uc.repo.GetByIDAndCompany(ctx, id, auth.CompanyID)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(ctx, id)
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:        p.ID,
		CompanyID: p.CompanyID,
		Name:      p.Name,
		Quantity:  p.Quantity,
		Price:     p.Price,
		Category:  p.Category,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
