package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos. El borrado pasa por el
// guard de relaciones: un producto con historial (compras, ventas, traslados
// o auditorías) no puede borrarse.
type ProductUseCase struct {
	repo    repository.ProductRepository
	refRepo repository.ProductReferenceRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, refRepo repository.ProductReferenceRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo, refRepo: refRepo}
}

// Create crea un nuevo producto. SKU duplicado → ErrDuplicate.
func (uc *ProductUseCase) Create(role string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.SKU == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.CostPrice.IsNegative() || in.SellPrice.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetBySKU(in.SKU)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		SKU:         in.SKU,
		Name:        in.Name,
		Description: in.Description,
		CategoryID:  in.CategoryID,
		CostPrice:   in.CostPrice,
		SellPrice:   in.SellPrice,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	return dto.ToProductResponse(role, product), nil
}

// GetByID obtiene un producto por ID, proyectado según el rol.
func (uc *ProductUseCase) GetByID(role, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	return dto.ToProductResponse(role, product), nil
}

// Update actualiza un producto.
func (uc *ProductUseCase) Update(role, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.CategoryID != nil {
		product.CategoryID = *in.CategoryID
	}
	if in.CostPrice != nil {
		if in.CostPrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.CostPrice = *in.CostPrice
	}
	if in.SellPrice != nil {
		if in.SellPrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.SellPrice = *in.SellPrice
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return dto.ToProductResponse(role, product), nil
}

// List lista productos con paginación, proyectados según el rol.
func (uc *ProductUseCase) List(role string, limit, offset int) (*dto.ProductListResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *dto.ToProductResponse(role, p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// CanDelete responde si un producto es borrable: true solo si ninguna de las
// cuatro tablas de relación lo referencia. Cualquier match corta en false.
func (uc *ProductUseCase) CanDelete(id string) (bool, error) {
	checks := []func(string) (bool, error){
		uc.refRepo.HasPurchaseItems,
		uc.refRepo.HasSalesItems,
		uc.refRepo.HasTransferItems,
		uc.refRepo.HasAuditItems,
	}
	for _, has := range checks {
		found, err := has(id)
		if err != nil {
			return false, err
		}
		if found {
			return false, nil
		}
	}
	return true, nil
}

// Delete borra un producto tras pasar el guard de relaciones.
// Producto referenciado → ErrConflict; inexistente → ErrNotFound.
func (uc *ProductUseCase) Delete(id string) error {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	ok, err := uc.CanDelete(id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrConflict
	}
	return uc.repo.Delete(id)
}
