package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrInvalidState       = errors.New("estado inválido para la operación")
)

// StockError detalla un débito rechazado: qué producto, en qué bodega,
// cuánto se pidió y cuánto había disponible. Envuelve ErrInsufficientStock
// para que errors.Is siga funcionando en los handlers.
type StockError struct {
	ProductID   string
	WarehouseID string
	Requested   decimal.Decimal
	Available   decimal.Decimal
}

func (e *StockError) Error() string {
	return fmt.Sprintf("stock insuficiente: producto %s en bodega %s (solicitado %s, disponible %s)",
		e.ProductID, e.WarehouseID, e.Requested, e.Available)
}

func (e *StockError) Unwrap() error { return ErrInsufficientStock }
