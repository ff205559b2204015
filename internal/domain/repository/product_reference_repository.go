package repository

// ProductReferenceRepository es el puerto del guard de relaciones: cuatro
// chequeos de existencia independientes, solo lectura. Un producto con al
// menos una referencia en cualquiera de estas tablas no puede borrarse.
type ProductReferenceRepository interface {
	HasPurchaseItems(productID string) (bool, error)
	HasSalesItems(productID string) (bool, error)
	HasTransferItems(productID string) (bool, error)
	HasAuditItems(productID string) (bool, error)
}
