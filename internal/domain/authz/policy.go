package authz

import "github.com/jhoicas/almacen-api/internal/domain/entity"

// Action identifica una operación gobernada por la tabla de permisos.
type Action string

const (
	ActionViewCostPrice    Action = "view_cost_price"
	ActionCreateSupplier   Action = "create_supplier"
	ActionCreateProduct    Action = "create_product"
	ActionDeleteProduct    Action = "delete_product"
	ActionCreateTransfer   Action = "create_transfer"
	ActionCompleteTransfer Action = "complete_transfer"
	ActionReconcileAudit   Action = "reconcile_audit"
	ActionViewInventory    Action = "view_inventory"
)

// policy es la tabla rol → acciones permitidas. Rol o acción desconocidos
// niegan por defecto; la función es total sobre cualquier par de strings.
var policy = map[string]map[Action]bool{
	entity.RoleAdmin: {
		ActionViewCostPrice:    true,
		ActionCreateSupplier:   true,
		ActionCreateProduct:    true,
		ActionDeleteProduct:    true,
		ActionCreateTransfer:   true,
		ActionCompleteTransfer: true,
		ActionReconcileAudit:   true,
		ActionViewInventory:    true,
	},
	entity.RoleManager: {
		ActionCreateSupplier:   true,
		ActionCreateProduct:    true,
		ActionCreateTransfer:   true,
		ActionCompleteTransfer: true,
		ActionReconcileAudit:   true,
		ActionViewInventory:    true,
	},
	entity.RoleStaff: {
		ActionViewInventory: true,
	},
}

// Can responde si el rol puede ejecutar la acción. Función pura: no consulta
// la base de datos; el rol viene del token JWT vigente.
func Can(role string, action Action) bool {
	return policy[role][action]
}
