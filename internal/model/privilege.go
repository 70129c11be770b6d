package model

// Privilege is a permission code checked by the HTTP middleware, e.g. "sale:create".
type Privilege string

const (
	PrivOrderCreate       Privilege = "order:create"
	PrivOrderView         Privilege = "order:view"
	PrivOrderUpdateStatus Privilege = "order:update_status"
	PrivSaleCreate        Privilege = "sale:create"
	PrivSaleView          Privilege = "sale:view"
	PrivCustomerView      Privilege = "customer:view"
	PrivReportView        Privilege = "report:view"
)

// AllPrivileges lists every privilege known to the system.
var AllPrivileges = []Privilege{
	PrivOrderCreate,
	PrivOrderView,
	PrivOrderUpdateStatus,
	PrivSaleCreate,
	PrivSaleView,
	PrivCustomerView,
	PrivReportView,
}

var rolePrivileges = map[Role][]Privilege{
	RoleCustomer: {PrivOrderCreate, PrivOrderView},
	RoleClerk: {
		PrivOrderView, PrivOrderUpdateStatus,
		PrivSaleCreate, PrivSaleView,
		PrivCustomerView,
	},
	RoleManager: {
		PrivOrderView, PrivOrderUpdateStatus,
		PrivSaleView, PrivCustomerView,
		PrivReportView,
	},
	RoleAdmin: AllPrivileges,
}

// PrivilegeCodes flattens privileges to strings for JWT claims.
func PrivilegeCodes(privs []Privilege) []string {
	codes := make([]string, len(privs))
	for i, p := range privs {
		codes[i] = string(p)
	}
	return codes
}
