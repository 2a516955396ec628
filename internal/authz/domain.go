// Package authz holds the permission model and the authorization
// decision functions shared by route protection and capability listing.
package authz

// Role classifies an account. Exactly one role per user.
type Role string

// Known roles.
const (
	RoleAdmin       Role = "admin"
	RoleFuncionario Role = "funcionario"
)

// Resource identifies a protected area of the application.
type Resource string

// Fixed resource vocabulary. The permission matrix is always total
// over this set; anything outside it is denied.
const (
	ResourceLogs       Resource = "logs"
	ResourceDashboard  Resource = "dashboard"
	ResourceObras      Resource = "obras"
	ResourceFinanceira Resource = "financeira"
	ResourceClientes   Resource = "clientes"
)

// Resources returns the fixed resource vocabulary.
func Resources() []Resource {
	return []Resource{
		ResourceLogs,
		ResourceDashboard,
		ResourceObras,
		ResourceFinanceira,
		ResourceClientes,
	}
}

// Action identifies an operation on a resource.
type Action string

// Known actions.
const (
	ActionView   Action = "view"
	ActionCreate Action = "create"
	ActionEdit   Action = "edit"
	ActionDelete Action = "delete"
)

// ActionSet maps an action to whether it is granted. A missing key is
// a denial, same as an explicit false.
type ActionSet map[Action]bool

// Matrix maps every known resource to its action set.
type Matrix map[Resource]ActionSet

// RawActions is the per-resource grant record as stored. Pointer
// fields keep "absent" distinct from "false": nil means the source
// data did not specify the action.
type RawActions struct {
	View   *bool `json:"view,omitempty"`
	Create *bool `json:"create,omitempty"`
	Edit   *bool `json:"edit,omitempty"`
	Delete *bool `json:"delete,omitempty"`
}

// RawGrants is the grant record keyed by resource name as loaded from
// the store. Unknown resource keys are ignored by BuildMatrix.
type RawGrants map[Resource]RawActions

// BuildMatrix translates raw grants into the canonical matrix. The
// result is total over the fixed vocabulary; each action set carries
// only the actions the raw grant defines. Deterministic, no I/O.
func BuildMatrix(grants RawGrants) Matrix {
	matrix := make(Matrix, len(Resources()))
	for _, resource := range Resources() {
		set := ActionSet{}
		if raw, ok := grants[resource]; ok {
			if raw.View != nil {
				set[ActionView] = *raw.View
			}
			if raw.Create != nil {
				set[ActionCreate] = *raw.Create
			}
			if raw.Edit != nil {
				set[ActionEdit] = *raw.Edit
			}
			if raw.Delete != nil {
				set[ActionDelete] = *raw.Delete
			}
		}
		matrix[resource] = set
	}
	return matrix
}

// AdminMatrix returns a matrix granting every action on every
// resource. Used when provisioning admin accounts without explicit
// grant rows.
func AdminMatrix() Matrix {
	matrix := make(Matrix, len(Resources()))
	for _, resource := range Resources() {
		matrix[resource] = ActionSet{
			ActionView:   true,
			ActionCreate: true,
			ActionEdit:   true,
			ActionDelete: true,
		}
	}
	return matrix
}

// Principal is the authenticated subject for a request. Constructed
// once per verified token, never mutated, discarded at request end.
type Principal struct {
	UserID      int64
	Login       string
	Role        Role
	Permissions Matrix
}
