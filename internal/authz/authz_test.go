package authz

import "testing"

func boolPtr(v bool) *bool { return &v }

func TestBuildMatrixIsTotalOverVocabulary(t *testing.T) {
	matrix := BuildMatrix(RawGrants{})
	if len(matrix) != len(Resources()) {
		t.Fatalf("expected %d resources, got %d", len(Resources()), len(matrix))
	}
	for _, resource := range Resources() {
		set, ok := matrix[resource]
		if !ok {
			t.Fatalf("missing resource %s", resource)
		}
		if len(set) != 0 {
			t.Fatalf("expected empty action set for %s, got %v", resource, set)
		}
	}
}

func TestBuildMatrixCopiesOnlyDefinedActions(t *testing.T) {
	matrix := BuildMatrix(RawGrants{
		ResourceClientes: {View: boolPtr(true), Create: boolPtr(true), Edit: boolPtr(false)},
	})

	set := matrix[ResourceClientes]
	if !set[ActionView] || !set[ActionCreate] {
		t.Fatalf("expected view and create granted, got %v", set)
	}
	if set[ActionEdit] {
		t.Fatal("expected edit explicitly denied")
	}
	if _, ok := set[ActionDelete]; ok {
		t.Fatal("expected delete to stay absent")
	}
	if len(set) != 3 {
		t.Fatalf("expected exactly the defined actions, got %v", set)
	}
}

func TestBuildMatrixIgnoresUnknownResources(t *testing.T) {
	matrix := BuildMatrix(RawGrants{
		Resource("estoque"): {View: boolPtr(true)},
	})
	if _, ok := matrix[Resource("estoque")]; ok {
		t.Fatal("unknown resource must not enter the matrix")
	}
	if len(matrix) != len(Resources()) {
		t.Fatalf("expected %d resources, got %d", len(Resources()), len(matrix))
	}
}

func TestCanDeniesOnAbsence(t *testing.T) {
	p := &Principal{
		Role: RoleFuncionario,
		Permissions: BuildMatrix(RawGrants{
			ResourceClientes: {View: boolPtr(true), Create: boolPtr(true), Edit: boolPtr(false)},
		}),
	}

	if !Can(p, ResourceClientes, ActionView) {
		t.Fatal("expected view granted")
	}
	if !Can(p, ResourceClientes, ActionCreate) {
		t.Fatal("expected create granted")
	}
	if Can(p, ResourceClientes, ActionEdit) {
		t.Fatal("expected explicit false to deny")
	}
	if Can(p, ResourceClientes, ActionDelete) {
		t.Fatal("expected absent action to deny")
	}
	if Can(p, ResourceFinanceira, ActionView) {
		t.Fatal("expected ungranted resource to deny")
	}
}

func TestCanNilSafety(t *testing.T) {
	if Can(nil, ResourceLogs, ActionView) {
		t.Fatal("nil principal must deny")
	}
	if Can(&Principal{}, ResourceLogs, ActionView) {
		t.Fatal("nil matrix must deny")
	}
}

func TestAdminMatrixGrantsEverything(t *testing.T) {
	p := &Principal{Role: RoleAdmin, Permissions: AdminMatrix()}
	for _, resource := range Resources() {
		for _, action := range []Action{ActionView, ActionCreate, ActionEdit, ActionDelete} {
			if !Can(p, resource, action) {
				t.Fatalf("expected admin to perform %s on %s", action, resource)
			}
		}
	}
}

func TestRequireRoleStrictEquality(t *testing.T) {
	admin := &Principal{Role: RoleAdmin}
	worker := &Principal{Role: RoleFuncionario}

	if !RequireRole(admin, RoleAdmin) {
		t.Fatal("expected admin to match admin")
	}
	if RequireRole(worker, RoleAdmin) {
		t.Fatal("funcionario must not match admin")
	}
	if RequireRole(admin, RoleFuncionario) {
		t.Fatal("admin must not match funcionario, no hierarchy")
	}
	if RequireRole(nil, RoleAdmin) {
		t.Fatal("nil principal must not match any role")
	}
}
