package generator

import "testing"

func TestToSnakeCase(t *testing.T) {
	cases := map[string]string{
		"PhysicalFunctionNumber": "physical_function_number",
		"physicalFunctionNumber": "physical_function_number",
		"":                       "",
		"F":                     "f",
		"_SomeThing":            "_some_thing",
		"Pf":                    "pf",
		"pF":                    "p_f",
		"NVMe":                  "nvme",
		"NVME":                  "nvme",
		"nVME":                  "n_vme",
		"nVMEfoobar":            "n_vm_efoobar",
		"nVMEFoobar":            "n_vme_foobar",
		"PCIEFunctions":         "pcie_functions",
		"PFFunctionNumber":      "pf_function_number",
		"Widget":                "widget",
		"ID":                    "id",
	}
	for in, want := range cases {
		if got := ToSnakeCase(in); got != want {
			t.Errorf("ToSnakeCase(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestEscapeReservedWord(t *testing.T) {
	if got := Escape("type"); got != "type_" {
		t.Errorf("Escape(type) = %q, want type_", got)
	}
	if got := Escape("widget"); got != "widget" {
		t.Errorf("Escape(widget) = %q, want widget", got)
	}
}

func TestToSnakeCaseIdempotent(t *testing.T) {
	for _, s := range []string{"PhysicalFunctionNumber", "NVMe", "PCIEFunctions"} {
		once := ToSnakeCase(s)
		twice := ToSnakeCase(once)
		if once != twice {
			t.Errorf("ToSnakeCase not idempotent for %q: %q vs %q", s, once, twice)
		}
	}
}
