package testutil

import "testing"

func TestPredicates(t *testing.T) {
	cases := []struct {
		name string
		fn   func(string) bool
		path string
		want bool
	}{
		{"internal matches", InternalImportForbidden, "cellarcore/internal/core", true},
		{"domain is not internal", InternalImportForbidden, "cellarcore/pkg/domain", false},
		{"third party matches", ThirdPartyImportForbidden, "go.uber.org/zap", true},
		{"stdlib passes", ThirdPartyImportForbidden, "encoding/json", false},
		{"module path passes", ThirdPartyImportForbidden, "cellarcore/pkg/domain", false},
		{"service matches", ServiceImportForbidden, "cellarcore/internal/core", true},
		{"service subpath differs", ServiceImportForbidden, "cellarcore/internal/core/sub", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.fn(tc.path); got != tc.want {
				t.Fatalf("%s(%q) = %v, want %v", tc.name, tc.path, got, tc.want)
			}
		})
	}
}

func TestDirectImportViolations(t *testing.T) {
	viols, err := directImportViolations(".", func(path string) bool {
		return path == "go/parser"
	})
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(viols) != 1 {
		t.Fatalf("violations = %v, want the go/parser import of guard.go", viols)
	}
}
