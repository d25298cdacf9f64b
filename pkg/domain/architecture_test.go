package domain

import (
	"testing"

	"cellarcore/testutil"
)

// The domain package is the dependency floor: stdlib only, nothing from
// internal packages or external modules.
func TestDomainImportBoundaries(t *testing.T) {
	testutil.AssertNoDirectImports(t, ".", testutil.InternalImportForbidden,
		"domain must not depend on internal packages")
	testutil.AssertNoDirectImports(t, ".", testutil.ThirdPartyImportForbidden,
		"domain must not depend on external modules")
}
