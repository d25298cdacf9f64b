package memory

import (
	"testing"

	"cellarcore/testutil"
)

func TestStoreDoesNotImportServiceLayer(t *testing.T) {
	testutil.AssertNoDirectImports(t, ".", testutil.ServiceImportForbidden,
		"persistence backends must not depend on the service layer")
}
