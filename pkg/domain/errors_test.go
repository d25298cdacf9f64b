package domain

import (
	"fmt"
	"testing"
)

func TestErrorKinds(t *testing.T) {
	nf := NotFoundError{Entity: EntityCustomer, ID: "C999"}
	ref := ReferencedError{Entity: EntityDeliveryLocation, ID: "D001", ReferencedBy: EntityOrder, ReferenceID: "O-2024001"}
	conflict := ConflictError{Entity: EntityOrder, ID: "O-2024001", Reason: "order is not pending"}

	if !IsNotFound(nf) || IsNotFound(ref) || IsNotFound(conflict) {
		t.Fatalf("IsNotFound misclassified")
	}
	if !IsReferenced(ref) || IsReferenced(nf) {
		t.Fatalf("IsReferenced misclassified")
	}
	if !IsConflict(conflict) || IsConflict(nf) {
		t.Fatalf("IsConflict misclassified")
	}

	wrapped := fmt.Errorf("delete delivery location: %w", ref)
	if !IsReferenced(wrapped) {
		t.Fatalf("wrapped ReferencedError not detected")
	}
	if IsNotFound(wrapped) {
		t.Fatalf("wrapped ReferencedError must not read as not-found")
	}
}

func TestErrorMessages(t *testing.T) {
	nf := NotFoundError{Entity: EntityOrder, ID: "O-2024009"}
	if nf.Error() != `order "O-2024009" not found` {
		t.Fatalf("unexpected message %q", nf.Error())
	}
	ref := ReferencedError{Entity: EntityDeliveryLocation, ID: "D001", ReferencedBy: EntityOrder, ReferenceID: "O-2024001"}
	if ref.Error() != `deliveryLocation "D001" still referenced by order "O-2024001"` {
		t.Fatalf("unexpected message %q", ref.Error())
	}
}
