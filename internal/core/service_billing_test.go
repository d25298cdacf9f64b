package core

import (
	"context"
	"testing"

	"cellarcore/pkg/domain"
)

func TestInvoiceAmountDerivedFromItems(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	customer, _, err := svc.CreateCustomer(ctx, Customer{Name: "Marunouchi Wine & Spirits"})
	if err != nil {
		t.Fatalf("create customer: %v", err)
	}

	invoice, _, err := svc.CreateInvoice(ctx, Invoice{
		CustomerID:  customer.ID,
		BillingDate: "2024-04-30",
		DueDate:     "2024-05-31",
		Items: []domain.InvoiceItem{
			{Type: "order", OrderID: "O-2024001", Amount: 254000},
			{Type: "cellar", UsageID: "U-2024001", Amount: 170000},
		},
	})
	if err != nil {
		t.Fatalf("create invoice: %v", err)
	}
	if invoice.Amount != 424000 {
		t.Fatalf("amount = %d, want 424000", invoice.Amount)
	}
	if invoice.Status != domain.InvoiceStatusUnpaid {
		t.Fatalf("default status = %q, want unpaid", invoice.Status)
	}

	items := []domain.InvoiceItem{{Type: "order", OrderID: "O-2024001", Amount: 254000}}
	updated, _, err := svc.UpdateInvoice(ctx, invoice.ID, domain.InvoicePatch{Items: &items})
	if err != nil {
		t.Fatalf("update invoice: %v", err)
	}
	if updated.Amount != 254000 {
		t.Fatalf("amount after item change = %d, want 254000", updated.Amount)
	}

	paid, _, err := svc.MarkInvoicePaid(ctx, invoice.ID)
	if err != nil {
		t.Fatalf("mark paid: %v", err)
	}
	if paid.Status != domain.InvoiceStatusPaid {
		t.Fatalf("status = %q, want paid", paid.Status)
	}
}

func TestDiscountRuleClearsRateWhenAmountSet(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	rate := 0.05
	rule, _, err := svc.CreateDiscountRule(ctx, DiscountRule{
		Name:         "Volume discount",
		Type:         "volume",
		DiscountRate: &rate,
		StartDate:    "2024-04-01",
		EndDate:      "2024-09-30",
	})
	if err != nil {
		t.Fatalf("create rule: %v", err)
	}
	if rule.ID != "DR001" {
		t.Fatalf("rule ID = %q, want DR001", rule.ID)
	}

	amount := int64(5000)
	amountPtr := &amount
	var noRate *float64
	updated, _, err := svc.UpdateDiscountRule(ctx, rule.ID, domain.DiscountRulePatch{
		DiscountRate:   &noRate,
		DiscountAmount: &amountPtr,
	})
	if err != nil {
		t.Fatalf("update rule: %v", err)
	}
	if updated.DiscountRate != nil {
		t.Fatalf("rate not cleared: %v", *updated.DiscountRate)
	}
	if updated.DiscountAmount == nil || *updated.DiscountAmount != 5000 {
		t.Fatalf("amount = %v, want 5000", updated.DiscountAmount)
	}

	got, err := svc.GetDiscountRule(ctx, rule.ID)
	if err != nil {
		t.Fatalf("get rule: %v", err)
	}
	if got.DiscountAmount == nil {
		t.Fatal("get returned stale rule")
	}
	if _, err := svc.GetDiscountRule(ctx, "DR999"); !domain.IsNotFound(err) {
		t.Fatalf("missing rule error = %v, want not-found", err)
	}
}

func TestNoticeLifecycle(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	notice, _, err := svc.CreateNotice(ctx, Notice{Title: "New vintage arrivals", Content: "April 22", Target: "all"})
	if err != nil {
		t.Fatalf("create notice: %v", err)
	}
	if notice.ID != "N001" {
		t.Fatalf("notice ID = %q, want N001", notice.ID)
	}
	if notice.Date == "" {
		t.Fatal("date should default to today")
	}

	title := "New vintage arrivals (updated)"
	updated, _, err := svc.UpdateNotice(ctx, notice.ID, domain.NoticePatch{Title: &title})
	if err != nil {
		t.Fatalf("update notice: %v", err)
	}
	if updated.Title != title {
		t.Fatalf("title = %q", updated.Title)
	}

	if _, err := svc.DeleteNotice(ctx, notice.ID); err != nil {
		t.Fatalf("delete notice: %v", err)
	}
	if _, err := svc.GetNotice(ctx, notice.ID); !domain.IsNotFound(err) {
		t.Fatalf("get deleted notice error = %v, want not-found", err)
	}
}
