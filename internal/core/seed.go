package core

import (
	"context"
	"fmt"

	"cellarcore/pkg/domain"
)

// Seed loads the demo dataset into an empty store in one transaction. It is
// idempotent in the sense that a non-empty store is left untouched.
func Seed(ctx context.Context, store domain.PersistentStore) error {
	var empty bool
	if err := store.View(ctx, func(view domain.TransactionView) error {
		empty = len(view.ListCustomers()) == 0
		return nil
	}); err != nil {
		return err
	}
	if !empty {
		return nil
	}
	_, err := store.RunInTransaction(ctx, seed)
	if err != nil {
		return fmt.Errorf("seed demo data: %w", err)
	}
	return nil
}

func seed(tx domain.Transaction) error {
	customers := []domain.Customer{
		{Base: domain.Base{ID: "C001"}, Name: "Marunouchi Wine & Spirits", ContactPerson: "Taro Yamada", Email: "yamada@marunouchi-wine.example", Phone: "03-1234-5678", Address: "1-2-3 Marunouchi, Chiyoda, Tokyo"},
		{Base: domain.Base{ID: "C002"}, Name: "Osaka Liquor Wholesale", ContactPerson: "Hanako Sato", Email: "sato@osaka-liquor.example", Phone: "06-2345-6789", Address: "4-5-6 Umeda, Kita, Osaka"},
		{Base: domain.Base{ID: "C003"}, Name: "Yokohama Grand Hotel Group", ContactPerson: "Jiro Suzuki", Email: "suzuki@ygh.example", Phone: "045-345-6789", Address: "7-8-9 Minatomirai, Nishi, Yokohama"},
	}
	for _, c := range customers {
		if _, err := tx.CreateCustomer(c); err != nil {
			return err
		}
	}

	locations := []domain.DeliveryLocation{
		{Base: domain.Base{ID: "D001"}, CustomerID: "C001", Name: "Marunouchi Main Store", Address: "1-2-3 Marunouchi, Chiyoda, Tokyo", ContactPerson: "Taro Yamada", Phone: "03-1234-5678", DefaultSalesType: domain.SalesTypeStandard},
		{Base: domain.Base{ID: "D002"}, CustomerID: "C001", Name: "Ginza Restaurant Annex", Address: "5-6-7 Ginza, Chuo, Tokyo", ContactPerson: "Kenta Mori", Phone: "03-8765-4321", DefaultSalesType: domain.SalesTypeCellar},
		{Base: domain.Base{ID: "D003"}, CustomerID: "C002", Name: "Umeda Wine Bar", Address: "4-5-6 Umeda, Kita, Osaka", ContactPerson: "Hanako Sato", Phone: "06-2345-6789", DefaultSalesType: domain.SalesTypeCellar},
		{Base: domain.Base{ID: "D004"}, CustomerID: "C003", Name: "Minatomirai Banquet Hall", Address: "7-8-9 Minatomirai, Nishi, Yokohama", ContactPerson: "Jiro Suzuki", Phone: "045-345-6789", DefaultSalesType: domain.SalesTypeStandard},
	}
	for _, l := range locations {
		if _, err := tx.CreateDeliveryLocation(l); err != nil {
			return err
		}
	}

	products := []domain.Product{
		{Base: domain.Base{ID: "P001"}, Name: "Château Margaux 2015", Category: "red", Price: 85000, Stock: 15, Region: "Bordeaux", Description: "First growth, full bodied"},
		{Base: domain.Base{ID: "P002"}, Name: "Chablis Grand Cru 2019", Category: "white", Price: 42000, Stock: 8, Region: "Burgundy", Description: "Mineral, crisp finish"},
		{Base: domain.Base{ID: "P003"}, Name: "Barolo Riserva 2017", Category: "red", Price: 28000, Stock: 22, Region: "Piedmont", Description: "Nebbiolo, long aging potential"},
		{Base: domain.Base{ID: "P004"}, Name: "Champagne Brut Millésimé 2016", Category: "sparkling", Price: 36000, Stock: 18, Region: "Champagne", Description: "Vintage brut, fine mousse"},
		{Base: domain.Base{ID: "P005"}, Name: "Riesling Kabinett 2021", Category: "white", Price: 15000, Stock: 30, Region: "Mosel", Description: "Off-dry, bright acidity"},
	}
	for _, p := range products {
		if _, err := tx.CreateProduct(p); err != nil {
			return err
		}
	}

	orders := []domain.Order{
		{Base: domain.Base{ID: "O-2024001"}, CustomerID: "C001", DeliveryLocationID: "D001", OrderDate: "2024-04-10", Status: domain.OrderStatusDelivered, SalesType: domain.SalesTypeStandard, AssignedTo: "Sato", Items: []domain.OrderItem{
			{ProductID: "P001", Quantity: 2, Price: 85000, NormalSaleFlag: true},
			{ProductID: "P002", Quantity: 2, Price: 42000, NormalSaleFlag: true},
		}},
		{Base: domain.Base{ID: "O-2024002"}, CustomerID: "C002", DeliveryLocationID: "D003", OrderDate: "2024-04-15", Status: domain.OrderStatusShipped, SalesType: domain.SalesTypeCellar, AssignedTo: "Tanaka", Items: []domain.OrderItem{
			{ProductID: "P003", Quantity: 3, Price: 28000, NormalSaleFlag: false},
			{ProductID: "P005", Quantity: 3, Price: 15000, NormalSaleFlag: false},
		}},
		{Base: domain.Base{ID: "O-2024003"}, CustomerID: "C003", DeliveryLocationID: "D004", OrderDate: "2024-04-20", Status: domain.OrderStatusPending, SalesType: domain.SalesTypeStandard, AssignedTo: "Sato", Items: []domain.OrderItem{
			{ProductID: "P004", Quantity: 2, Price: 36000, NormalSaleFlag: true},
			{ProductID: "P005", Quantity: 1, Price: 15000, NormalSaleFlag: true},
		}},
	}
	for _, o := range orders {
		if _, err := tx.CreateOrder(o); err != nil {
			return err
		}
	}

	confirmed := "2024-04-12"
	deliveries := []domain.Delivery{
		{Base: domain.Base{ID: "DEL-2024001"}, OrderID: "O-2024001", DeliveryDate: "2024-04-12", Status: domain.DeliveryStatusConfirmed, ConfirmedDate: &confirmed},
		{Base: domain.Base{ID: "DEL-2024002"}, OrderID: "O-2024002", DeliveryDate: "2024-04-18", Status: domain.DeliveryStatusPendingConfirmation},
	}
	for _, d := range deliveries {
		if _, err := tx.CreateDelivery(d); err != nil {
			return err
		}
	}

	cellarStock := []domain.CellarStock{
		{Base: domain.Base{ID: "CS001"}, DeliveryLocationID: "D002", ProductID: "P001", CurrentStock: 10, SafetyStock: 5, LastReplenishmentDate: "2024-04-01"},
		{Base: domain.Base{ID: "CS002"}, DeliveryLocationID: "D002", ProductID: "P002", CurrentStock: 6, SafetyStock: 6, LastReplenishmentDate: "2024-03-25"},
		{Base: domain.Base{ID: "CS003"}, DeliveryLocationID: "D003", ProductID: "P003", CurrentStock: 12, SafetyStock: 8, LastReplenishmentDate: "2024-04-05"},
		{Base: domain.Base{ID: "CS004"}, DeliveryLocationID: "D003", ProductID: "P005", CurrentStock: 3, SafetyStock: 6, LastReplenishmentDate: "2024-03-15"},
	}
	for _, c := range cellarStock {
		if _, err := tx.CreateCellarStock(c); err != nil {
			return err
		}
	}

	usageRecords := []domain.UsageRecord{
		{Base: domain.Base{ID: "U-2024001"}, DeliveryLocationID: "D002", ProductID: "P001", Quantity: 2, UsageDate: "2024-04-05", RegisteredBy: "Mori", Status: domain.UsageStatusBilled},
		{Base: domain.Base{ID: "U-2024002"}, DeliveryLocationID: "D002", ProductID: "P002", Quantity: 1, UsageDate: "2024-04-08", RegisteredBy: "Mori", Status: domain.UsageStatusUnbilled},
		{Base: domain.Base{ID: "U-2024003"}, DeliveryLocationID: "D003", ProductID: "P003", Quantity: 3, UsageDate: "2024-04-12", RegisteredBy: "Sato", Status: domain.UsageStatusUnbilled},
	}
	for _, u := range usageRecords {
		if _, err := tx.CreateUsageRecord(u); err != nil {
			return err
		}
	}

	ginza := "D002"
	umeda := "D003"
	activities := []domain.Activity{
		{Base: domain.Base{ID: "A-2024001"}, Type: "visit", CustomerID: "C001", DeliveryLocationID: &ginza, Date: "2024-04-02", Status: "completed", Subject: "Spring lineup tasting", Description: "Presented the new Burgundy arrivals to the sommelier team.", AssignedTo: "Sato"},
		{Base: domain.Base{ID: "A-2024002"}, Type: "call", CustomerID: "C002", DeliveryLocationID: &umeda, Date: "2024-04-09", Status: "completed", Subject: "Replenishment schedule", Description: "Agreed on bi-weekly cellar replenishment through June.", AssignedTo: "Tanaka"},
		{Base: domain.Base{ID: "A-2024003"}, Type: "mail", CustomerID: "C003", Date: "2024-04-16", Status: "completed", Subject: "Banquet plan quotation", Description: "Sent sparkling wine quotation for the May banquet season.", AssignedTo: "Sato"},
		{Base: domain.Base{ID: "A-2024004"}, Type: "visit", CustomerID: "C001", Date: "2024-04-25", Status: "planned", Subject: "Quarterly review", Description: "Review Q1 volume and discuss summer promotions.", AssignedTo: "Sato"},
	}
	for _, a := range activities {
		if _, err := tx.CreateActivity(a); err != nil {
			return err
		}
	}

	volumeRate := 0.05
	seasonRate := 0.10
	fixedAmount := int64(5000)
	discountRules := []domain.DiscountRule{
		{Base: domain.Base{ID: "DR001"}, Name: "Volume discount", Type: "volume", Condition: "order total >= 200000", DiscountRate: &volumeRate, ApplyTo: "order", StartDate: "2024-04-01", EndDate: "2024-09-30"},
		{Base: domain.Base{ID: "DR002"}, Name: "Early summer campaign", Type: "seasonal", Condition: "category = sparkling", DiscountRate: &seasonRate, ApplyTo: "item", StartDate: "2024-05-01", EndDate: "2024-06-30"},
		{Base: domain.Base{ID: "DR003"}, Name: "New account credit", Type: "fixed", Condition: "first order", DiscountAmount: &fixedAmount, ApplyTo: "order", StartDate: "2024-04-01", EndDate: "2024-12-31"},
	}
	for _, r := range discountRules {
		if _, err := tx.CreateDiscountRule(r); err != nil {
			return err
		}
	}

	invoices := []domain.Invoice{
		{Base: domain.Base{ID: "INV-2024001"}, CustomerID: "C001", BillingDate: "2024-04-30", DueDate: "2024-05-31", Status: domain.InvoiceStatusUnpaid, Items: []domain.InvoiceItem{
			{Type: "order", OrderID: "O-2024001", Amount: 254000},
		}},
		{Base: domain.Base{ID: "INV-2024002"}, CustomerID: "C001", BillingDate: "2024-03-31", DueDate: "2024-04-30", Status: domain.InvoiceStatusPaid, Items: []domain.InvoiceItem{
			{Type: "cellar", UsageID: "U-2024001", Amount: 170000},
		}},
	}
	for _, inv := range invoices {
		if _, err := tx.CreateInvoice(inv); err != nil {
			return err
		}
	}

	notices := []domain.Notice{
		{Base: domain.Base{ID: "N001"}, Title: "New vintage arrivals", Content: "The 2021 Burgundy allocation arrives in the warehouse on April 22.", Date: "2024-04-01", Target: "all"},
		{Base: domain.Base{ID: "N002"}, Title: "Holiday delivery schedule", Content: "No deliveries between April 29 and May 5. Please place orders by April 24.", Date: "2024-04-10", Target: "all"},
		{Base: domain.Base{ID: "N003"}, Title: "Cellar price revision", Content: "Cellar replenishment prices for white wines are revised from June 1.", Date: "2024-04-18", Target: "cellar"},
	}
	for _, n := range notices {
		if _, err := tx.CreateNotice(n); err != nil {
			return err
		}
	}
	return nil
}
