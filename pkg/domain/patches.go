package domain

// Patch types carry partial updates. Nil fields are left untouched; set
// fields overwrite the stored value. Apply methods are used as transaction
// mutators by the service layer.

// CustomerPatch is a partial customer update.
type CustomerPatch struct {
	Name          *string
	ContactPerson *string
	Email         *string
	Phone         *string
	Address       *string
}

// Apply merges the patch into c.
func (p CustomerPatch) Apply(c *Customer) {
	setString(&c.Name, p.Name)
	setString(&c.ContactPerson, p.ContactPerson)
	setString(&c.Email, p.Email)
	setString(&c.Phone, p.Phone)
	setString(&c.Address, p.Address)
}

// DeliveryLocationPatch is a partial delivery location update.
type DeliveryLocationPatch struct {
	CustomerID       *string
	Name             *string
	Address          *string
	ContactPerson    *string
	Phone            *string
	DefaultSalesType *SalesType
}

// Apply merges the patch into l.
func (p DeliveryLocationPatch) Apply(l *DeliveryLocation) {
	setString(&l.CustomerID, p.CustomerID)
	setString(&l.Name, p.Name)
	setString(&l.Address, p.Address)
	setString(&l.ContactPerson, p.ContactPerson)
	setString(&l.Phone, p.Phone)
	if p.DefaultSalesType != nil {
		l.DefaultSalesType = *p.DefaultSalesType
	}
}

// ProductPatch is a partial product update.
type ProductPatch struct {
	Name        *string
	Category    *string
	Price       *int64
	Stock       *int
	Region      *string
	Description *string
}

// Apply merges the patch into pr.
func (p ProductPatch) Apply(pr *Product) {
	setString(&pr.Name, p.Name)
	setString(&pr.Category, p.Category)
	if p.Price != nil {
		pr.Price = *p.Price
	}
	if p.Stock != nil {
		pr.Stock = *p.Stock
	}
	setString(&pr.Region, p.Region)
	setString(&pr.Description, p.Description)
}

// OrderPatch is a partial order update. There is deliberately no total
// amount field: the total is derived from items on every write.
type OrderPatch struct {
	CustomerID         *string
	DeliveryLocationID *string
	OrderDate          *string
	Status             *OrderStatus
	SalesType          *SalesType
	AssignedTo         *string
	Items              *[]OrderItem
}

// Apply merges the patch into o.
func (p OrderPatch) Apply(o *Order) {
	setString(&o.CustomerID, p.CustomerID)
	setString(&o.DeliveryLocationID, p.DeliveryLocationID)
	setString(&o.OrderDate, p.OrderDate)
	if p.Status != nil {
		o.Status = *p.Status
	}
	if p.SalesType != nil {
		o.SalesType = *p.SalesType
	}
	setString(&o.AssignedTo, p.AssignedTo)
	if p.Items != nil {
		o.Items = append([]OrderItem(nil), (*p.Items)...)
	}
}

// DeliveryPatch is a partial delivery update.
type DeliveryPatch struct {
	DeliveryDate  *string
	Status        *DeliveryStatus
	ConfirmedDate *string
}

// Apply merges the patch into d.
func (p DeliveryPatch) Apply(d *Delivery) {
	setString(&d.DeliveryDate, p.DeliveryDate)
	if p.Status != nil {
		d.Status = *p.Status
	}
	if p.ConfirmedDate != nil {
		date := *p.ConfirmedDate
		d.ConfirmedDate = &date
	}
}

// CellarStockPatch is a partial cellar stock update.
type CellarStockPatch struct {
	CurrentStock          *int
	SafetyStock           *int
	LastReplenishmentDate *string
}

// Apply merges the patch into c.
func (p CellarStockPatch) Apply(c *CellarStock) {
	if p.CurrentStock != nil {
		c.CurrentStock = *p.CurrentStock
	}
	if p.SafetyStock != nil {
		c.SafetyStock = *p.SafetyStock
	}
	setString(&c.LastReplenishmentDate, p.LastReplenishmentDate)
}

// UsageRecordPatch is a partial usage record update.
type UsageRecordPatch struct {
	Quantity     *int
	UsageDate    *string
	RegisteredBy *string
	Status       *UsageStatus
}

// Apply merges the patch into u.
func (p UsageRecordPatch) Apply(u *UsageRecord) {
	if p.Quantity != nil {
		u.Quantity = *p.Quantity
	}
	setString(&u.UsageDate, p.UsageDate)
	setString(&u.RegisteredBy, p.RegisteredBy)
	if p.Status != nil {
		u.Status = *p.Status
	}
}

// ActivityPatch is a partial activity update.
type ActivityPatch struct {
	Type               *string
	DeliveryLocationID **string
	Date               *string
	Status             *string
	Subject            *string
	Description        *string
	AssignedTo         *string
}

// Apply merges the patch into a.
func (p ActivityPatch) Apply(a *Activity) {
	setString(&a.Type, p.Type)
	if p.DeliveryLocationID != nil {
		a.DeliveryLocationID = *p.DeliveryLocationID
	}
	setString(&a.Date, p.Date)
	setString(&a.Status, p.Status)
	setString(&a.Subject, p.Subject)
	setString(&a.Description, p.Description)
	setString(&a.AssignedTo, p.AssignedTo)
}

// DiscountRulePatch is a partial discount rule update.
type DiscountRulePatch struct {
	Name           *string
	Type           *string
	Condition      *string
	DiscountRate   **float64
	DiscountAmount **int64
	ApplyTo        *string
	StartDate      *string
	EndDate        *string
}

// Apply merges the patch into r.
func (p DiscountRulePatch) Apply(r *DiscountRule) {
	setString(&r.Name, p.Name)
	setString(&r.Type, p.Type)
	setString(&r.Condition, p.Condition)
	if p.DiscountRate != nil {
		r.DiscountRate = *p.DiscountRate
	}
	if p.DiscountAmount != nil {
		r.DiscountAmount = *p.DiscountAmount
	}
	setString(&r.ApplyTo, p.ApplyTo)
	setString(&r.StartDate, p.StartDate)
	setString(&r.EndDate, p.EndDate)
}

// InvoicePatch is a partial invoice update. When Items is set the invoice
// amount is recomputed from the new items.
type InvoicePatch struct {
	BillingDate *string
	DueDate     *string
	Status      *InvoiceStatus
	Items       *[]InvoiceItem
}

// Apply merges the patch into inv.
func (p InvoicePatch) Apply(inv *Invoice) {
	setString(&inv.BillingDate, p.BillingDate)
	setString(&inv.DueDate, p.DueDate)
	if p.Status != nil {
		inv.Status = *p.Status
	}
	if p.Items != nil {
		inv.Items = append([]InvoiceItem(nil), (*p.Items)...)
		inv.Amount = InvoiceTotal(inv.Items)
	}
}

// NoticePatch is a partial notice update.
type NoticePatch struct {
	Title   *string
	Content *string
	Date    *string
	Target  *string
}

// Apply merges the patch into n.
func (p NoticePatch) Apply(n *Notice) {
	setString(&n.Title, p.Title)
	setString(&n.Content, p.Content)
	setString(&n.Date, p.Date)
	setString(&n.Target, p.Target)
}

func setString[T ~string](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
