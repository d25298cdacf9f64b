// Package memory provides the in-memory transactional store backing all
// persistence drivers. State is held as id-indexed maps per collection and
// mutated through cloned transaction snapshots committed atomically.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"cellarcore/pkg/domain"
)

// Store implements domain.PersistentStore entirely in process memory.
type Store struct {
	mu     sync.RWMutex
	state  state
	engine *domain.RulesEngine
	now    func() time.Time
}

type state struct {
	customers         map[string]domain.Customer
	deliveryLocations map[string]domain.DeliveryLocation
	products          map[string]domain.Product
	orders            map[string]domain.Order
	deliveries        map[string]domain.Delivery
	cellarStock       map[string]domain.CellarStock
	usageRecords      map[string]domain.UsageRecord
	activities        map[string]domain.Activity
	discountRules     map[string]domain.DiscountRule
	invoices          map[string]domain.Invoice
	notices           map[string]domain.Notice
	// sequences tracks the highest allocated numeric suffix per ID prefix
	// (year-scoped prefixes such as "O-2024" get their own counter).
	sequences map[string]int
}

// New constructs an empty store. The rules engine may be nil, in which case
// transactions commit without rule evaluation.
func New(engine *domain.RulesEngine) *Store {
	return &Store{state: newState(), engine: engine, now: time.Now}
}

// SetNowFunc overrides the store clock. Intended for tests that need
// deterministic timestamps and year-scoped IDs.
func (s *Store) SetNowFunc(fn func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = fn
}

func newState() state {
	return state{
		customers:         map[string]domain.Customer{},
		deliveryLocations: map[string]domain.DeliveryLocation{},
		products:          map[string]domain.Product{},
		orders:            map[string]domain.Order{},
		deliveries:        map[string]domain.Delivery{},
		cellarStock:       map[string]domain.CellarStock{},
		usageRecords:      map[string]domain.UsageRecord{},
		activities:        map[string]domain.Activity{},
		discountRules:     map[string]domain.DiscountRule{},
		invoices:          map[string]domain.Invoice{},
		notices:           map[string]domain.Notice{},
		sequences:         map[string]int{},
	}
}

var _ domain.PersistentStore = (*Store)(nil)

// RunInTransaction clones current state, applies fn, evaluates rules against
// the mutated snapshot, and commits on success. Blocking violations abort the
// commit with a RuleViolationError.
func (s *Store) RunInTransaction(ctx context.Context, fn func(domain.Transaction) error) (domain.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tx := &transaction{state: cloneState(s.state), now: s.now().UTC()}
	if err := fn(tx); err != nil {
		return domain.Result{}, err
	}
	var result domain.Result
	if s.engine != nil && len(tx.changes) > 0 {
		res, err := s.engine.Evaluate(ctx, tx.Snapshot(), tx.changes)
		if err != nil {
			return domain.Result{}, err
		}
		result = res
		if result.HasBlocking() {
			return result, domain.RuleViolationError{Result: result}
		}
	}
	s.state = tx.state
	return result, nil
}

// View runs fn against a read-only snapshot of current state.
func (s *Store) View(_ context.Context, fn func(domain.TransactionView) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(stateView{state: &s.state})
}

// ExportState returns the full store contents as a serializable snapshot
// with every collection sorted by ID.
func (s *Store) ExportState() domain.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.snapshot()
}

// ImportState replaces store contents with the snapshot and re-seeds the ID
// sequence counters from the highest numeric suffix present per prefix.
func (s *Store) ImportState(snap domain.Snapshot) error {
	next := newState()
	for _, c := range snap.Customers {
		next.customers[c.ID] = cloneCustomer(c)
		next.noteID(c.ID)
	}
	for _, l := range snap.DeliveryLocations {
		next.deliveryLocations[l.ID] = cloneDeliveryLocation(l)
		next.noteID(l.ID)
	}
	for _, p := range snap.Products {
		next.products[p.ID] = cloneProduct(p)
		next.noteID(p.ID)
	}
	for _, o := range snap.Orders {
		next.orders[o.ID] = cloneOrder(o)
		next.noteID(o.ID)
	}
	for _, d := range snap.Deliveries {
		next.deliveries[d.ID] = cloneDelivery(d)
		next.noteID(d.ID)
	}
	for _, c := range snap.CellarStock {
		next.cellarStock[c.ID] = cloneCellarStock(c)
		next.noteID(c.ID)
	}
	for _, u := range snap.UsageRecords {
		next.usageRecords[u.ID] = cloneUsageRecord(u)
		next.noteID(u.ID)
	}
	for _, a := range snap.Activities {
		next.activities[a.ID] = cloneActivity(a)
		next.noteID(a.ID)
	}
	for _, r := range snap.DiscountRules {
		next.discountRules[r.ID] = cloneDiscountRule(r)
		next.noteID(r.ID)
	}
	for _, inv := range snap.Invoices {
		next.invoices[inv.ID] = cloneInvoice(inv)
		next.noteID(inv.ID)
	}
	for _, n := range snap.Notices {
		next.notices[n.ID] = cloneNotice(n)
		next.noteID(n.ID)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = next
	return nil
}

// Close is a no-op for the in-memory backend.
func (s *Store) Close() error { return nil }

// --- transaction ---

type transaction struct {
	state   state
	changes []domain.Change
	now     time.Time
}

var _ domain.Transaction = (*transaction)(nil)

// Snapshot returns a read-only view over the transaction's pending state.
func (t *transaction) Snapshot() domain.TransactionView {
	return stateView{state: &t.state}
}

func (t *transaction) recordChange(entity domain.EntityType, id string, action domain.Action, before, after any) {
	t.changes = append(t.changes, domain.Change{Entity: entity, EntityID: id, Action: action, Before: before, After: after})
}

// nextID allocates the next ID for a fixed prefix, e.g. C001, CS012.
func (t *transaction) nextID(prefix string) string {
	t.state.sequences[prefix]++
	return fmt.Sprintf("%s%03d", prefix, t.state.sequences[prefix])
}

// nextYearID allocates the next ID for a year-scoped prefix, e.g. O-2024003.
// Counters re-seed naturally at year boundaries because each year has its
// own sequence key.
func (t *transaction) nextYearID(prefix string) string {
	year := t.now.Format("2006")
	key := prefix + year
	t.state.sequences[key]++
	return fmt.Sprintf("%s%s%03d", prefix, year, t.state.sequences[key])
}

// noteID bumps the sequence counter covering an externally supplied ID so
// later allocations never collide with it.
func (s *state) noteID(id string) {
	key, seq, ok := splitID(id)
	if !ok {
		return
	}
	if seq > s.sequences[key] {
		s.sequences[key] = seq
	}
}

// splitID breaks an ID into its sequence key and numeric suffix. Year-scoped
// IDs like O-2024003 yield key "O-2024"; fixed-prefix IDs like C001 yield
// key "C".
func splitID(id string) (string, int, bool) {
	i := 0
	for i < len(id) && (id[i] < '0' || id[i] > '9') {
		i++
	}
	prefix, digits := id[:i], id[i:]
	if digits == "" {
		return "", 0, false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return "", 0, false
		}
	}
	if strings.HasSuffix(prefix, "-") && len(digits) > 4 {
		year, rest := digits[:4], digits[4:]
		seq := 0
		for _, r := range rest {
			seq = seq*10 + int(r-'0')
		}
		return prefix + year, seq, true
	}
	seq := 0
	for _, r := range digits {
		seq = seq*10 + int(r-'0')
	}
	return prefix, seq, true
}

// lessID orders IDs by prefix, then numerically by suffix, so C1000 sorts
// after C999 and listings stay in allocation order.
func lessID(a, b string) bool {
	ka, na, oka := splitID(a)
	kb, nb, okb := splitID(b)
	if !oka || !okb || ka != kb {
		return a < b
	}
	if na != nb {
		return na < nb
	}
	return a < b
}

// --- customers ---

func (t *transaction) CreateCustomer(c domain.Customer) (domain.Customer, error) {
	if c.ID == "" {
		c.ID = t.nextID("C")
	} else if _, exists := t.state.customers[c.ID]; exists {
		return domain.Customer{}, fmt.Errorf("customer %q already exists", c.ID)
	} else {
		t.state.noteID(c.ID)
	}
	c.CreatedAt, c.UpdatedAt = t.now, t.now
	t.state.customers[c.ID] = cloneCustomer(c)
	t.recordChange(domain.EntityCustomer, c.ID, domain.ActionCreate, nil, c)
	return c, nil
}

func (t *transaction) UpdateCustomer(id string, mutator func(*domain.Customer) error) (domain.Customer, error) {
	current, ok := t.state.customers[id]
	if !ok {
		return domain.Customer{}, domain.NotFoundError{Entity: domain.EntityCustomer, ID: id}
	}
	before := cloneCustomer(current)
	if err := mutator(&current); err != nil {
		return domain.Customer{}, err
	}
	current.ID = id
	current.CreatedAt = before.CreatedAt
	current.UpdatedAt = t.now
	t.state.customers[id] = cloneCustomer(current)
	t.recordChange(domain.EntityCustomer, id, domain.ActionUpdate, before, current)
	return current, nil
}

func (t *transaction) DeleteCustomer(id string) error {
	current, ok := t.state.customers[id]
	if !ok {
		return domain.NotFoundError{Entity: domain.EntityCustomer, ID: id}
	}
	for _, locID := range sortedKeys(t.state.deliveryLocations) {
		if t.state.deliveryLocations[locID].CustomerID == id {
			return domain.ReferencedError{Entity: domain.EntityCustomer, ID: id, ReferencedBy: domain.EntityDeliveryLocation, ReferenceID: locID}
		}
	}
	for _, orderID := range sortedKeys(t.state.orders) {
		if t.state.orders[orderID].CustomerID == id {
			return domain.ReferencedError{Entity: domain.EntityCustomer, ID: id, ReferencedBy: domain.EntityOrder, ReferenceID: orderID}
		}
	}
	for _, invID := range sortedKeys(t.state.invoices) {
		if t.state.invoices[invID].CustomerID == id {
			return domain.ReferencedError{Entity: domain.EntityCustomer, ID: id, ReferencedBy: domain.EntityInvoice, ReferenceID: invID}
		}
	}
	delete(t.state.customers, id)
	t.recordChange(domain.EntityCustomer, id, domain.ActionDelete, current, nil)
	return nil
}

// --- delivery locations ---

func (t *transaction) CreateDeliveryLocation(l domain.DeliveryLocation) (domain.DeliveryLocation, error) {
	if l.ID == "" {
		l.ID = t.nextID("D")
	} else if _, exists := t.state.deliveryLocations[l.ID]; exists {
		return domain.DeliveryLocation{}, fmt.Errorf("delivery location %q already exists", l.ID)
	} else {
		t.state.noteID(l.ID)
	}
	if l.DefaultSalesType == "" {
		l.DefaultSalesType = domain.SalesTypeStandard
	}
	l.CreatedAt, l.UpdatedAt = t.now, t.now
	t.state.deliveryLocations[l.ID] = cloneDeliveryLocation(l)
	t.recordChange(domain.EntityDeliveryLocation, l.ID, domain.ActionCreate, nil, l)
	return l, nil
}

func (t *transaction) UpdateDeliveryLocation(id string, mutator func(*domain.DeliveryLocation) error) (domain.DeliveryLocation, error) {
	current, ok := t.state.deliveryLocations[id]
	if !ok {
		return domain.DeliveryLocation{}, domain.NotFoundError{Entity: domain.EntityDeliveryLocation, ID: id}
	}
	before := cloneDeliveryLocation(current)
	if err := mutator(&current); err != nil {
		return domain.DeliveryLocation{}, err
	}
	current.ID = id
	current.CreatedAt = before.CreatedAt
	current.UpdatedAt = t.now
	t.state.deliveryLocations[id] = cloneDeliveryLocation(current)
	t.recordChange(domain.EntityDeliveryLocation, id, domain.ActionUpdate, before, current)
	return current, nil
}

func (t *transaction) DeleteDeliveryLocation(id string) error {
	current, ok := t.state.deliveryLocations[id]
	if !ok {
		return domain.NotFoundError{Entity: domain.EntityDeliveryLocation, ID: id}
	}
	for _, orderID := range sortedKeys(t.state.orders) {
		if t.state.orders[orderID].DeliveryLocationID == id {
			return domain.ReferencedError{Entity: domain.EntityDeliveryLocation, ID: id, ReferencedBy: domain.EntityOrder, ReferenceID: orderID}
		}
	}
	delete(t.state.deliveryLocations, id)
	t.recordChange(domain.EntityDeliveryLocation, id, domain.ActionDelete, current, nil)
	return nil
}

// --- products ---

func (t *transaction) CreateProduct(p domain.Product) (domain.Product, error) {
	if p.ID == "" {
		p.ID = t.nextID("P")
	} else if _, exists := t.state.products[p.ID]; exists {
		return domain.Product{}, fmt.Errorf("product %q already exists", p.ID)
	} else {
		t.state.noteID(p.ID)
	}
	p.CreatedAt, p.UpdatedAt = t.now, t.now
	t.state.products[p.ID] = cloneProduct(p)
	t.recordChange(domain.EntityProduct, p.ID, domain.ActionCreate, nil, p)
	return p, nil
}

func (t *transaction) UpdateProduct(id string, mutator func(*domain.Product) error) (domain.Product, error) {
	current, ok := t.state.products[id]
	if !ok {
		return domain.Product{}, domain.NotFoundError{Entity: domain.EntityProduct, ID: id}
	}
	before := cloneProduct(current)
	if err := mutator(&current); err != nil {
		return domain.Product{}, err
	}
	current.ID = id
	current.CreatedAt = before.CreatedAt
	current.UpdatedAt = t.now
	t.state.products[id] = cloneProduct(current)
	t.recordChange(domain.EntityProduct, id, domain.ActionUpdate, before, current)
	return current, nil
}

func (t *transaction) DeleteProduct(id string) error {
	current, ok := t.state.products[id]
	if !ok {
		return domain.NotFoundError{Entity: domain.EntityProduct, ID: id}
	}
	for _, orderID := range sortedKeys(t.state.orders) {
		for _, item := range t.state.orders[orderID].Items {
			if item.ProductID == id {
				return domain.ReferencedError{Entity: domain.EntityProduct, ID: id, ReferencedBy: domain.EntityOrder, ReferenceID: orderID}
			}
		}
	}
	for _, stockID := range sortedKeys(t.state.cellarStock) {
		if t.state.cellarStock[stockID].ProductID == id {
			return domain.ReferencedError{Entity: domain.EntityProduct, ID: id, ReferencedBy: domain.EntityCellarStock, ReferenceID: stockID}
		}
	}
	delete(t.state.products, id)
	t.recordChange(domain.EntityProduct, id, domain.ActionDelete, current, nil)
	return nil
}

// --- orders ---

func (t *transaction) CreateOrder(o domain.Order) (domain.Order, error) {
	if o.ID == "" {
		o.ID = t.nextYearID("O-")
	} else if _, exists := t.state.orders[o.ID]; exists {
		return domain.Order{}, fmt.Errorf("order %q already exists", o.ID)
	} else {
		t.state.noteID(o.ID)
	}
	if o.OrderDate == "" {
		o.OrderDate = t.now.Format(domain.DateLayout)
	}
	if o.Status == "" {
		o.Status = domain.OrderStatusPending
	}
	if o.SalesType == "" {
		o.SalesType = domain.SalesTypeStandard
	}
	o.TotalAmount = domain.OrderTotal(o.Items)
	o.CreatedAt, o.UpdatedAt = t.now, t.now
	t.state.orders[o.ID] = cloneOrder(o)
	t.recordChange(domain.EntityOrder, o.ID, domain.ActionCreate, nil, o)
	return o, nil
}

func (t *transaction) UpdateOrder(id string, mutator func(*domain.Order) error) (domain.Order, error) {
	current, ok := t.state.orders[id]
	if !ok {
		return domain.Order{}, domain.NotFoundError{Entity: domain.EntityOrder, ID: id}
	}
	before := cloneOrder(current)
	if err := mutator(&current); err != nil {
		return domain.Order{}, err
	}
	current.ID = id
	current.CreatedAt = before.CreatedAt
	current.UpdatedAt = t.now
	// The total is derived state. Whatever a mutator wrote to it is discarded.
	current.TotalAmount = domain.OrderTotal(current.Items)
	t.state.orders[id] = cloneOrder(current)
	t.recordChange(domain.EntityOrder, id, domain.ActionUpdate, before, current)
	return current, nil
}

func (t *transaction) DeleteOrder(id string) (bool, error) {
	current, ok := t.state.orders[id]
	if !ok {
		return false, domain.NotFoundError{Entity: domain.EntityOrder, ID: id}
	}
	if current.Status == domain.OrderStatusPending {
		delete(t.state.orders, id)
		t.recordChange(domain.EntityOrder, id, domain.ActionDelete, current, nil)
		return true, nil
	}
	before := cloneOrder(current)
	current.Status = domain.OrderStatusCancelled
	current.UpdatedAt = t.now
	t.state.orders[id] = cloneOrder(current)
	t.recordChange(domain.EntityOrder, id, domain.ActionUpdate, before, current)
	return false, nil
}

func (t *transaction) ConfirmOrder(id string) (domain.Order, error) {
	current, ok := t.state.orders[id]
	if !ok {
		return domain.Order{}, domain.NotFoundError{Entity: domain.EntityOrder, ID: id}
	}
	if current.Status != domain.OrderStatusPending {
		return domain.Order{}, domain.ConflictError{Entity: domain.EntityOrder, ID: id, Reason: "order is not pending"}
	}
	before := cloneOrder(current)
	current.Status = domain.OrderStatusConfirmed
	current.UpdatedAt = t.now
	t.state.orders[id] = cloneOrder(current)
	t.recordChange(domain.EntityOrder, id, domain.ActionUpdate, before, current)
	return current, nil
}

// --- deliveries ---

func (t *transaction) CreateDelivery(d domain.Delivery) (domain.Delivery, error) {
	if d.ID == "" {
		d.ID = t.nextYearID("DEL-")
	} else if _, exists := t.state.deliveries[d.ID]; exists {
		return domain.Delivery{}, fmt.Errorf("delivery %q already exists", d.ID)
	} else {
		t.state.noteID(d.ID)
	}
	if d.Status == "" {
		d.Status = domain.DeliveryStatusPendingConfirmation
	}
	d.CreatedAt, d.UpdatedAt = t.now, t.now
	t.state.deliveries[d.ID] = cloneDelivery(d)
	t.recordChange(domain.EntityDelivery, d.ID, domain.ActionCreate, nil, d)
	return d, nil
}

func (t *transaction) UpdateDelivery(id string, mutator func(*domain.Delivery) error) (domain.Delivery, error) {
	current, ok := t.state.deliveries[id]
	if !ok {
		return domain.Delivery{}, domain.NotFoundError{Entity: domain.EntityDelivery, ID: id}
	}
	before := cloneDelivery(current)
	if err := mutator(&current); err != nil {
		return domain.Delivery{}, err
	}
	current.ID = id
	current.CreatedAt = before.CreatedAt
	current.UpdatedAt = t.now
	t.state.deliveries[id] = cloneDelivery(current)
	t.recordChange(domain.EntityDelivery, id, domain.ActionUpdate, before, current)
	return current, nil
}

func (t *transaction) DeleteDelivery(id string) error {
	current, ok := t.state.deliveries[id]
	if !ok {
		return domain.NotFoundError{Entity: domain.EntityDelivery, ID: id}
	}
	delete(t.state.deliveries, id)
	t.recordChange(domain.EntityDelivery, id, domain.ActionDelete, current, nil)
	return nil
}

// --- cellar stock ---

func (t *transaction) CreateCellarStock(c domain.CellarStock) (domain.CellarStock, error) {
	if c.ID == "" {
		c.ID = t.nextID("CS")
	} else if _, exists := t.state.cellarStock[c.ID]; exists {
		return domain.CellarStock{}, fmt.Errorf("cellar stock %q already exists", c.ID)
	} else {
		t.state.noteID(c.ID)
	}
	c.CreatedAt, c.UpdatedAt = t.now, t.now
	t.state.cellarStock[c.ID] = cloneCellarStock(c)
	t.recordChange(domain.EntityCellarStock, c.ID, domain.ActionCreate, nil, c)
	return c, nil
}

func (t *transaction) UpdateCellarStock(id string, mutator func(*domain.CellarStock) error) (domain.CellarStock, error) {
	current, ok := t.state.cellarStock[id]
	if !ok {
		return domain.CellarStock{}, domain.NotFoundError{Entity: domain.EntityCellarStock, ID: id}
	}
	before := cloneCellarStock(current)
	if err := mutator(&current); err != nil {
		return domain.CellarStock{}, err
	}
	current.ID = id
	current.CreatedAt = before.CreatedAt
	current.UpdatedAt = t.now
	t.state.cellarStock[id] = cloneCellarStock(current)
	t.recordChange(domain.EntityCellarStock, id, domain.ActionUpdate, before, current)
	return current, nil
}

func (t *transaction) DeleteCellarStock(id string) error {
	current, ok := t.state.cellarStock[id]
	if !ok {
		return domain.NotFoundError{Entity: domain.EntityCellarStock, ID: id}
	}
	delete(t.state.cellarStock, id)
	t.recordChange(domain.EntityCellarStock, id, domain.ActionDelete, current, nil)
	return nil
}

// --- usage records ---

func (t *transaction) CreateUsageRecord(u domain.UsageRecord) (domain.UsageRecord, error) {
	if u.ID == "" {
		u.ID = t.nextYearID("U-")
	} else if _, exists := t.state.usageRecords[u.ID]; exists {
		return domain.UsageRecord{}, fmt.Errorf("usage record %q already exists", u.ID)
	} else {
		t.state.noteID(u.ID)
	}
	if u.Status == "" {
		u.Status = domain.UsageStatusUnbilled
	}
	if u.UsageDate == "" {
		u.UsageDate = t.now.Format(domain.DateLayout)
	}
	u.CreatedAt, u.UpdatedAt = t.now, t.now
	t.state.usageRecords[u.ID] = cloneUsageRecord(u)
	t.recordChange(domain.EntityUsageRecord, u.ID, domain.ActionCreate, nil, u)
	return u, nil
}

func (t *transaction) UpdateUsageRecord(id string, mutator func(*domain.UsageRecord) error) (domain.UsageRecord, error) {
	current, ok := t.state.usageRecords[id]
	if !ok {
		return domain.UsageRecord{}, domain.NotFoundError{Entity: domain.EntityUsageRecord, ID: id}
	}
	before := cloneUsageRecord(current)
	if err := mutator(&current); err != nil {
		return domain.UsageRecord{}, err
	}
	current.ID = id
	current.CreatedAt = before.CreatedAt
	current.UpdatedAt = t.now
	t.state.usageRecords[id] = cloneUsageRecord(current)
	t.recordChange(domain.EntityUsageRecord, id, domain.ActionUpdate, before, current)
	return current, nil
}

func (t *transaction) DeleteUsageRecord(id string) error {
	current, ok := t.state.usageRecords[id]
	if !ok {
		return domain.NotFoundError{Entity: domain.EntityUsageRecord, ID: id}
	}
	delete(t.state.usageRecords, id)
	t.recordChange(domain.EntityUsageRecord, id, domain.ActionDelete, current, nil)
	return nil
}

// --- activities ---

func (t *transaction) CreateActivity(a domain.Activity) (domain.Activity, error) {
	if a.ID == "" {
		a.ID = t.nextYearID("A-")
	} else if _, exists := t.state.activities[a.ID]; exists {
		return domain.Activity{}, fmt.Errorf("activity %q already exists", a.ID)
	} else {
		t.state.noteID(a.ID)
	}
	if a.Date == "" {
		a.Date = t.now.Format(domain.DateLayout)
	}
	a.CreatedAt, a.UpdatedAt = t.now, t.now
	t.state.activities[a.ID] = cloneActivity(a)
	t.recordChange(domain.EntityActivity, a.ID, domain.ActionCreate, nil, a)
	return a, nil
}

func (t *transaction) UpdateActivity(id string, mutator func(*domain.Activity) error) (domain.Activity, error) {
	current, ok := t.state.activities[id]
	if !ok {
		return domain.Activity{}, domain.NotFoundError{Entity: domain.EntityActivity, ID: id}
	}
	before := cloneActivity(current)
	if err := mutator(&current); err != nil {
		return domain.Activity{}, err
	}
	current.ID = id
	current.CreatedAt = before.CreatedAt
	current.UpdatedAt = t.now
	t.state.activities[id] = cloneActivity(current)
	t.recordChange(domain.EntityActivity, id, domain.ActionUpdate, before, current)
	return current, nil
}

func (t *transaction) DeleteActivity(id string) error {
	current, ok := t.state.activities[id]
	if !ok {
		return domain.NotFoundError{Entity: domain.EntityActivity, ID: id}
	}
	delete(t.state.activities, id)
	t.recordChange(domain.EntityActivity, id, domain.ActionDelete, current, nil)
	return nil
}

// --- discount rules ---

func (t *transaction) CreateDiscountRule(r domain.DiscountRule) (domain.DiscountRule, error) {
	if r.ID == "" {
		r.ID = t.nextID("DR")
	} else if _, exists := t.state.discountRules[r.ID]; exists {
		return domain.DiscountRule{}, fmt.Errorf("discount rule %q already exists", r.ID)
	} else {
		t.state.noteID(r.ID)
	}
	r.CreatedAt, r.UpdatedAt = t.now, t.now
	t.state.discountRules[r.ID] = cloneDiscountRule(r)
	t.recordChange(domain.EntityDiscountRule, r.ID, domain.ActionCreate, nil, r)
	return r, nil
}

func (t *transaction) UpdateDiscountRule(id string, mutator func(*domain.DiscountRule) error) (domain.DiscountRule, error) {
	current, ok := t.state.discountRules[id]
	if !ok {
		return domain.DiscountRule{}, domain.NotFoundError{Entity: domain.EntityDiscountRule, ID: id}
	}
	before := cloneDiscountRule(current)
	if err := mutator(&current); err != nil {
		return domain.DiscountRule{}, err
	}
	current.ID = id
	current.CreatedAt = before.CreatedAt
	current.UpdatedAt = t.now
	t.state.discountRules[id] = cloneDiscountRule(current)
	t.recordChange(domain.EntityDiscountRule, id, domain.ActionUpdate, before, current)
	return current, nil
}

func (t *transaction) DeleteDiscountRule(id string) error {
	current, ok := t.state.discountRules[id]
	if !ok {
		return domain.NotFoundError{Entity: domain.EntityDiscountRule, ID: id}
	}
	delete(t.state.discountRules, id)
	t.recordChange(domain.EntityDiscountRule, id, domain.ActionDelete, current, nil)
	return nil
}

// --- invoices ---

func (t *transaction) CreateInvoice(inv domain.Invoice) (domain.Invoice, error) {
	if inv.ID == "" {
		inv.ID = t.nextYearID("INV-")
	} else if _, exists := t.state.invoices[inv.ID]; exists {
		return domain.Invoice{}, fmt.Errorf("invoice %q already exists", inv.ID)
	} else {
		t.state.noteID(inv.ID)
	}
	if inv.Status == "" {
		inv.Status = domain.InvoiceStatusUnpaid
	}
	if len(inv.Items) > 0 {
		inv.Amount = domain.InvoiceTotal(inv.Items)
	}
	inv.CreatedAt, inv.UpdatedAt = t.now, t.now
	t.state.invoices[inv.ID] = cloneInvoice(inv)
	t.recordChange(domain.EntityInvoice, inv.ID, domain.ActionCreate, nil, inv)
	return inv, nil
}

func (t *transaction) UpdateInvoice(id string, mutator func(*domain.Invoice) error) (domain.Invoice, error) {
	current, ok := t.state.invoices[id]
	if !ok {
		return domain.Invoice{}, domain.NotFoundError{Entity: domain.EntityInvoice, ID: id}
	}
	before := cloneInvoice(current)
	if err := mutator(&current); err != nil {
		return domain.Invoice{}, err
	}
	current.ID = id
	current.CreatedAt = before.CreatedAt
	current.UpdatedAt = t.now
	t.state.invoices[id] = cloneInvoice(current)
	t.recordChange(domain.EntityInvoice, id, domain.ActionUpdate, before, current)
	return current, nil
}

func (t *transaction) DeleteInvoice(id string) error {
	current, ok := t.state.invoices[id]
	if !ok {
		return domain.NotFoundError{Entity: domain.EntityInvoice, ID: id}
	}
	delete(t.state.invoices, id)
	t.recordChange(domain.EntityInvoice, id, domain.ActionDelete, current, nil)
	return nil
}

// --- notices ---

func (t *transaction) CreateNotice(n domain.Notice) (domain.Notice, error) {
	if n.ID == "" {
		n.ID = t.nextID("N")
	} else if _, exists := t.state.notices[n.ID]; exists {
		return domain.Notice{}, fmt.Errorf("notice %q already exists", n.ID)
	} else {
		t.state.noteID(n.ID)
	}
	if n.Date == "" {
		n.Date = t.now.Format(domain.DateLayout)
	}
	n.CreatedAt, n.UpdatedAt = t.now, t.now
	t.state.notices[n.ID] = cloneNotice(n)
	t.recordChange(domain.EntityNotice, n.ID, domain.ActionCreate, nil, n)
	return n, nil
}

func (t *transaction) UpdateNotice(id string, mutator func(*domain.Notice) error) (domain.Notice, error) {
	current, ok := t.state.notices[id]
	if !ok {
		return domain.Notice{}, domain.NotFoundError{Entity: domain.EntityNotice, ID: id}
	}
	before := cloneNotice(current)
	if err := mutator(&current); err != nil {
		return domain.Notice{}, err
	}
	current.ID = id
	current.CreatedAt = before.CreatedAt
	current.UpdatedAt = t.now
	t.state.notices[id] = cloneNotice(current)
	t.recordChange(domain.EntityNotice, id, domain.ActionUpdate, before, current)
	return current, nil
}

func (t *transaction) DeleteNotice(id string) error {
	current, ok := t.state.notices[id]
	if !ok {
		return domain.NotFoundError{Entity: domain.EntityNotice, ID: id}
	}
	delete(t.state.notices, id)
	t.recordChange(domain.EntityNotice, id, domain.ActionDelete, current, nil)
	return nil
}

// --- transaction finders ---

func (t *transaction) FindCustomer(id string) (domain.Customer, bool) {
	c, ok := t.state.customers[id]
	return cloneCustomer(c), ok
}

func (t *transaction) FindDeliveryLocation(id string) (domain.DeliveryLocation, bool) {
	l, ok := t.state.deliveryLocations[id]
	return cloneDeliveryLocation(l), ok
}

func (t *transaction) FindProduct(id string) (domain.Product, bool) {
	p, ok := t.state.products[id]
	return cloneProduct(p), ok
}

func (t *transaction) FindOrder(id string) (domain.Order, bool) {
	o, ok := t.state.orders[id]
	return cloneOrder(o), ok
}

func sortedKeys[T any](m map[string]T) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return lessID(keys[i], keys[j]) })
	return keys
}
