// Package cart holds the per-operator cart state: line items keyed by
// product, quantity merging, totals and profit. One Manager belongs to one
// operator session; internal locking only keeps an HTTP handler and a
// queue drain from interleaving a single mutation.
package cart

import (
	"sync"
	"time"

	"github.com/Jasith06/jlink-pos-web/products"
	"github.com/Jasith06/jlink-pos-web/utils"
)

// Line is one product entry in an active, not-yet-finalized sale.
type Line struct {
	ProductID      string    `json:"productId" bson:"productId"`
	Name           string    `json:"name" bson:"name"`
	Price          float64   `json:"price" bson:"price"`
	WholesalePrice float64   `json:"wholesalePrice" bson:"wholesalePrice"`
	Quantity       int       `json:"quantity" bson:"quantity"`
	Total          float64   `json:"total" bson:"total"`
	ProductCode    string    `json:"productCode,omitempty" bson:"productCode,omitempty"`
	Category       string    `json:"category,omitempty" bson:"category,omitempty"`
	ScannedAt      time.Time `json:"scannedAt" bson:"scannedAt"`
}

// Totals is always derived from the lines, never cached. Tax is a fixed
// zero: the store charges none, and total therefore equals subtotal.
type Totals struct {
	Subtotal  float64 `json:"subtotal" bson:"subtotal"`
	Tax       float64 `json:"tax" bson:"tax"`
	Total     float64 `json:"total" bson:"total"`
	ItemCount int     `json:"itemCount" bson:"itemCount"`
}

// UpdateFunc receives a snapshot of the items and totals after every
// mutation. Snapshots never alias internal state.
type UpdateFunc func(items []Line, totals Totals)

type Manager struct {
	mu        sync.Mutex
	items     []Line
	observers []UpdateFunc
}

func NewManager() *Manager {
	return &Manager{}
}

// OnUpdate registers an observer invoked synchronously after each mutation.
func (m *Manager) OnUpdate(fn UpdateFunc) {
	m.mu.Lock()
	m.observers = append(m.observers, fn)
	m.mu.Unlock()
}

// AddItem merges into an existing line for the same product or appends a
// new one. Quantities below one count as one.
func (m *Manager) AddItem(p *products.Product, quantity int) []Line {
	if quantity < 1 {
		quantity = 1
	}

	m.mu.Lock()
	merged := false
	for i := range m.items {
		if m.items[i].ProductID == p.ID {
			m.items[i].Quantity += quantity
			m.items[i].Total = utils.Round2(float64(m.items[i].Quantity) * m.items[i].Price)
			merged = true
			break
		}
	}
	if !merged {
		m.items = append(m.items, Line{
			ProductID:      p.ID,
			Name:           p.Name,
			Price:          p.Price,
			WholesalePrice: p.WholesalePrice,
			Quantity:       quantity,
			Total:          utils.Round2(float64(quantity) * p.Price),
			ProductCode:    p.ProductCode,
			Category:       p.Category,
			ScannedAt:      time.Now(),
		})
	}
	items, totals, obs := m.snapshotLocked()
	m.mu.Unlock()

	notify(obs, items, totals)
	return items
}

// RemoveItem deletes the matching line. Absent product is a no-op, not an
// error; observers fire either way.
func (m *Manager) RemoveItem(productID string) []Line {
	m.mu.Lock()
	kept := m.items[:0]
	for _, it := range m.items {
		if it.ProductID != productID {
			kept = append(kept, it)
		}
	}
	m.items = kept
	items, totals, obs := m.snapshotLocked()
	m.mu.Unlock()

	notify(obs, items, totals)
	return items
}

// UpdateQuantity sets a line's quantity. Zero or negative removes the
// line; an unknown product is a no-op.
func (m *Manager) UpdateQuantity(productID string, quantity int) []Line {
	if quantity <= 0 {
		return m.RemoveItem(productID)
	}

	m.mu.Lock()
	changed := false
	for i := range m.items {
		if m.items[i].ProductID == productID {
			m.items[i].Quantity = quantity
			m.items[i].Total = utils.Round2(float64(quantity) * m.items[i].Price)
			changed = true
			break
		}
	}
	items, totals, obs := m.snapshotLocked()
	m.mu.Unlock()

	if changed {
		notify(obs, items, totals)
	}
	return items
}

// ClearCart removes every line.
func (m *Manager) ClearCart() {
	m.mu.Lock()
	m.items = nil
	items, totals, obs := m.snapshotLocked()
	m.mu.Unlock()

	notify(obs, items, totals)
}

// CancelLastItem drops the most recently appended line.
func (m *Manager) CancelLastItem() {
	m.mu.Lock()
	if len(m.items) > 0 {
		m.items = m.items[:len(m.items)-1]
	}
	items, totals, obs := m.snapshotLocked()
	m.mu.Unlock()

	notify(obs, items, totals)
}

// Items returns a copy of the current lines in scan order.
func (m *Manager) Items() []Line {
	m.mu.Lock()
	defer m.mu.Unlock()
	return copyLines(m.items)
}

func (m *Manager) IsEmpty() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items) == 0
}

// GetTotals derives subtotal, tax (always 0), total and item count.
func (m *Manager) GetTotals() Totals {
	m.mu.Lock()
	defer m.mu.Unlock()
	return totalsOf(m.items)
}

// CalculateProfit sums (retail - wholesale) x quantity over all lines.
// Unknown wholesale prices count as zero, which overstates profit; that is
// the store's accepted accounting.
func (m *Manager) CalculateProfit() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	var profit float64
	for _, it := range m.items {
		profit += it.Total - it.WholesalePrice*float64(it.Quantity)
	}
	return utils.Round2(profit)
}

// Summary captures everything a checkout needs in one consistent snapshot.
type Summary struct {
	Items     []Line    `json:"items"`
	Totals    Totals    `json:"totals"`
	Profit    float64   `json:"profit"`
	Timestamp time.Time `json:"timestamp"`
}

func (m *Manager) Summary() Summary {
	m.mu.Lock()
	defer m.mu.Unlock()

	var profit float64
	for _, it := range m.items {
		profit += it.Total - it.WholesalePrice*float64(it.Quantity)
	}
	return Summary{
		Items:     copyLines(m.items),
		Totals:    totalsOf(m.items),
		Profit:    utils.Round2(profit),
		Timestamp: time.Now(),
	}
}

func (m *Manager) snapshotLocked() ([]Line, Totals, []UpdateFunc) {
	obs := make([]UpdateFunc, len(m.observers))
	copy(obs, m.observers)
	return copyLines(m.items), totalsOf(m.items), obs
}

func totalsOf(items []Line) Totals {
	var subtotal float64
	count := 0
	for _, it := range items {
		subtotal += it.Total
		count += it.Quantity
	}
	return Totals{
		Subtotal:  utils.Round2(subtotal),
		Tax:       0,
		Total:     utils.Round2(subtotal),
		ItemCount: count,
	}
}

func copyLines(items []Line) []Line {
	out := make([]Line, len(items))
	copy(out, items)
	return out
}

func notify(obs []UpdateFunc, items []Line, totals Totals) {
	for _, fn := range obs {
		fn(items, totals)
	}
}
