package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/and161185/admin-console/internal/errs"
	"github.com/and161185/admin-console/internal/model"
	"github.com/and161185/admin-console/internal/storage"
)

// Products with 0 < stock < lowStockThreshold are flagged as running low.
const lowStockThreshold = 5

// Inventory owns the product collection and is the sole writer of the products
// record. Ordering is newest-first; every mutation persists before the
// in-memory slice becomes the source of truth.
type Inventory struct {
	store    storage.Store
	log      *zap.Logger
	products []model.Product
}

// NewInventory constructs the inventory store; call Load before first use.
func NewInventory(store storage.Store, log *zap.Logger) *Inventory {
	return &Inventory{store: store, log: log}
}

// Load reads the products record. An absent record means an empty inventory.
func (v *Inventory) Load() error {
	raw, err := v.store.Get(storage.KeyProducts)
	if errors.Is(err, errs.ErrNotFound) {
		v.products = nil
		return nil
	}
	if err != nil {
		return fmt.Errorf("load products: %w", err)
	}
	var products []model.Product
	if err := json.Unmarshal([]byte(raw), &products); err != nil {
		return fmt.Errorf("decode products: %v: %w", err, errs.ErrStorageUnavailable)
	}
	v.products = products
	return nil
}

func (v *Inventory) persist(products []model.Product) error {
	b, err := json.Marshal(products)
	if err != nil {
		return fmt.Errorf("encode products: %v: %w", err, errs.ErrStorageUnavailable)
	}
	if err := v.store.Set(storage.KeyProducts, string(b)); err != nil {
		return fmt.Errorf("persist products: %w", err)
	}
	return nil
}

func (v *Inventory) nextID() int64 {
	id := time.Now().UnixMilli()
	for _, p := range v.products {
		if p.ID >= id {
			id = p.ID + 1
		}
	}
	return id
}

// Create validates and prepends a new product.
func (v *Inventory) Create(name string, category model.Category, price float64, stock int) (model.Product, error) {
	if name == "" {
		return model.Product{}, errors.New("validation: empty product name")
	}
	if !model.ValidCategory(category) {
		return model.Product{}, fmt.Errorf("validation: unknown category %q", category)
	}
	if price < 0 {
		return model.Product{}, errors.New("validation: negative price")
	}
	if stock < 0 {
		return model.Product{}, errors.New("validation: negative stock")
	}
	p := model.Product{
		ID:       v.nextID(),
		Name:     name,
		Category: category,
		Price:    price,
		Stock:    stock,
	}
	next := append([]model.Product{p}, v.products...)
	if err := v.persist(next); err != nil {
		return model.Product{}, err
	}
	v.products = next
	v.log.Info("product created",
		zap.Int64("id", p.ID),
		zap.String("name", p.Name),
		zap.String("status", p.Status()),
	)
	return p, nil
}

// Delete removes the matching product. Confirmation is the caller's concern.
func (v *Inventory) Delete(id int64) error {
	idx := -1
	for i := range v.products {
		if v.products[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("delete product %d: %w", id, errs.ErrNotFound)
	}
	next := append([]model.Product(nil), v.products[:idx]...)
	next = append(next, v.products[idx+1:]...)
	if err := v.persist(next); err != nil {
		return err
	}
	v.products = next
	v.log.Info("product removed", zap.Int64("id", id))
	return nil
}

// Filter narrows List results. Empty fields (or the "All" category) match
// everything.
type Filter struct {
	Search   string
	Category model.Category
}

// List returns a filtered, non-mutating view of the collection: case-insensitive
// substring match on name, exact match on category.
func (v *Inventory) List(f Filter) []model.Product {
	search := strings.ToLower(f.Search)
	all := f.Category == "" || f.Category == "All"
	out := []model.Product{}
	for _, p := range v.products {
		if search != "" && !strings.Contains(strings.ToLower(p.Name), search) {
			continue
		}
		if !all && p.Category != f.Category {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Stats are derived analytics over the current collection, never stored.
type Stats struct {
	Products    int
	StockUnits  int
	Value       float64 // sum of price*stock
	OutOfStock  int
	LowStock    int // 0 < stock < lowStockThreshold
	PerCategory map[model.Category]int
}

// Stats computes inventory analytics on demand.
func (v *Inventory) Stats() Stats {
	s := Stats{PerCategory: make(map[model.Category]int)}
	for _, p := range v.products {
		s.Products++
		s.StockUnits += p.Stock
		s.Value += p.Price * float64(p.Stock)
		switch {
		case p.Stock == 0:
			s.OutOfStock++
		case p.Stock < lowStockThreshold:
			s.LowStock++
		}
		s.PerCategory[p.Category]++
	}
	return s
}
