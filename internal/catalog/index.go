package catalog

import (
	"storefront/bot/internal/domain"
)

// Index is the read-only catalog built once at startup. It is safe to share
// across concurrently handled interactions without locking.
type Index struct {
	categories map[string]string
	catOrder   []string
	products   map[string]domain.Product
	prodOrder  []string
	byCategory map[string][]string
}

// NewIndex builds an index from already-parsed records. Category and product
// order is preserved as given (the loader passes file order). Product display
// names are recomputed here so the transform stays idempotent no matter what
// the source files contain.
func NewIndex(categories []domain.Category, products []domain.Product) *Index {
	idx := &Index{
		categories: make(map[string]string, len(categories)),
		catOrder:   make([]string, 0, len(categories)),
		products:   make(map[string]domain.Product, len(products)),
		prodOrder:  make([]string, 0, len(products)),
		byCategory: make(map[string][]string),
	}

	for _, c := range categories {
		if _, ok := idx.categories[c.Key]; !ok {
			idx.catOrder = append(idx.catOrder, c.Key)
		}
		idx.categories[c.Key] = c.Name
	}

	for _, p := range products {
		p.DisplayName = domain.DisplayName(p.Price, p.Name)
		if prev, ok := idx.products[p.ID]; ok {
			// Last-loaded record wins; regroup if its category changed.
			if prev.Category != p.Category {
				idx.byCategory[prev.Category] = removeID(idx.byCategory[prev.Category], p.ID)
				idx.byCategory[p.Category] = append(idx.byCategory[p.Category], p.ID)
			}
		} else {
			idx.prodOrder = append(idx.prodOrder, p.ID)
			idx.byCategory[p.Category] = append(idx.byCategory[p.Category], p.ID)
		}
		idx.products[p.ID] = p
	}

	return idx
}

// Category returns the display name for a category key.
func (i *Index) Category(key string) (string, bool) {
	name, ok := i.categories[key]
	return name, ok
}

// Categories returns all categories in load order.
func (i *Index) Categories() []domain.Category {
	out := make([]domain.Category, 0, len(i.catOrder))
	for _, key := range i.catOrder {
		out = append(out, domain.Category{Key: key, Name: i.categories[key]})
	}
	return out
}

// Product returns the product with the given id.
func (i *Index) Product(id string) (domain.Product, bool) {
	p, ok := i.products[id]
	return p, ok
}

// HasProduct reports whether id names a loaded product.
func (i *Index) HasProduct(id string) bool {
	_, ok := i.products[id]
	return ok
}

// ProductsByCategory returns all products in a category in load order.
func (i *Index) ProductsByCategory(key string) []domain.Product {
	ids := i.byCategory[key]
	out := make([]domain.Product, 0, len(ids))
	for _, id := range ids {
		out = append(out, i.products[id])
	}
	return out
}

func (i *Index) CategoryCount() int { return len(i.catOrder) }
func (i *Index) ProductCount() int  { return len(i.prodOrder) }

func removeID(ids []string, id string) []string {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
