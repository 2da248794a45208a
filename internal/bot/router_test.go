package bot

import (
	"testing"

	"storefront/bot/internal/catalog"
	"storefront/bot/internal/domain"

	"github.com/stretchr/testify/assert"
)

func routerIndex() *catalog.Index {
	return catalog.NewIndex(
		[]domain.Category{{Key: "phones", Name: "📱 Phones"}},
		[]domain.Product{
			{ID: "p1", Name: "Widget", Price: "10", Category: "phones"},
			{ID: "home", Name: "Doormat", Price: "5", Category: "phones"},
		},
	)
}

func TestResolve(t *testing.T) {
	index := routerIndex()

	tests := []struct {
		token    string
		expected domain.ViewRequest
	}{
		{"noop", domain.NoOpView()},
		{"available", domain.CategoryListView()},
		{"cat_phones", domain.ProductListView("phones")},
		{"cat_unknown", domain.ProductListView("unknown")},
		{"p1", domain.ProductDetailView("p1")},
		{"about", domain.StaticPageView(domain.PageAbout)},
		{"warranty", domain.StaticPageView(domain.PageWarranty)},
		{"garbage", domain.NoneView()},
		{"", domain.NoneView()},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			assert.Equal(t, tt.expected, Resolve(index, tt.token))
		})
	}
}

func TestResolveOrder(t *testing.T) {
	index := routerIndex()

	// A product that shares its id with a later routing rule is matched by
	// the earlier product rule.
	assert.Equal(t, domain.ProductDetailView("home"), Resolve(index, "home"))

	// The category prefix wins over everything that follows it.
	assert.Equal(t, domain.ProductListView("p1"), Resolve(index, "cat_p1"))

	// Without the clashing product the token routes home as usual.
	clean := catalog.NewIndex(nil, nil)
	assert.Equal(t, domain.HomeView(), Resolve(clean, "home"))
}
