package bot

import (
	"strings"

	"storefront/bot/internal/catalog"
	"storefront/bot/internal/domain"
)

const categoryTokenPrefix = "cat_"

// Resolve maps an interaction token to a view request. Rules are evaluated in
// order and the first match wins; anything unrecognized resolves to ViewNone
// and is ignored by the controller.
func Resolve(index *catalog.Index, token string) domain.ViewRequest {
	switch {
	case token == "noop":
		return domain.NoOpView()
	case token == "available":
		return domain.CategoryListView()
	case strings.HasPrefix(token, categoryTokenPrefix):
		return domain.ProductListView(strings.TrimPrefix(token, categoryTokenPrefix))
	case index.HasProduct(token):
		return domain.ProductDetailView(token)
	case domain.IsPageKey(token):
		return domain.StaticPageView(domain.PageKey(token))
	case token == "home":
		return domain.HomeView()
	default:
		return domain.NoneView()
	}
}
