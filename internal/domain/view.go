package domain

// ViewKind enumerates every screen the bot can render. The router produces
// exactly one ViewRequest per interaction token and the controller switches
// over the kind exhaustively, so each view has a single rendering path.
type ViewKind int

const (
	ViewNone ViewKind = iota // unrecognized token, nothing happens
	ViewNoOp                 // acknowledge only, no transition
	ViewHome
	ViewCategoryList
	ViewProductList
	ViewProductDetail
	ViewStaticPage
)

func (k ViewKind) String() string {
	switch k {
	case ViewNone:
		return "none"
	case ViewNoOp:
		return "noop"
	case ViewHome:
		return "home"
	case ViewCategoryList:
		return "category_list"
	case ViewProductList:
		return "product_list"
	case ViewProductDetail:
		return "product_detail"
	case ViewStaticPage:
		return "static_page"
	default:
		return "unknown"
	}
}

// ViewRequest is the tagged variant shared by the router and the renderer.
// Only the field matching the kind is set.
type ViewRequest struct {
	Kind      ViewKind
	Category  string
	ProductID string
	Page      PageKey
}

func NoOpView() ViewRequest         { return ViewRequest{Kind: ViewNoOp} }
func HomeView() ViewRequest         { return ViewRequest{Kind: ViewHome} }
func CategoryListView() ViewRequest { return ViewRequest{Kind: ViewCategoryList} }
func NoneView() ViewRequest         { return ViewRequest{Kind: ViewNone} }

func ProductListView(categoryKey string) ViewRequest {
	return ViewRequest{Kind: ViewProductList, Category: categoryKey}
}

func ProductDetailView(productID string) ViewRequest {
	return ViewRequest{Kind: ViewProductDetail, ProductID: productID}
}

func StaticPageView(key PageKey) ViewRequest {
	return ViewRequest{Kind: ViewStaticPage, Page: key}
}
