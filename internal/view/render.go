package view

import (
	"fmt"

	"storefront/bot/internal/catalog"
	"storefront/bot/internal/domain"
	"storefront/bot/internal/pages"
	"storefront/bot/internal/telegram"
)

// UI text, single fixed language.
const (
	GreetingText    = "👋 Добро пожаловать! Выберите действие:"
	HomeAgainText   = "👋 Вы снова на главной странице. \n👉 Выберите действие:"
	CategoriesText  = "📂 Выберите категорию:"
	NoProductsLabel = "❌ Нет товаров в этой категории"
	UnknownCategory = "неизвестно"
	NoOpToast       = "Это просто цена, действие не требуется."
	backLabel       = "🔙 Назад"
	homeLabel       = "🏠 На главную"
	contactLabel    = "📩 Связаться с продавцом"
	ParseModeHTML   = "HTML"
)

// Screen is one renderable view: message body plus button layout.
type Screen struct {
	Text      string
	Keyboard  *telegram.InlineKeyboardMarkup
	ParseMode string
}

// Renderer maps view requests to screens. It holds only immutable data and is
// safe for concurrent use.
type Renderer struct {
	index      *catalog.Index
	pages      *pages.Store
	contactURL string
}

func NewRenderer(index *catalog.Index, pageStore *pages.Store, contactURL string) *Renderer {
	return &Renderer{
		index:      index,
		pages:      pageStore,
		contactURL: contactURL,
	}
}

func (r *Renderer) Home(again bool) Screen {
	text := GreetingText
	if again {
		text = HomeAgainText
	}
	return Screen{Text: text, Keyboard: r.mainMenuKeyboard()}
}

func (r *Renderer) CategoryList() Screen {
	return Screen{Text: CategoriesText, Keyboard: r.categoryKeyboard()}
}

func (r *Renderer) ProductList(categoryKey string) Screen {
	name, ok := r.index.Category(categoryKey)
	if !ok {
		name = UnknownCategory
	}

	var rows [][]telegram.InlineKeyboardButton
	for _, p := range r.index.ProductsByCategory(categoryKey) {
		rows = append(rows, []telegram.InlineKeyboardButton{
			{Text: p.DisplayName, CallbackData: p.ID},
		})
	}
	if len(rows) == 0 {
		rows = append(rows, []telegram.InlineKeyboardButton{
			{Text: NoProductsLabel, CallbackData: "available"},
		})
	}

	rows = append(rows,
		[]telegram.InlineKeyboardButton{
			{Text: backLabel, CallbackData: "available"},
			{Text: homeLabel, CallbackData: "home"},
		},
		r.contactRow(),
	)

	return Screen{
		Text:     fmt.Sprintf("📦 Категория: %s", name),
		Keyboard: &telegram.InlineKeyboardMarkup{InlineKeyboard: rows},
	}
}

// ProductCard renders the description message of a product. Photos are not
// part of the screen; the controller sends the album separately.
func (r *Renderer) ProductCard(p domain.Product) Screen {
	rows := [][]telegram.InlineKeyboardButton{
		{{Text: fmt.Sprintf("💶 €%s", p.Price), CallbackData: "noop"}},
		{
			{Text: backLabel, CallbackData: "cat_" + p.Category},
			{Text: homeLabel, CallbackData: "home"},
		},
		r.contactRow(),
	}

	return Screen{
		Text:      p.Description,
		Keyboard:  &telegram.InlineKeyboardMarkup{InlineKeyboard: rows},
		ParseMode: ParseModeHTML,
	}
}

func (r *Renderer) StaticPage(key domain.PageKey) Screen {
	return Screen{
		Text:      r.pages.Get(key),
		Keyboard:  r.defaultNavKeyboard(),
		ParseMode: ParseModeHTML,
	}
}

func (r *Renderer) mainMenuKeyboard() *telegram.InlineKeyboardMarkup {
	return &telegram.InlineKeyboardMarkup{InlineKeyboard: [][]telegram.InlineKeyboardButton{
		{
			{Text: "ℹ️ Обо мне", CallbackData: "about"},
			{Text: "🛡️ Гарантия", CallbackData: "warranty"},
		},
		{
			{Text: "🚚 Доставка", CallbackData: "delivery"},
			{Text: "💰 Оплата", CallbackData: "payment"},
		},
		{
			{Text: "🧰 Услуги", CallbackData: "services"},
		},
		{
			{Text: "🛒 Товары в наличии", CallbackData: "available"},
		},
		r.contactRow(),
	}}
}

func (r *Renderer) categoryKeyboard() *telegram.InlineKeyboardMarkup {
	var buttons []telegram.InlineKeyboardButton
	for _, c := range r.index.Categories() {
		buttons = append(buttons, telegram.InlineKeyboardButton{
			Text:         c.Name,
			CallbackData: "cat_" + c.Key,
		})
	}

	// Categories go two per row.
	var rows [][]telegram.InlineKeyboardButton
	for i := 0; i < len(buttons); i += 2 {
		end := i + 2
		if end > len(buttons) {
			end = len(buttons)
		}
		rows = append(rows, buttons[i:end])
	}

	// The original layout shows back and home side by side here even though
	// both route to home; kept as a visual duplication.
	rows = append(rows,
		[]telegram.InlineKeyboardButton{
			{Text: backLabel, CallbackData: "home"},
			{Text: homeLabel, CallbackData: "home"},
		},
		r.contactRow(),
	)

	return &telegram.InlineKeyboardMarkup{InlineKeyboard: rows}
}

func (r *Renderer) defaultNavKeyboard() *telegram.InlineKeyboardMarkup {
	return &telegram.InlineKeyboardMarkup{InlineKeyboard: [][]telegram.InlineKeyboardButton{
		{
			{Text: backLabel, CallbackData: "home"},
			{Text: homeLabel, CallbackData: "home"},
		},
		r.contactRow(),
	}}
}

func (r *Renderer) contactRow() []telegram.InlineKeyboardButton {
	return []telegram.InlineKeyboardButton{{Text: contactLabel, URL: r.contactURL}}
}
