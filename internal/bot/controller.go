package bot

import (
	"context"
	"fmt"

	"storefront/bot/internal/catalog"
	"storefront/bot/internal/domain"
	"storefront/bot/internal/repository"
	"storefront/bot/internal/session"
	"storefront/bot/internal/telegram"
	"storefront/bot/internal/view"

	log "github.com/sirupsen/logrus"
)

// Controller routes incoming interactions to screens. One instance serves all
// conversations; the only mutable state it touches is the session store.
type Controller struct {
	client   telegram.Client
	index    *catalog.Index
	renderer *view.Renderer
	sessions session.Store
	journal  repository.EventJournal
}

func NewController(
	client telegram.Client,
	index *catalog.Index,
	renderer *view.Renderer,
	sessions session.Store,
	journal repository.EventJournal,
) *Controller {
	return &Controller{
		client:   client,
		index:    index,
		renderer: renderer,
		sessions: sessions,
		journal:  journal,
	}
}

// HandleStart renders the home screen for the /start command, bypassing token
// routing.
func (c *Controller) HandleStart(ctx context.Context, msg *telegram.Message) error {
	var username string
	var userID int64
	if msg.From != nil {
		username = msg.From.Username
		userID = msg.From.ID
	}
	log.Infof("/start от @%s (%d) | CHAT_ID=[%d]", username, userID, msg.Chat.ID)

	screen := c.renderer.Home(false)
	if _, err := c.client.SendText(ctx, msg.Chat.ID, screen.Text, screen.Keyboard, screen.ParseMode); err != nil {
		return fmt.Errorf("failed to send greeting to chat %d: %w", msg.Chat.ID, err)
	}
	return nil
}

// HandleCallback processes one button tap: acknowledge, resolve the token,
// reconcile the previous album, render.
func (c *Controller) HandleCallback(ctx context.Context, q *telegram.CallbackQuery) error {
	if q.Message == nil {
		// Callback for a message too old for the platform to reference.
		return c.client.AnswerCallbackQuery(ctx, q.ID, "")
	}

	chatID := q.Message.Chat.ID
	log.Infof("BUTTON=[%s] | USER=[@%s (%d)] | CHAT_ID=[%d] | USER_LANG=[%s]",
		q.Data, q.From.Username, q.From.ID, chatID, q.From.LanguageCode)

	req := Resolve(c.index, q.Data)

	if req.Kind == domain.ViewNoOp {
		if err := c.client.AnswerCallbackQuery(ctx, q.ID, view.NoOpToast); err != nil {
			log.Warnf("Failed to answer callback %s: %v", q.ID, err)
		}
		c.recordButton(ctx, q, chatID)
		return nil
	}

	// Acknowledge before anything slow — the journal write and the render
	// must not keep the button spinning.
	if err := c.client.AnswerCallbackQuery(ctx, q.ID, ""); err != nil {
		log.Warnf("Failed to answer callback %s: %v", q.ID, err)
	}

	c.recordButton(ctx, q, chatID)

	if req.Kind == domain.ViewNone {
		// Unrecognized token: no session mutation, no render.
		return nil
	}

	c.clearLastAlbum(ctx, chatID)

	switch req.Kind {
	case domain.ViewHome:
		return c.edit(ctx, q.Message, c.renderer.Home(true))
	case domain.ViewCategoryList:
		return c.edit(ctx, q.Message, c.renderer.CategoryList())
	case domain.ViewProductList:
		return c.edit(ctx, q.Message, c.renderer.ProductList(req.Category))
	case domain.ViewStaticPage:
		return c.edit(ctx, q.Message, c.renderer.StaticPage(req.Page))
	case domain.ViewProductDetail:
		return c.showProduct(ctx, q, req.ProductID)
	default:
		return nil
	}
}

func (c *Controller) recordButton(ctx context.Context, q *telegram.CallbackQuery, chatID int64) {
	if err := c.journal.RecordButton(ctx, repository.ButtonEvent{
		ChatID:       chatID,
		UserID:       q.From.ID,
		Username:     q.From.Username,
		Token:        q.Data,
		LanguageCode: q.From.LanguageCode,
	}); err != nil {
		log.Debugf("journal: %v", err)
	}
}

// clearLastAlbum deletes the photo messages of the previously shown product.
// Every step is best-effort: a message already deleted by the user must not
// block the transition.
func (c *Controller) clearLastAlbum(ctx context.Context, chatID int64) {
	ids, err := c.sessions.TakeLastAlbum(ctx, chatID)
	if err != nil {
		log.Warnf("Failed to take last album for chat %d: %v", chatID, err)
		return
	}
	for _, id := range ids {
		if err := c.client.DeleteMessage(ctx, chatID, id); err != nil {
			log.Debugf("Failed to delete album message %d in chat %d: %v", id, chatID, err)
		}
	}
}

func (c *Controller) edit(ctx context.Context, msg *telegram.Message, screen view.Screen) error {
	if err := c.client.EditMessageText(ctx, msg.Chat.ID, msg.MessageID, screen.Text, screen.Keyboard, screen.ParseMode); err != nil {
		return fmt.Errorf("failed to edit message %d in chat %d: %w", msg.MessageID, msg.Chat.ID, err)
	}
	return nil
}

func (c *Controller) showProduct(ctx context.Context, q *telegram.CallbackQuery, productID string) error {
	chatID := q.Message.Chat.ID
	product, ok := c.index.Product(productID)
	if !ok {
		// Resolve only produces this view for loaded products.
		return fmt.Errorf("product %q vanished from the index", productID)
	}

	screen := c.renderer.ProductCard(product)

	if len(product.Photos) == 0 {
		log.Warnf("🖼️ У товара '%s' нет фото", product.DisplayName)
		if _, err := c.client.SendText(ctx, chatID, screen.Text, screen.Keyboard, screen.ParseMode); err != nil {
			return fmt.Errorf("failed to send product %q to chat %d: %w", productID, chatID, err)
		}
	} else {
		log.Infof("PHOTOS_SENT=[%d] | PRODUCT=[%s] | USER=[@%s (%d)] | CHAT_ID=[%d]",
			len(product.Photos), product.DisplayName, q.From.Username, q.From.ID, chatID)

		if err := c.journal.RecordAlbum(ctx, repository.AlbumEvent{
			ChatID:     chatID,
			UserID:     q.From.ID,
			Username:   q.From.Username,
			ProductID:  productID,
			PhotoCount: len(product.Photos),
		}); err != nil {
			log.Debugf("journal: %v", err)
		}

		// Order matters: the album must be sent and its ids stored before the
		// description goes out, so the next transition can clean it up.
		messageIDs, err := c.client.SendAlbum(ctx, chatID, product.Photos)
		if err != nil {
			return fmt.Errorf("failed to send album for product %q to chat %d: %w", productID, chatID, err)
		}
		if err := c.sessions.SetLastAlbum(ctx, chatID, messageIDs); err != nil {
			log.Warnf("Failed to store album ids for chat %d: %v", chatID, err)
		}
		if _, err := c.client.SendText(ctx, chatID, screen.Text, screen.Keyboard, screen.ParseMode); err != nil {
			return fmt.Errorf("failed to send product %q to chat %d: %w", productID, chatID, err)
		}
	}

	// Drop the card that carried the tapped button so browsing does not pile
	// up stale product messages.
	if err := c.client.DeleteMessage(ctx, chatID, q.Message.MessageID); err != nil {
		log.Debugf("Failed to delete trigger message %d in chat %d: %v", q.Message.MessageID, chatID, err)
	}
	return nil
}
