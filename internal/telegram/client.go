package telegram

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"storefront/bot/internal/config"

	"go.uber.org/ratelimit"
	"resty.dev/v3"
)

// Client is the outbound transport to the messaging platform. The navigation
// controller only ever talks to this interface, never to the wire.
type Client interface {
	GetUpdates(ctx context.Context, offset int64, timeout int) ([]Update, error)
	SendText(ctx context.Context, chatID int64, text string, keyboard *InlineKeyboardMarkup, parseMode string) (int, error)
	SendAlbum(ctx context.Context, chatID int64, photoURLs []string) ([]int, error)
	DeleteMessage(ctx context.Context, chatID int64, messageID int) error
	EditMessageText(ctx context.Context, chatID int64, messageID int, text string, keyboard *InlineKeyboardMarkup, parseMode string) error
	AnswerCallbackQuery(ctx context.Context, callbackQueryID, text string) error
}

type client struct {
	rl         ratelimit.Limiter
	httpClient *resty.Client
	baseURL    string
}

func NewClient(cfg config.BotConfig) Client {
	httpClient := resty.New().
		SetTimeout(time.Duration(cfg.Timeout+cfg.PollTimeout) * time.Second).
		SetRetryCount(3).
		SetRetryWaitTime(1 * time.Second).
		SetRetryMaxWaitTime(5 * time.Second).
		SetHeader("Content-Type", "application/json")

	return &client{
		rl:         ratelimit.New(cfg.MaxRequestsPerSecond),
		httpClient: httpClient,
		baseURL:    fmt.Sprintf("%s/bot%s", cfg.APIBaseURL, cfg.Token),
	}
}

func (c *client) call(ctx context.Context, method string, payload interface{}) (json.RawMessage, error) {
	c.rl.Take()

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s payload: %w", method, err)
	}

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(body).
		Post(c.baseURL + "/" + method)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%s cancelled: %w", method, ctx.Err())
		}
		return nil, fmt.Errorf("%s request failed: %w", method, err)
	}

	var api apiResponse
	if err := json.Unmarshal([]byte(resp.String()), &api); err != nil {
		return nil, fmt.Errorf("%s: invalid API response: %w", method, err)
	}
	if !api.OK {
		return nil, fmt.Errorf("%s rejected: %s", method, api.Description)
	}

	return api.Result, nil
}

func (c *client) GetUpdates(ctx context.Context, offset int64, timeout int) ([]Update, error) {
	result, err := c.call(ctx, "getUpdates", getUpdatesRequest{
		Offset:         offset,
		Timeout:        timeout,
		AllowedUpdates: []string{"message", "callback_query"},
	})
	if err != nil {
		return nil, err
	}

	var updates []Update
	if err := json.Unmarshal(result, &updates); err != nil {
		return nil, fmt.Errorf("getUpdates: invalid result: %w", err)
	}
	return updates, nil
}

func (c *client) SendText(ctx context.Context, chatID int64, text string, keyboard *InlineKeyboardMarkup, parseMode string) (int, error) {
	result, err := c.call(ctx, "sendMessage", sendMessageRequest{
		ChatID:      chatID,
		Text:        text,
		ParseMode:   parseMode,
		ReplyMarkup: keyboard,
	})
	if err != nil {
		return 0, err
	}

	var msg Message
	if err := json.Unmarshal(result, &msg); err != nil {
		return 0, fmt.Errorf("sendMessage: invalid result: %w", err)
	}
	return msg.MessageID, nil
}

func (c *client) SendAlbum(ctx context.Context, chatID int64, photoURLs []string) ([]int, error) {
	media := make([]InputMediaPhoto, 0, len(photoURLs))
	for _, url := range photoURLs {
		media = append(media, InputMediaPhoto{Type: "photo", Media: url})
	}

	result, err := c.call(ctx, "sendMediaGroup", sendMediaGroupRequest{
		ChatID: chatID,
		Media:  media,
	})
	if err != nil {
		return nil, err
	}

	var msgs []Message
	if err := json.Unmarshal(result, &msgs); err != nil {
		return nil, fmt.Errorf("sendMediaGroup: invalid result: %w", err)
	}

	ids := make([]int, 0, len(msgs))
	for _, m := range msgs {
		ids = append(ids, m.MessageID)
	}
	return ids, nil
}

// DeleteMessage removes a message. Callers treat failures as best-effort and
// log them; the client only reports.
func (c *client) DeleteMessage(ctx context.Context, chatID int64, messageID int) error {
	_, err := c.call(ctx, "deleteMessage", deleteMessageRequest{
		ChatID:    chatID,
		MessageID: messageID,
	})
	return err
}

func (c *client) EditMessageText(ctx context.Context, chatID int64, messageID int, text string, keyboard *InlineKeyboardMarkup, parseMode string) error {
	_, err := c.call(ctx, "editMessageText", editMessageTextRequest{
		ChatID:      chatID,
		MessageID:   messageID,
		Text:        text,
		ParseMode:   parseMode,
		ReplyMarkup: keyboard,
	})
	return err
}

func (c *client) AnswerCallbackQuery(ctx context.Context, callbackQueryID, text string) error {
	_, err := c.call(ctx, "answerCallbackQuery", answerCallbackQueryRequest{
		CallbackQueryID: callbackQueryID,
		Text:            text,
	})
	return err
}
