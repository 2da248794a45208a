package bot

import (
	"context"
	"strings"
	"time"

	"storefront/bot/internal/telegram"

	log "github.com/sirupsen/logrus"
)

// Dispatcher long-polls the platform for updates and hands each one to the
// controller in its own goroutine. A stuck transport call stalls only the
// conversation it belongs to.
type Dispatcher struct {
	client      telegram.Client
	controller  *Controller
	pollTimeout int
}

func NewDispatcher(client telegram.Client, controller *Controller, pollTimeout int) *Dispatcher {
	return &Dispatcher{
		client:      client,
		controller:  controller,
		pollTimeout: pollTimeout,
	}
}

func (d *Dispatcher) Run(ctx context.Context) error {
	log.Infof("🕒 Bot started at: %s", time.Now().Format("2006-01-02 15:04:05"))

	var offset int64
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		updates, err := d.client.GetUpdates(ctx, offset, d.pollTimeout)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			log.Errorf("❌ Failed to get updates: %v", err)
			time.Sleep(3 * time.Second)
			continue
		}

		for _, update := range updates {
			if update.UpdateID >= offset {
				offset = update.UpdateID + 1
			}
			go d.dispatch(ctx, update)
		}
	}
}

func (d *Dispatcher) dispatch(ctx context.Context, update telegram.Update) {
	switch {
	case update.CallbackQuery != nil:
		if err := d.controller.HandleCallback(ctx, update.CallbackQuery); err != nil {
			log.Errorf("❌ Callback handling failed: %v", err)
		}
	case update.Message != nil && strings.HasPrefix(update.Message.Text, "/start"):
		if err := d.controller.HandleStart(ctx, update.Message); err != nil {
			log.Errorf("❌ /start handling failed: %v", err)
		}
	}
}
