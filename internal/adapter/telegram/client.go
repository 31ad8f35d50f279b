// Package telegram is the transport boundary: it turns Telegram updates into
// typed inputs for the conversation machines and usecases, and renders their
// replies back into Bot API calls.
package telegram

import (
	"context"
	"errors"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

type UpdateHandler func(context.Context, tgbotapi.Update)

// Client owns the long-poll loop and all outbound Bot API traffic.
type Client struct {
	api         *tgbotapi.BotAPI
	logger      *zap.Logger
	handler     UpdateHandler
	pollTimeout int
}

func NewClient(token string, pollTimeout int, logger *zap.Logger, handler UpdateHandler) (*Client, error) {
	if handler == nil {
		return nil, errors.New("telegram update handler is required")
	}

	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	logger.Info("telegram bot authorized", zap.String("username", api.Self.UserName))
	return &Client{
		api:         api,
		logger:      logger,
		handler:     handler,
		pollTimeout: pollTimeout,
	}, nil
}

// Start long-polls updates until the context is canceled.
func (c *Client) Start(ctx context.Context) error {
	timeout := c.pollTimeout
	if timeout <= 0 {
		timeout = 30
	}

	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = timeout
	updates := c.api.GetUpdatesChan(updateConfig)

	for {
		select {
		case <-ctx.Done():
			c.api.StopReceivingUpdates()
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			c.handler(ctx, update)
		}
	}
}

func (c *Client) Send(msg tgbotapi.Chattable) error {
	_, err := c.api.Send(msg)
	return err
}

// AnswerCallback acknowledges a callback query, optionally with a toast.
func (c *Client) AnswerCallback(callbackID, text string) {
	if _, err := c.api.Request(tgbotapi.NewCallback(callbackID, text)); err != nil {
		c.logger.Warn("callback answer failed", zap.Error(err))
	}
}

// FileURL resolves a Telegram file id to a direct download URL.
func (c *Client) FileURL(fileID string) (string, error) {
	return c.api.GetFileDirectURL(fileID)
}
