package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/edgard/swapguard/internal/event"
	"github.com/edgard/swapguard/internal/menu"
)

// mainMenu builds a fresh copy of the contact/support keyboard.
func mainMenu(deps HandlerDeps) *models.InlineKeyboardMarkup {
	return menu.BuildWithLabels(deps.Config.Telegram.AdminUsername, deps.Config.Telegram.SupportLink, menu.Labels{
		ContactAdmin: deps.Config.Messages.ContactAdmin,
		SupportChat:  deps.Config.Messages.SupportChat,
	})
}

// replyWithMenu answers the event's message in its chat with text and the main menu.
func replyWithMenu(ctx context.Context, deps HandlerDeps, ev *event.Event, text string) error {
	params := &bot.SendMessageParams{
		ChatID:      ev.ChatID,
		Text:        text,
		ReplyMarkup: mainMenu(deps),
	}
	if ev.MessageID != 0 {
		params.ReplyParameters = &models.ReplyParameters{
			MessageID:                ev.MessageID,
			AllowSendingWithoutReply: true,
		}
	}
	_, err := deps.Messenger.SendMessage(ctx, params)
	return err
}
