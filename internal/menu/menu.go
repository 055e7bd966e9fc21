// Package menu builds the inline keyboard attached to greetings.
package menu

import (
	"strings"

	"github.com/go-telegram/bot/models"
)

// Default button labels.
const (
	ContactAdminLabel = "🛠️ Contact Admin"
	SupportChatLabel  = "💬 Support Chat"
)

// Labels customizes button texts.
type Labels struct {
	ContactAdmin string
	SupportChat  string
}

// Build returns a single-row keyboard with a link to the admin's profile and
// a link to the support chat, using the default labels.
func Build(adminHandle, supportLink string) *models.InlineKeyboardMarkup {
	return BuildWithLabels(adminHandle, supportLink, Labels{
		ContactAdmin: ContactAdminLabel,
		SupportChat:  SupportChatLabel,
	})
}

// BuildWithLabels is Build with caller-provided labels.
func BuildWithLabels(adminHandle, supportLink string, labels Labels) *models.InlineKeyboardMarkup {
	return &models.InlineKeyboardMarkup{
		InlineKeyboard: [][]models.InlineKeyboardButton{
			{
				{Text: labels.ContactAdmin, URL: AdminLink(adminHandle)},
				{Text: labels.SupportChat, URL: supportLink},
			},
		},
	}
}

// AdminLink turns "@handle" or "handle" into a t.me profile link.
func AdminLink(adminHandle string) string {
	return "https://t.me/" + strings.Trim(adminHandle, "@")
}
