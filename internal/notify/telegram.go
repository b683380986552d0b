package notify

import (
	"fmt"
	"log/slog"
	"strings"

	tgbotapi "github.com/PaulSonOfLars/gotgbot/v2"

	"github.com/JayeshSardesai/ERP-sub004/entity"
	"github.com/JayeshSardesai/ERP-sub004/internal/config"
	"github.com/JayeshSardesai/ERP-sub004/internal/lib/sl"
)

// Telegram delivers SOS notifications to a school's staff chat. Outbound
// only; the bot never polls for updates.
type Telegram struct {
	log     *slog.Logger
	api     *tgbotapi.Bot
	adminId int64
}

func NewTelegram(conf *config.Config, log *slog.Logger) (*Telegram, error) {
	api, err := tgbotapi.NewBot(conf.Telegram.ApiKey, nil)
	if err != nil {
		return nil, fmt.Errorf("creating api instance: %v", err)
	}

	return &Telegram{
		log:     log.With(sl.Module("telegram")),
		api:     api,
		adminId: conf.Telegram.AdminId,
	}, nil
}

// NotifySOS sends an alert summary to the school's chat. Falls back to
// the platform admin chat when the school has none configured.
func (t *Telegram) NotifySOS(chatID int64, alert *entity.SOSAlert) error {
	if chatID == 0 {
		chatID = t.adminId
	}
	if chatID == 0 {
		return nil
	}

	text := fmt.Sprintf("*SOS ALERT*\nStudent: %s (%s %s)\nLocation: %s",
		alert.StudentName, alert.ClassName, alert.Section, alert.Location)
	if alert.Message != "" {
		text += "\nMessage: " + alert.Message
	}

	t.plainResponse(chatID, text)
	return nil
}

func (t *Telegram) plainResponse(chatId int64, text string) {

	// Send the response back to the chat
	sanitized := sanitize(text)

	if sanitized != "" {
		_, err := t.api.SendMessage(chatId, sanitized, &tgbotapi.SendMessageOpts{
			ParseMode: "MarkdownV2",
		})
		if err != nil {
			t.log.With(
				slog.Int64("id", chatId),
			).Warn("sending message", sl.Err(err))
			_, err = t.api.SendMessage(chatId, sanitized, &tgbotapi.SendMessageOpts{})
			if err != nil {
				t.log.With(
					slog.Int64("id", chatId),
				).Error("sending safe message", sl.Err(err))
			}
		}
	} else {
		t.log.With(
			slog.Int64("id", chatId),
		).Debug("empty message")
	}
}

func sanitize(input string) string {
	// Define a list of reserved characters that need to be escaped
	reservedChars := "\\`_{}#+-.!|()[]"

	// Loop through each character in the input string
	var sanitized strings.Builder
	for _, char := range input {
		// Check if the character is reserved
		if strings.ContainsRune(reservedChars, char) {
			// Escape the character with a backslash
			sanitized.WriteByte('\\')
		}
		sanitized.WriteRune(char)
	}

	return sanitized.String()
}
