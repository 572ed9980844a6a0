package notification

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/wb-go/wbf/logger"

	"github.com/alr63095/ClubConnect/internal/domain"
)

const bookingTimeLayout = "02.01.2006 15:04"

type TelegramNotifier struct {
	bot    *tgbotapi.BotAPI
	logger logger.Logger
}

func NewTelegramNotifier(token string, logger logger.Logger) (*TelegramNotifier, error) {
	if token == "" {
		logger.Warn("telegram bot token is empty, notifications disabled")
		return &TelegramNotifier{bot: nil, logger: logger}, nil
	}

	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}

	return &TelegramNotifier{bot: bot, logger: logger}, nil
}

func (n *TelegramNotifier) NotifyBookingConfirmed(ctx context.Context, user *domain.User, court *domain.Court, b *domain.Booking) {
	text := fmt.Sprintf(
		"*Booking confirmed*\n\nCourt: %s\nStarts: %s\nTotal: %.2f",
		court.Name, b.StartTime.Format(bookingTimeLayout), b.TotalPrice,
	)
	n.send(ctx, user.TelegramChatID, text)
}

func (n *TelegramNotifier) NotifyBookingCancelled(ctx context.Context, user *domain.User, b *domain.Booking) {
	text := fmt.Sprintf(
		"*Booking cancelled*\n\nStarts: %s",
		b.StartTime.Format(bookingTimeLayout),
	)
	n.send(ctx, user.TelegramChatID, text)
}

func (n *TelegramNotifier) NotifyUpcomingBooking(ctx context.Context, user *domain.User, club *domain.Club, b *domain.Booking) {
	text := fmt.Sprintf(
		"*Booking reminder*\n\nYou have a booking at %s tomorrow at %s.",
		club.Name, b.StartTime.Format("15:04"),
	)
	n.send(ctx, user.TelegramChatID, text)
}

func (n *TelegramNotifier) NotifyJoinRequest(ctx context.Context, owner, requester *domain.User, sport string, b *domain.Booking) {
	text := fmt.Sprintf(
		"*Join request*\n\n%s wants to join your %s game on %s.",
		requester.Name, sport, b.StartTime.Format(bookingTimeLayout),
	)
	n.send(ctx, owner.TelegramChatID, text)
}

func (n *TelegramNotifier) NotifyPendingCancellation(ctx context.Context, admin, requester *domain.User, b *domain.Booking) {
	text := fmt.Sprintf(
		"*Pending cancellation*\n\n%s requested to cancel a booking starting %s (less than 24h away).",
		requester.Name, b.StartTime.Format(bookingTimeLayout),
	)
	n.send(ctx, admin.TelegramChatID, text)
}

func (n *TelegramNotifier) send(ctx context.Context, chatID *int64, text string) {
	if n.bot == nil {
		n.logger.Debug("notification skipped (bot disabled)", logger.String("text", text))
		return
	}

	if chatID == nil {
		n.logger.Debug("notification skipped (no chat_id)", logger.String("text", text))
		return
	}

	if err := ctx.Err(); err != nil {
		n.logger.Debug("notification skipped (context cancelled)",
			logger.Int64("chat_id", *chatID),
		)
		return
	}

	msg := tgbotapi.NewMessage(*chatID, text)
	msg.ParseMode = "Markdown"

	if _, err := n.bot.Send(msg); err != nil {
		n.logger.Error("failed to send telegram notification",
			logger.Int64("chat_id", *chatID),
			logger.String("error", err.Error()),
		)
	}
}
