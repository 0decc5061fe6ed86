package tgbot

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"gorm.io/gorm"

	"benches/internal/apperr"
	"benches/internal/models"
	"benches/internal/services"
)

const failureText = "Что-то пошло не так, попробуйте позже."

// StartHandler приветствует пользователя и проверяет привязку Telegram username
type StartHandler struct {
	db      *gorm.DB
	baseURL string
}

func NewStartHandler(db *gorm.DB, baseURL string) *StartHandler {
	return &StartHandler{db: db, baseURL: baseURL}
}

func (h *StartHandler) CanHandle(update tgbotapi.Update) bool {
	return update.Message != nil && update.Message.IsCommand() && update.Message.Command() == "start"
}

func (h *StartHandler) Handle(ctx context.Context, s Sender, update tgbotapi.Update) {
	msg := update.Message
	text := "Привет! Пришли геопозицию, и я найду ближайшую лавочку."
	username := ""
	if msg.From != nil {
		username = msg.From.UserName
	}
	var count int64
	if username != "" {
		err := h.db.WithContext(ctx).Model(&models.User{}).Where("telegram_username = ?", username).Count(&count).Error
		if err != nil {
			log.Printf("[BOT] lookup @%s: %v", username, err)
			reply(s, tgbotapi.NewMessage(msg.Chat.ID, failureText))
			return
		}
	}
	if count > 0 {
		text += fmt.Sprintf("\n\nАккаунт @%s привязан. Войти можно через POST %s/auth/tg/login?telegram_username=%s", username, h.baseURL, username)
	} else {
		text += "\n\nTelegram не привязан к аккаунту. Привязать можно через POST /link_tg."
	}
	reply(s, tgbotapi.NewMessage(msg.Chat.ID, text))
}

// NearestHandler отвечает ближайшей лавочкой на геопозицию или /nearest <lat> <lon>
type NearestHandler struct {
	db *gorm.DB
}

func NewNearestHandler(db *gorm.DB) *NearestHandler {
	return &NearestHandler{db: db}
}

func (h *NearestHandler) CanHandle(update tgbotapi.Update) bool {
	msg := update.Message
	if msg == nil {
		return false
	}
	return msg.Location != nil || (msg.IsCommand() && msg.Command() == "nearest")
}

func (h *NearestHandler) Handle(ctx context.Context, s Sender, update tgbotapi.Update) {
	msg := update.Message
	lat, lon, err := coordinates(msg)
	if err != nil {
		reply(s, tgbotapi.NewMessage(msg.Chat.ID, "Использование: /nearest <широта> <долгота>"))
		return
	}
	b, err := services.NearestBench(ctx, h.db, lat, lon)
	if err != nil {
		var e *apperr.Error
		if errors.As(err, &e) && e.Code != apperr.Unknown {
			reply(s, tgbotapi.NewMessage(msg.Chat.ID, e.Message))
			return
		}
		reply(s, tgbotapi.NewMessage(msg.Chat.ID, failureText))
		return
	}
	reply(s, tgbotapi.NewVenue(msg.Chat.ID, b.Name, venueAddress(b), b.Latitude, b.Longitude))
}

func coordinates(msg *tgbotapi.Message) (float64, float64, error) {
	if msg.Location != nil {
		return msg.Location.Latitude, msg.Location.Longitude, nil
	}
	args := strings.Fields(strings.ReplaceAll(msg.CommandArguments(), ",", " "))
	if len(args) != 2 {
		return 0, 0, fmt.Errorf("expected 2 arguments, got %d", len(args))
	}
	lat, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return 0, 0, err
	}
	lon, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return 0, 0, err
	}
	return lat, lon, nil
}

func venueAddress(b *models.Bench) string {
	addr := fmt.Sprintf("мест: %d", b.Count)
	if b.Description != nil && *b.Description != "" {
		addr = *b.Description + ", " + addr
	}
	return addr
}

// HelpHandler отвечает на всё остальное
type HelpHandler struct{}

func (HelpHandler) CanHandle(update tgbotapi.Update) bool { return update.Message != nil }

func (HelpHandler) Handle(_ context.Context, s Sender, update tgbotapi.Update) {
	reply(s, tgbotapi.NewMessage(update.Message.Chat.ID,
		"Пришли геопозицию или команду /nearest <широта> <долгота>, и я покажу ближайшую лавочку."))
}
