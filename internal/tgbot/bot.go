// Package tgbot — Telegram-бот: по присланной геопозиции отвечает ближайшей лавочкой.
package tgbot

import (
	"context"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Sender отправляет сообщения; *tgbotapi.BotAPI удовлетворяет интерфейсу
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type Handler interface {
	CanHandle(update tgbotapi.Update) bool
	Handle(ctx context.Context, s Sender, update tgbotapi.Update)
}

type Bot struct {
	api      *tgbotapi.BotAPI
	handlers []Handler
}

func New(token string) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	log.Printf("[BOT] Authorized on account %s", api.Self.UserName)
	return &Bot{api: api}, nil
}

func (b *Bot) RegisterHandler(h Handler) {
	b.handlers = append(b.handlers, h)
	log.Printf("[BOT] Registered handler: %T", h)
}

// handlerFor возвращает первый обработчик, который берёт обновление
func (b *Bot) handlerFor(update tgbotapi.Update) Handler {
	for _, h := range b.handlers {
		if h.CanHandle(update) {
			return h
		}
	}
	return nil
}

// Run читает обновления long polling'ом до отмены контекста
func (b *Bot) Run(ctx context.Context) {
	log.Printf("[BOT] Starting bot with %d handlers", len(b.handlers))

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.api.GetUpdatesChan(u)

	go func() {
		<-ctx.Done()
		b.api.StopReceivingUpdates()
	}()

	for update := range updates {
		go b.dispatch(ctx, b.api, update)
	}
	log.Printf("[BOT] stopped")
}

// dispatch передаёт сообщение первому подходящему обработчику; false, если такого нет
func (b *Bot) dispatch(ctx context.Context, s Sender, update tgbotapi.Update) bool {
	if update.Message == nil {
		return false
	}
	from := "unknown"
	if update.Message.From != nil {
		from = "@" + update.Message.From.UserName
	}
	log.Printf("[BOT] Message from %s: %q", from, update.Message.Text)
	h := b.handlerFor(update)
	if h == nil {
		log.Printf("[BOT] No handler found for update")
		return false
	}
	h.Handle(ctx, s, update)
	return true
}

func reply(s Sender, c tgbotapi.Chattable) {
	if _, err := s.Send(c); err != nil {
		log.Printf("[BOT] send: %v", err)
	}
}
