package bot

import (
	"context"
	"fmt"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/dropDatabas3/telemart/internal/observability/logger"
)

// Telegram es el canal real, respaldado por la Bot API.
type Telegram struct {
	api         *tgbotapi.BotAPI
	frontendURL string
}

// NewTelegram autentica el bot contra la API de Telegram.
func NewTelegram(token, frontendURL string) (*Telegram, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("bot: authenticate: %w", err)
	}
	return &Telegram{api: api, frontendURL: frontendURL}, nil
}

// Username retorna el username del bot autenticado (para logs de arranque).
func (t *Telegram) Username() string { return t.api.Self.UserName }

// SendText envía un mensaje de texto plano.
func (t *Telegram) SendText(_ context.Context, chatID int64, text string) error {
	_, err := t.api.Send(tgbotapi.NewMessage(chatID, text))
	return err
}

// SendDocument envía un archivo local como adjunto.
func (t *Telegram) SendDocument(_ context.Context, chatID int64, filePath, caption string) error {
	doc := tgbotapi.NewDocument(chatID, tgbotapi.FilePath(filePath))
	doc.Caption = caption
	_, err := t.api.Send(doc)
	return err
}

// SendApprovalRequest envía el resumen con botones aprobar/rechazar.
func (t *Telegram) SendApprovalRequest(_ context.Context, chatID int64, text, sellerID string) (int, error) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Aprobar", "approve:"+sellerID),
			tgbotapi.NewInlineKeyboardButtonData("❌ Rechazar", "reject:"+sellerID),
		),
	)
	sent, err := t.api.Send(msg)
	if err != nil {
		return 0, err
	}
	return sent.MessageID, nil
}

// EditMessageText reemplaza el texto de un mensaje (y descarta su teclado).
func (t *Telegram) EditMessageText(_ context.Context, chatID int64, messageID int, text string) error {
	_, err := t.api.Send(tgbotapi.NewEditMessageText(chatID, messageID, text))
	return err
}

// Run consume updates por long-polling hasta que el contexto se cancele.
// Los updates se procesan secuencialmente: el volumen del chat de admin no
// justifica un pool, y el orden secuencial evita carreras entre dos botones.
func (t *Telegram) Run(ctx context.Context, h Handler) error {
	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = 30
	updates := t.api.GetUpdatesChan(cfg)

	log := logger.L().With(logger.Component("bot"))
	log.Info("telegram bot started", logger.String("username", t.Username()))

	for {
		select {
		case <-ctx.Done():
			t.api.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			t.dispatch(ctx, h, update, log)
		}
	}
}

func (t *Telegram) dispatch(ctx context.Context, h Handler, update tgbotapi.Update, log *zap.Logger) {
	switch {
	case update.Message != nil && update.Message.IsCommand():
		if update.Message.Command() != "start" {
			return
		}
		t.handleStart(ctx, h, update, log)

	case update.CallbackQuery != nil:
		t.handleCallback(ctx, h, update.CallbackQuery, log)
	}
}

func (t *Telegram) handleStart(ctx context.Context, h Handler, update tgbotapi.Update, log *zap.Logger) {
	from := update.Message.From
	if from == nil {
		return
	}
	p := Profile{
		TelegramID:   strconv.FormatInt(from.ID, 10),
		ChatID:       update.Message.Chat.ID,
		FirstName:    from.FirstName,
		LastName:     from.LastName,
		Username:     from.UserName,
		LanguageCode: from.LanguageCode,
	}

	welcome, err := h.HandleStart(ctx, p)
	if err != nil {
		log.Error("start handler failed", logger.TelegramID(p.TelegramID), logger.Err(err))
		return
	}

	msg := tgbotapi.NewMessage(p.ChatID, welcome)
	if t.frontendURL != "" {
		msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonURL("🛍 Abrir tienda", t.frontendURL),
			),
		)
	}
	if _, err := t.api.Send(msg); err != nil {
		log.Warn("failed to send welcome", logger.ChatID(p.ChatID), logger.Err(err))
	}
}

func (t *Telegram) handleCallback(ctx context.Context, h Handler, cq *tgbotapi.CallbackQuery, log *zap.Logger) {
	cb := Callback{ID: cq.ID, Data: cq.Data}
	if cq.Message != nil {
		cb.ChatID = cq.Message.Chat.ID
		cb.MessageID = cq.Message.MessageID
		cb.HasText = cq.Message.Text != ""
	}

	edited, err := h.HandleCallback(ctx, cb)
	if err != nil {
		log.Error("callback handler failed", logger.String("data", cb.Data), logger.Err(err))
		// Cerrar el spinner del cliente aunque haya fallado.
		_, _ = t.api.Request(tgbotapi.NewCallback(cq.ID, "Ocurrió un error, intente de nuevo"))
		return
	}

	// Solo se puede editar un mensaje que tiene texto; un adjunto puro no.
	if edited != "" && cb.HasText {
		if err := t.EditMessageText(ctx, cb.ChatID, cb.MessageID, edited); err != nil {
			log.Warn("failed to edit message", logger.ChatID(cb.ChatID), logger.Err(err))
		}
	}
	_, _ = t.api.Request(tgbotapi.NewCallback(cq.ID, ""))
}
