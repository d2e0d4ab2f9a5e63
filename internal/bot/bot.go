// Package bot maneja el canal de Telegram: mensajes salientes (notificaciones
// y solicitudes de aprobación) y el loop de updates entrantes (/start y
// callbacks de los botones inline).
package bot

import "context"

// Profile son los datos de perfil que llegan con un update de Telegram.
type Profile struct {
	TelegramID   string
	ChatID       int64
	FirstName    string
	LastName     string
	Username     string
	LanguageCode string
}

// Callback es un toque de botón inline.
type Callback struct {
	ID        string
	Data      string
	ChatID    int64
	MessageID int
	// HasText indica si el mensaje original tiene texto editable. Los
	// mensajes que son solo adjunto no se pueden editar con editMessageText.
	HasText bool
}

// Handler procesa updates entrantes. Lo implementa el Dispatcher; el transporte
// no conoce la lógica de negocio.
type Handler interface {
	// HandleStart sincroniza el perfil y retorna el texto de bienvenida.
	HandleStart(ctx context.Context, p Profile) (string, error)

	// HandleCallback resuelve el callback y retorna el texto con el que
	// reemplazar el mensaje original (vacío para no editar).
	HandleCallback(ctx context.Context, cb Callback) (string, error)
}
