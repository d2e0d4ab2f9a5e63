package bot

import "context"

// Noop es el canal cuando Telegram está deshabilitado (dev sin token).
// Todas las operaciones son no-ops exitosos.
type Noop struct{}

func (Noop) SendText(context.Context, int64, string) error             { return nil }
func (Noop) SendDocument(context.Context, int64, string, string) error { return nil }
func (Noop) SendApprovalRequest(context.Context, int64, string, string) (int, error) {
	return 0, nil
}
func (Noop) EditMessageText(context.Context, int64, int, string) error { return nil }
