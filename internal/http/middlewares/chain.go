package middlewares

import "net/http"

// Middleware decora un http.Handler. Los grupos de rutas los montan vía chi;
// Chain existe para componer cadenas sueltas (el guard de rol en los tests,
// por ejemplo) sin pasar por un router.
type Middleware func(http.Handler) http.Handler

// Chain envuelve h con los middlewares dados, el primero como el más externo:
// Chain(h, A, B) atiende la request como A -> B -> h.
func Chain(h http.Handler, mws ...Middleware) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

// ChainFunc es Chain sobre un http.HandlerFunc.
func ChainFunc(hf http.HandlerFunc, mws ...Middleware) http.Handler {
	return Chain(hf, mws...)
}
