// Package repository define las entidades del dominio y los contratos de
// persistencia. Los drivers concretos viven en internal/store (pg, memory).
//
// Convenciones:
//   - Toda operación recibe context.Context.
//   - "No existe" se reporta con ErrNotFound, nunca con (nil, nil).
//   - Los drivers no loguean: el logging es responsabilidad de la capa que llama.
package repository
