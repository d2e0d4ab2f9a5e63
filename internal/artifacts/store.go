// Package artifacts guarda en disco local los archivos subidos por usuarios
// (hoy: el documento de verificación del vendedor).
//
// El path que se persiste en la base es relativo al directorio raíz del store,
// así el directorio puede moverse sin migrar registros.
package artifacts

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ErrInvalidPath indica un path que escapa del directorio del store.
var ErrInvalidPath = errors.New("artifacts: invalid path")

// Store persiste archivos bajo un directorio raíz.
type Store struct {
	dir string
}

// NewStore crea el store y asegura que el directorio exista.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("artifacts: mkdir %s: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

// Dir retorna el directorio raíz (para montar el file server de /uploads).
func (s *Store) Dir() string { return s.dir }

// Save escribe el contenido con un nombre generado (uuid + extensión original)
// y retorna el path relativo a persistir.
func (s *Store) Save(originalName string, r io.Reader) (string, error) {
	name := uuid.NewString() + sanitizeExt(originalName)
	full := filepath.Join(s.dir, name)

	f, err := os.OpenFile(full, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("artifacts: create %s: %w", name, err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		_ = os.Remove(full)
		return "", fmt.Errorf("artifacts: write %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("artifacts: close %s: %w", name, err)
	}
	return name, nil
}

// Delete elimina un archivo por su path relativo. Best-effort por contrato:
// un path inexistente no es error, y un path que no es un archivo local
// (ej: una URL externa heredada) se ignora en silencio.
func (s *Store) Delete(relPath string) error {
	if relPath == "" || strings.Contains(relPath, "://") {
		return nil
	}
	full, err := s.resolve(relPath)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("artifacts: remove %s: %w", relPath, err)
	}
	return nil
}

// Exists reporta si el archivo está en disco.
func (s *Store) Exists(relPath string) bool {
	full, err := s.resolve(relPath)
	if err != nil {
		return false
	}
	_, err = os.Stat(full)
	return err == nil
}

// resolve junta y valida que el path no escape del directorio raíz.
func (s *Store) resolve(relPath string) (string, error) {
	full := filepath.Join(s.dir, filepath.Clean("/"+relPath))
	if !strings.HasPrefix(full, filepath.Clean(s.dir)+string(os.PathSeparator)) {
		return "", ErrInvalidPath
	}
	return full, nil
}

// sanitizeExt conserva solo extensiones alfanuméricas cortas.
func sanitizeExt(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if len(ext) < 2 || len(ext) > 8 {
		return ""
	}
	for _, r := range ext[1:] {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return ""
		}
	}
	return ext
}
