package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// ErrKeyUnavailable la fuente de la API key no existe, no se puede leer o no trae la clave.
var ErrKeyUnavailable = errors.New("API key no disponible")

// KeyProvider resuelve la API key de push-api en el momento de cada llamada.
type KeyProvider interface {
	APIKey() (string, error)
}

// FileKeyProvider lee la key desde un archivo tipo .env (KEY=valor) en cada llamada,
// de modo que rotar la key no requiere reiniciar el proceso.
type FileKeyProvider struct {
	path string
	name string
}

// NewFileKeyProvider construye el proveedor. name es la variable a buscar, ej. "BDL_API_KEY".
func NewFileKeyProvider(path, name string) *FileKeyProvider {
	return &FileKeyProvider{path: path, name: name}
}

// APIKey devuelve la key o un error que envuelve ErrKeyUnavailable.
func (p *FileKeyProvider) APIKey() (string, error) {
	v := viper.New()
	v.SetConfigFile(p.path)
	v.SetConfigType("env")
	if err := v.ReadInConfig(); err != nil {
		return "", fmt.Errorf("%w: leer %s: %v", ErrKeyUnavailable, p.path, err)
	}
	if !v.IsSet(p.name) {
		return "", fmt.Errorf("%w: %s no definido en %s", ErrKeyUnavailable, p.name, p.path)
	}
	key := strings.TrimSpace(v.GetString(p.name))
	if key == "" {
		return "", fmt.Errorf("%w: %s vacío en %s", ErrKeyUnavailable, p.name, p.path)
	}
	return key, nil
}

// StaticKeyProvider key fija (variables de entorno, tests).
type StaticKeyProvider string

// APIKey devuelve la key fija; vacía equivale a no disponible.
func (s StaticKeyProvider) APIKey() (string, error) {
	if s == "" {
		return "", ErrKeyUnavailable
	}
	return string(s), nil
}
