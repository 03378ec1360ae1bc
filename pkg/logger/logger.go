// Package logger configura zerolog para la API y el CLI.
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config opciones del logger.
type Config struct {
	Env     string // development -> consola legible; resto -> JSON
	Level   string // trace, debug, info, warn, error; desconocido = info
	Service string // campo "service" en cada línea; vacío = se omite
}

// Logger zerolog.Logger con helpers para subloggers por componente.
type Logger struct {
	zerolog.Logger
}

// New escribe en stdout.
func New(cfg Config) *Logger {
	return NewWithWriter(cfg, os.Stdout)
}

// NewWithWriter escribe en w (el CLI usa stderr, los tests un buffer). También
// sustituye el logger global de zerolog para las librerías que lo usan.
func NewWithWriter(cfg Config, w io.Writer) *Logger {
	if cfg.Env == "development" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly}
	}
	ctx := zerolog.New(w).Level(ParseLevel(cfg.Level)).With().Timestamp()
	if cfg.Service != "" {
		ctx = ctx.Str("service", cfg.Service)
	}
	zl := ctx.Logger()
	log.Logger = zl
	return &Logger{Logger: zl}
}

// ParseLevel admite mayúsculas y "warning".
func ParseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "warning":
		return zerolog.WarnLevel
	case "":
		return zerolog.InfoLevel
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

// WithComponent sublogger con el campo component (usecase, http, cli).
func (l *Logger) WithComponent(component string) zerolog.Logger {
	return l.With().Str("component", component).Logger()
}
