package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Faturacao-api/pkg/logger"
)

func TestWithComponent_JSON(t *testing.T) {
	var buf bytes.Buffer
	l := logger.NewWithWriter(logger.Config{Env: "production", Level: "info", Service: "faturacao-api"}, &buf)

	log := l.WithComponent("reporting")
	log.Info().Str("report", "modelo7").Msg("relatório gerado")
	log.Debug().Msg("no debe aparecer")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "reporting", entry["component"])
	assert.Equal(t, "faturacao-api", entry["service"])
	assert.Equal(t, "modelo7", entry["report"])
	assert.Equal(t, "info", entry["level"])
}

func TestNewWithWriter_ConsolaEnDesarrollo(t *testing.T) {
	var buf bytes.Buffer
	l := logger.NewWithWriter(logger.Config{Env: "development", Level: "debug"}, &buf)

	l.Debug().Msg("arranque")

	assert.Contains(t, buf.String(), "arranque")
	assert.False(t, json.Valid(bytes.TrimSpace(buf.Bytes())), "la consola no emite JSON")
}

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"trace":   zerolog.TraceLevel,
		"DEBUG":   zerolog.DebugLevel,
		" warn ":  zerolog.WarnLevel,
		"warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"":        zerolog.InfoLevel,
		"verbose": zerolog.InfoLevel,
	}
	for in, want := range cases {
		assert.Equal(t, want, logger.ParseLevel(in), in)
	}
}
