package logging

import (
	"bytes"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
)

func TestLogPanics(t *testing.T) {
	t.Run("error value", func(t *testing.T) {
		var buf bytes.Buffer
		logger := zerolog.New(&buf)
		func() {
			defer LogPanics(&logger)
			panic(errors.New("boom"))
		}()
		assert.Contains(t, buf.String(), "recovered from panic")
		assert.Contains(t, buf.String(), "boom")
	})
	t.Run("non-error value", func(t *testing.T) {
		var buf bytes.Buffer
		logger := zerolog.New(&buf)
		func() {
			defer LogPanics(&logger)
			panic("plain string")
		}()
		assert.Contains(t, buf.String(), `"recovered":"plain string"`)
	})
	t.Run("no panic", func(t *testing.T) {
		var buf bytes.Buffer
		logger := zerolog.New(&buf)
		func() {
			defer LogPanics(&logger)
		}()
		assert.Empty(t, buf.String())
	})
}

func TestPrettyWriter(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(NewPrettyWriter(&buf))
	logger.Info().Str("tag", "IHDR").Msg("framed chunk")
	assert.Contains(t, buf.String(), "framed chunk")
	assert.Contains(t, buf.String(), "IHDR")
}

func TestGlobalEvents(t *testing.T) {
	var buf bytes.Buffer
	saved, savedLevel := log.Logger, zerolog.GlobalLevel()
	defer func() {
		log.Logger = saved
		Init(savedLevel)
	}()
	log.Logger = zerolog.New(&buf)

	Init(zerolog.DebugLevel)
	Debug().Str("path", "a.png").Msg("decoding")
	Info().Msg("decoded")
	Error().Err(errors.New("bad crc")).Msg("failed to decode")
	assert.Contains(t, buf.String(), `"level":"debug"`)
	assert.Contains(t, buf.String(), `"path":"a.png"`)
	assert.Contains(t, buf.String(), `"level":"info"`)
	assert.Contains(t, buf.String(), `"error":"bad crc"`)

	buf.Reset()
	Init(zerolog.InfoLevel)
	Debug().Msg("hidden")
	assert.Empty(t, buf.String())
}
