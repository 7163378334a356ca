package service

import (
	"encoding/hex"
	"io"

	"github.com/rs/zerolog"
)

func newTestLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

func hexString(b []byte) string {
	return hex.EncodeToString(b)
}
