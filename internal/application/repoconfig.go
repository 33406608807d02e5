package application

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pelletier/go-toml/v2"

	"github.com/ericfisherdev/starterhub/internal/domain/model"
)

// errInvalidUTF8 is returned when a decoded payload is not valid UTF-8 text.
var errInvalidUTF8 = errors.New("payload is not valid UTF-8")

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// DecodeFileContent turns a contents-API payload into UTF-8 text. Base64
// payloads are decoded to bytes first and only then interpreted as text so
// multi-byte characters survive intact. Any other encoding label is taken
// to mean the content is already text.
func DecodeFileContent(fc model.FileContent) (string, error) {
	if !strings.EqualFold(fc.Encoding, "base64") {
		if !utf8.ValidString(fc.Content) {
			return "", errInvalidUTF8
		}
		return fc.Content, nil
	}

	// The contents API wraps base64 output at 60 columns.
	compact := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, fc.Content)

	raw, err := base64.StdEncoding.DecodeString(compact)
	if err != nil {
		return "", fmt.Errorf("decode base64: %w", err)
	}

	if !utf8.Valid(raw) {
		return "", errInvalidUTF8
	}

	return string(bytes.TrimPrefix(raw, utf8BOM)), nil
}

// ParseRepoConfig decodes fc and parses it as a TOML configuration document.
// Unknown keys and tables are ignored.
func ParseRepoConfig(fc model.FileContent) (*model.RepoConfig, error) {
	text, err := DecodeFileContent(fc)
	if err != nil {
		return nil, err
	}

	var cfg model.RepoConfig
	if err := toml.Unmarshal([]byte(text), &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", fc.Path, err)
	}

	return &cfg, nil
}
