// Package media stores generated card audio and hands back a URL for it.
package media

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gophcards/internal/filex"
	"github.com/google/uuid"
)

const audioContentType = "audio/mpeg"

var ErrEmptyAudio = errors.New("no audio data")

// Store saves an object under name and returns a URL it can be fetched from.
type Store interface {
	Save(ctx context.Context, name string, data []byte, contentType string) (string, error)
}

// SaveAudio decodes the base64 audio generated for word and stores it as an
// mp3 under a unique name.
func SaveAudio(ctx context.Context, store Store, word, audioBase64 string) (string, error) {
	audioBase64 = strings.TrimSpace(audioBase64)
	if audioBase64 == "" {
		return "", ErrEmptyAudio
	}

	data, err := base64.StdEncoding.DecodeString(audioBase64)
	if err != nil {
		return "", fmt.Errorf("decode audio: %w", err)
	}
	if len(data) == 0 {
		return "", ErrEmptyAudio
	}

	name := fmt.Sprintf("%s-%s.mp3", filex.Slug(word), uuid.NewString())
	return store.Save(ctx, name, data, audioContentType)
}
