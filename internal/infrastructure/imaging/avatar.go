package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"strings"

	_ "image/gif"
	_ "image/jpeg"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

const (
	MaxAvatarSide = 200

	// Защита от "бомб": размер проверяется до декодирования пикселей
	maxSourcePixels = 40_000_000

	pngDataURIPrefix = "data:image/png;base64,"
)

type InvalidImageError struct {
	Reason string
}

func (e *InvalidImageError) Error() string {
	return "invalid image data: " + e.Reason
}

func invalid(format string, args ...any) error {
	return &InvalidImageError{Reason: fmt.Sprintf(format, args...)}
}

// IsRemoteURL - аватар по ссылке сохраняем как есть.
func IsRemoteURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// ProcessAvatar принимает base64 (с data-URI префиксом или без),
// уменьшает картинку до 200px по длинной стороне и отдает PNG data-URI.
func ProcessAvatar(data string) (string, error) {
	payload := stripDataURI(strings.TrimSpace(data))
	if payload == "" {
		return "", invalid("empty payload")
	}

	raw, err := decodeBase64(payload)
	if err != nil {
		return "", invalid("base64: %v", err)
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		return "", invalid("%v", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || cfg.Width*cfg.Height > maxSourcePixels {
		return "", invalid("unsupported dimensions %dx%d", cfg.Width, cfg.Height)
	}

	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return "", invalid("%v", err)
	}

	// Fit не увеличивает маленькие картинки
	img = imaging.Fit(img, MaxAvatarSide, MaxAvatarSide, imaging.Lanczos)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", invalid("png encode: %v", err)
	}
	return pngDataURIPrefix + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

func stripDataURI(s string) string {
	if !strings.HasPrefix(s, "data:image") {
		return s
	}
	if i := strings.IndexByte(s, ','); i >= 0 {
		return s[i+1:]
	}
	return ""
}

func decodeBase64(s string) ([]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(s)
	if err == nil {
		return raw, nil
	}
	// Клиенты иногда шлют без паддинга
	if raw, rawErr := base64.RawStdEncoding.DecodeString(strings.TrimRight(s, "=")); rawErr == nil {
		return raw, nil
	}
	return nil, err
}
