package services

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sjperalta/tagihwarga-api/internal/models"
	"github.com/sjperalta/tagihwarga-api/pkg/logger"
	"github.com/stretchr/testify/require"
)

func init() {
	logger.Setup("test")
}

func fixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}

func strPtr(s string) *string { return &s }

func testCustomer(name, village string, dueDate int) models.Customer {
	return models.Customer{
		ID:      uuid.New(),
		Name:    name,
		Village: village,
		Phone:   strPtr("081234567890"),
		DueDate: dueDate,
	}
}

func testPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 120, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}
