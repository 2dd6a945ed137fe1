package services

import (
	"bytes"
	"fmt"

	"github.com/disintegration/imaging"
)

// ImageService normalises uploaded proof photos
type ImageService struct {
	maxDimension int
}

func NewImageService(maxDimension int) *ImageService {
	if maxDimension <= 0 {
		maxDimension = 1600
	}
	return &ImageService{maxDimension: maxDimension}
}

// NormalizeProof decodes a photo, applies EXIF orientation, shrinks it to
// fit maxDimension and re-encodes it as JPEG
func (s *ImageService) NormalizeProof(data []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: foto bukti tidak dapat dibaca", ErrInvalidInput)
	}

	b := img.Bounds()
	if b.Dx() > s.maxDimension || b.Dy() > s.maxDimension {
		img = imaging.Fit(img, s.maxDimension, s.maxDimension, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(80)); err != nil {
		return nil, fmt.Errorf("failed to encode proof: %w", err)
	}
	return buf.Bytes(), nil
}
