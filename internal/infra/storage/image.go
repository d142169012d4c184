package storage

import (
	"bytes"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"strings"

	"github.com/chai2010/webp"
	"golang.org/x/image/draw"
)

const (
	previewMaxDim  = 480
	previewQuality = 80
)

func IsImageContentType(contentType string) bool {
	switch strings.ToLower(contentType) {
	case "image/jpeg", "image/png":
		return true
	}
	return false
}

// EncodePreview gera uma miniatura WebP do anexo, limitada a
// previewMaxDim no maior lado. Usada nas listagens de registros de
// tratamento sem baixar o arquivo original.
func EncodePreview(src []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(src))
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	if w > previewMaxDim || h > previewMaxDim {
		if w >= h {
			h = h * previewMaxDim / w
			w = previewMaxDim
		} else {
			w = w * previewMaxDim / h
			h = previewMaxDim
		}
		dst := image.NewRGBA(image.Rect(0, 0, w, h))
		draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
		img = dst
	}

	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Quality: previewQuality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
