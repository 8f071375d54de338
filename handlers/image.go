package handlers

import (
	"bytes"
	"context"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"flavorgraph/logger"

	"github.com/nfnt/resize"
	"go.uber.org/zap"
)

type ImageOptions struct {
	Height   uint
	Timeout  time.Duration
	MaxBytes int64
	Client   *http.Client
}

// FetchImageHandler fetches a recipe image from a URL, resizes it to the
// configured height keeping the aspect ratio, and returns it.
func FetchImageHandler(opts ImageOptions, w http.ResponseWriter, r *http.Request) {
	imageURL := r.URL.Query().Get("url")
	if imageURL == "" {
		http.Error(w, "Missing 'url' query parameter", http.StatusBadRequest)
		return
	}
	u, err := url.Parse(imageURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		http.Error(w, "Invalid 'url' query parameter", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		http.Error(w, "Invalid 'url' query parameter", http.StatusBadRequest)
		return
	}
	client := opts.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		logger.Warn("Failed to fetch image", zap.String("url", imageURL), zap.Error(err))
		http.Error(w, "Failed to fetch image", http.StatusBadGateway)
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		http.Error(w, "Failed to fetch image", http.StatusBadGateway)
		return
	}

	body := io.Reader(resp.Body)
	if opts.MaxBytes > 0 {
		body = io.LimitReader(resp.Body, opts.MaxBytes+1)
	}
	raw, err := io.ReadAll(body)
	if err != nil {
		http.Error(w, "Failed to fetch image", http.StatusBadGateway)
		return
	}
	if opts.MaxBytes > 0 && int64(len(raw)) > opts.MaxBytes {
		http.Error(w, "Image too large", http.StatusRequestEntityTooLarge)
		return
	}

	img, format, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		http.Error(w, "Failed to decode image", http.StatusUnprocessableEntity)
		return
	}

	newHeight := opts.Height
	newWidth, ok := scaledWidth(img.Bounds(), newHeight)
	if !ok {
		http.Error(w, "Invalid image dimensions", http.StatusUnprocessableEntity)
		return
	}

	resized := resize.Resize(newWidth, newHeight, img, resize.Lanczos3)

	var out bytes.Buffer
	switch strings.ToLower(format) {
	case "jpeg", "jpg":
		err = jpeg.Encode(&out, resized, nil)
	case "png":
		err = png.Encode(&out, resized)
	default:
		http.Error(w, "Unsupported image format", http.StatusUnsupportedMediaType)
		return
	}
	if err != nil {
		http.Error(w, "Failed to encode image", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/"+format)
	_, _ = w.Write(out.Bytes())
}

// scaledWidth keeps the aspect ratio of bounds at the given height. It
// reports false for images with no area.
func scaledWidth(bounds image.Rectangle, height uint) (uint, bool) {
	if bounds.Dx() <= 0 || bounds.Dy() <= 0 {
		return 0, false
	}
	aspectRatio := float64(bounds.Dx()) / float64(bounds.Dy())
	width := uint(float64(height) * aspectRatio)
	if width == 0 {
		width = 1
	}
	return width, true
}
