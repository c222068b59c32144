package service

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"dananglover/internal/config"
	"dananglover/internal/models"
	"dananglover/internal/observability"

	"github.com/chai2010/webp"
	"github.com/google/uuid"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // Register WebP decoder
)

const (
	BucketPlacePhotos = "place-photos"
	BucketBlogImages  = "blog-images"

	DefaultMediaRoot       = "/tmp/dananglover/media"
	DefaultMediaBaseURL    = "/media"
	DefaultMaxUploadSizeMB = 10

	MasterMaxSize    = 2048
	ThumbnailMaxSize = 512
	JPEGQuality      = 82
	WebPQuality      = 70
)

// UploadMediaInput carries one raw file into the media pipeline.
type UploadMediaInput struct {
	Bucket      string
	Filename    string
	ContentType string
	Content     []byte
}

// StoredFile points at the processed file and its thumbnails.
type StoredFile struct {
	URL              string `json:"url"`
	ThumbnailURL     string `json:"thumbnailUrl"`
	ThumbnailJPEGURL string `json:"thumbnailJpegUrl"`
}

// MediaService validates uploads, re-encodes them to WebP and writes them
// under a per-bucket directory served at the media base URL.
type MediaService struct {
	root           string
	baseURL        string
	maxUploadBytes int64
}

func NewMediaService(cfg *config.Config) *MediaService {
	root := DefaultMediaRoot
	baseURL := DefaultMediaBaseURL
	maxUploadMB := DefaultMaxUploadSizeMB

	if cfg != nil {
		if cfg.MediaRoot != "" {
			root = cfg.MediaRoot
		}
		if cfg.MediaBaseURL != "" {
			baseURL = cfg.MediaBaseURL
		}
		if cfg.MediaMaxUploadMB > 0 {
			maxUploadMB = cfg.MediaMaxUploadMB
		}
	}

	return &MediaService{
		root:           root,
		baseURL:        strings.TrimRight(baseURL, "/"),
		maxUploadBytes: int64(maxUploadMB) * 1024 * 1024,
	}
}

// Root returns the directory uploads are written under.
func (s *MediaService) Root() string {
	return s.root
}

// MaxUploadBytes returns the per-file size ceiling.
func (s *MediaService) MaxUploadBytes() int64 {
	return s.maxUploadBytes
}

func (s *MediaService) Upload(ctx context.Context, in UploadMediaInput) (*StoredFile, error) {
	if !isValidBucket(in.Bucket) {
		return nil, models.NewValidationError("Invalid media bucket")
	}
	if len(in.Content) == 0 {
		return nil, models.NewValidationError("No file uploaded")
	}
	if int64(len(in.Content)) > s.maxUploadBytes {
		observability.MediaProcessed.WithLabelValues(in.Bucket, "too_large").Inc()
		return nil, models.NewValidationError(fmt.Sprintf("File too large (max %dMB)", s.maxUploadBytes/(1024*1024)))
	}

	detectedType := http.DetectContentType(in.Content)
	if !isAllowedImageMIME(detectedType) {
		observability.MediaProcessed.WithLabelValues(in.Bucket, "bad_type").Inc()
		return nil, models.NewValidationError("Invalid image type")
	}

	decoded, format, err := image.Decode(bytes.NewReader(in.Content))
	if err != nil {
		observability.MediaProcessed.WithLabelValues(in.Bucket, "undecodable").Inc()
		return nil, models.NewValidationError("Invalid image file")
	}
	if !isSupportedDecodedFormat(format) {
		return nil, models.NewValidationError("Unsupported image format")
	}

	started := time.Now()

	master := resizeToFit(decoded, MasterMaxSize, MasterMaxSize)
	thumb := resizeToFit(decoded, ThumbnailMaxSize, ThumbnailMaxSize)

	masterBytes, err := encodeWebP(master, WebPQuality)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	thumbWebPBytes, err := encodeWebP(thumb, WebPQuality)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	// JPEG thumbnail kept for clients without WebP support
	thumbJPEGBytes, err := encodeJPEG(thumb, JPEGQuality)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	name := uuid.NewString()
	masterRel := filepath.Join(in.Bucket, name+".webp")
	thumbWebPRel := filepath.Join(in.Bucket, name+"_thumb.webp")
	thumbJPEGRel := filepath.Join(in.Bucket, name+"_thumb.jpg")

	written := make([]string, 0, 3)
	for _, f := range []struct {
		rel  string
		data []byte
	}{
		{masterRel, masterBytes},
		{thumbWebPRel, thumbWebPBytes},
		{thumbJPEGRel, thumbJPEGBytes},
	} {
		abs := filepath.Join(s.root, f.rel)
		if err := writeBytesToFile(abs, f.data); err != nil {
			cleanupMediaFiles(written)
			observability.MediaProcessed.WithLabelValues(in.Bucket, "write_failed").Inc()
			return nil, models.NewInternalError(err)
		}
		written = append(written, abs)
	}

	observability.MediaProcessingSeconds.Observe(time.Since(started).Seconds())
	observability.MediaProcessed.WithLabelValues(in.Bucket, "ok").Inc()

	return &StoredFile{
		URL:              s.fileURL(masterRel),
		ThumbnailURL:     s.fileURL(thumbWebPRel),
		ThumbnailJPEGURL: s.fileURL(thumbJPEGRel),
	}, nil
}

func (s *MediaService) fileURL(rel string) string {
	return s.baseURL + "/" + filepath.ToSlash(rel)
}

func isValidBucket(bucket string) bool {
	switch bucket {
	case BucketPlacePhotos, BucketBlogImages:
		return true
	default:
		return false
	}
}

func resizeToFit(src image.Image, maxWidth, maxHeight int) image.Image {
	bounds := src.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()
	if w <= 0 || h <= 0 {
		return src
	}
	if w <= maxWidth && h <= maxHeight {
		return src
	}

	scaleW := float64(maxWidth) / float64(w)
	scaleH := float64(maxHeight) / float64(h)
	scale := scaleW
	if scaleH < scale {
		scale = scaleH
	}
	newW := int(float64(w) * scale)
	newH := int(float64(h) * scale)
	if newW < 1 {
		newW = 1
	}
	if newH < 1 {
		newH = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, xdraw.Over, nil)
	return dst
}

func encodeJPEG(img image.Image, quality int) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeWebP(img image.Image, quality int) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	if err := webp.Encode(buf, img, &webp.Options{Quality: float32(quality)}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func isAllowedImageMIME(contentType string) bool {
	switch strings.ToLower(strings.TrimSpace(contentType)) {
	case "image/jpeg", "image/jpg", "image/png", "image/gif", "image/webp":
		return true
	default:
		return false
	}
}

func isSupportedDecodedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "jpeg", "jpg", "png", "gif", "webp":
		return true
	default:
		return false
	}
}

func writeBytesToFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

func cleanupMediaFiles(paths []string) {
	for _, p := range paths {
		_ = os.Remove(p)
	}
}
