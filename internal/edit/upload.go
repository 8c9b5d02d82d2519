package edit

import (
	"bytes"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"strings"

	"promptglot/internal/domain"

	"github.com/gabriel-vasile/mimetype"
	_ "golang.org/x/image/webp"
)

// MaxUploadBytes is the per-file limit for images and masks.
const MaxUploadBytes = 10 << 20

// AllowedImageTypes lists the accepted MIME types in display order.
var AllowedImageTypes = []string{"image/jpeg", "image/jpg", "image/png", "image/webp"}

func allowedImageType(contentType string) bool {
	for _, t := range AllowedImageTypes {
		if t == contentType {
			return true
		}
	}
	return false
}

// PrepareUpload fills in what the multipart header left out. An empty or
// generic declared type is replaced by the sniffed one, and dimensions are
// decoded when the format is known. Decode failures are not fatal here; the
// type check decides.
func PrepareUpload(u *domain.Upload) {
	if u == nil || len(u.Data) == 0 {
		return
	}
	declared := strings.ToLower(strings.TrimSpace(u.ContentType))
	if idx := strings.IndexByte(declared, ';'); idx >= 0 {
		declared = strings.TrimSpace(declared[:idx])
	}
	if declared == "" || declared == "application/octet-stream" {
		declared = mimetype.Detect(u.Data).String()
		if idx := strings.IndexByte(declared, ';'); idx >= 0 {
			declared = declared[:idx]
		}
	}
	u.ContentType = declared

	if u.Width == 0 && u.Height == 0 {
		if cfg, _, err := image.DecodeConfig(bytes.NewReader(u.Data)); err == nil {
			u.Width, u.Height = cfg.Width, cfg.Height
		}
	}
}
