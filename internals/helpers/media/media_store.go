// internals/helpers/media/media_store.go
package media

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	helper "library_backend/internals/helpers"
)

const (
	URLPrefix     = "/media"
	MaxUploadSize = int64(5 * 1024 * 1024)
)

/* =======================================================================
   Opsi WebP per folder
======================================================================= */

type WebPOptions struct {
	MaxW    int     // batas lebar (fit keep-aspect)
	MaxH    int     // batas tinggi
	Quality float32 // 0 → 85
}

var (
	ProfilePictureOptions = WebPOptions{MaxW: 400, MaxH: 400, Quality: 85}
	AuthorPhotoOptions    = WebPOptions{MaxW: 600, MaxH: 600, Quality: 85}
	BookCoverOptions      = WebPOptions{MaxW: 800, MaxH: 1200, Quality: 85}
)

// Store menyimpan file di disk lokal (MEDIA_ROOT), disajikan lewat /media.
type Store struct {
	Root string
	now  func() time.Time
}

func NewStore(root string) *Store {
	if strings.TrimSpace(root) == "" {
		root = "./media"
	}
	return &Store{Root: root, now: time.Now}
}

// SaveImage: decode (jpeg/png/webp) → fit → encode webp → tulis ke
// <root>/<folder>/<yyyy>/<mm>/<nama>-<uuid>.webp. Return URL publik.
func (s *Store) SaveImage(folder string, fh *multipart.FileHeader, opt WebPOptions) (string, error) {
	if fh == nil {
		return "", fmt.Errorf("file kosong")
	}
	if fh.Size > MaxUploadSize {
		return "", fmt.Errorf("ukuran file melebihi %d MB", MaxUploadSize/(1024*1024))
	}
	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("gagal membuka file: %w", err)
	}
	defer src.Close()

	all, err := io.ReadAll(io.LimitReader(src, MaxUploadSize+1))
	if err != nil {
		return "", fmt.Errorf("gagal membaca file: %w", err)
	}
	img, err := decodeImage(all, fh.Filename)
	if err != nil {
		return "", err
	}
	data, err := encodeToWebP(img, opt)
	if err != nil {
		return "", fmt.Errorf("encode webp: %w", err)
	}

	base := strings.TrimSuffix(filepath.Base(fh.Filename), filepath.Ext(fh.Filename))
	now := s.now()
	rel := path.Join(
		helper.Slugify(folder, 40),
		now.Format("2006"), now.Format("01"),
		fmt.Sprintf("%s-%s.webp", helper.Slugify(base, 60), uuid.NewString()[:8]),
	)

	dst := filepath.Join(s.Root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", fmt.Errorf("gagal membuat folder media: %w", err)
	}
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		return "", fmt.Errorf("gagal menulis file: %w", err)
	}
	return URLPrefix + "/" + rel, nil
}

// Delete menghapus file berdasarkan URL publik. Best-effort: error hanya di-log.
func (s *Store) Delete(publicURL string) {
	rel, ok := strings.CutPrefix(strings.TrimSpace(publicURL), URLPrefix+"/")
	if !ok || rel == "" || strings.Contains(rel, "..") {
		return
	}
	if err := os.Remove(filepath.Join(s.Root, filepath.FromSlash(rel))); err != nil && !os.IsNotExist(err) {
		log.Printf("[WARN] gagal hapus media %s: %v", rel, err)
	}
}

/* =======================================================================
   Decode gambar (jpeg/png/webp) dari []byte dengan sniff MIME
======================================================================= */

func decodeImage(all []byte, filename string) (image.Image, error) {
	if len(all) == 0 {
		return nil, fmt.Errorf("empty file")
	}
	head := all
	if len(head) > 512 {
		head = head[:512]
	}
	ct := http.DetectContentType(head)

	switch {
	case strings.Contains(ct, "jpeg"):
		return jpeg.Decode(bytes.NewReader(all))
	case strings.Contains(ct, "png"):
		return png.Decode(bytes.NewReader(all))
	case strings.Contains(ct, "webp"):
		return webp.Decode(bytes.NewReader(all))
	}

	// fallback by extension
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg":
		return jpeg.Decode(bytes.NewReader(all))
	case ".png":
		return png.Decode(bytes.NewReader(all))
	case ".webp":
		return webp.Decode(bytes.NewReader(all))
	}
	return nil, fmt.Errorf("format tidak didukung: %s", ct)
}

func encodeToWebP(img image.Image, opt WebPOptions) ([]byte, error) {
	if opt.MaxW > 0 && opt.MaxH > 0 {
		b := img.Bounds()
		if b.Dx() > opt.MaxW || b.Dy() > opt.MaxH {
			img = imaging.Fit(img, opt.MaxW, opt.MaxH, imaging.Lanczos)
		}
	}
	q := opt.Quality
	if q <= 0 {
		q = 85
	}
	buf := new(bytes.Buffer)
	if err := webp.Encode(buf, img, &webp.Options{Lossless: false, Quality: q}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
