package storage

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
)

const (
	MIMEOctetStream = "application/octet-stream"
	sniffLen        = 512
)

var extensions = map[string]string{
	"image/jpeg":       ".jpg",
	"image/png":        ".png",
	"image/gif":        ".gif",
	"image/webp":       ".webp",
	"image/bmp":        ".bmp",
	"image/x-icon":     ".ico",
	"application/pdf":  ".pdf",
	"application/zip":  ".zip",
	"application/gzip": ".gz",
	"text/plain":       ".txt",
	"text/csv":         ".csv",
	"audio/mpeg":       ".mp3",
	"audio/wave":       ".wav",
	"video/mp4":        ".mp4",
	"video/webm":       ".webm",
}

// DetectMIME sniffs the first bytes of an uploaded file. Client-supplied
// Content-Type headers are ignored.
func DetectMIME(fh *multipart.FileHeader) string {
	if fh == nil {
		return MIMEOctetStream
	}
	f, err := fh.Open()
	if err != nil {
		return MIMEOctetStream
	}
	defer f.Close()

	buf := make([]byte, sniffLen)
	n, _ := io.ReadFull(f, buf)
	if n == 0 {
		return MIMEOctetStream
	}
	return http.DetectContentType(buf[:n])
}

// IsImage reports whether the upload's magic bytes identify an image.
func IsImage(fh *multipart.FileHeader) bool {
	return strings.HasPrefix(baseMIME(DetectMIME(fh)), "image/")
}

// ExtFromMIME returns the preferred extension with its dot, or "".
func ExtFromMIME(mimeType string) string {
	return extensions[baseMIME(mimeType)]
}

// sniff detects the content type of r and returns a reader that replays
// the consumed bytes; seekable readers are rewound instead.
func sniff(r io.Reader) (string, io.Reader) {
	buf := make([]byte, sniffLen)
	n, _ := io.ReadFull(r, buf)
	ct := MIMEOctetStream
	if n > 0 {
		ct = http.DetectContentType(buf[:n])
	}

	if rs, ok := r.(io.Seeker); ok {
		if _, err := rs.Seek(0, io.SeekStart); err == nil {
			return ct, r
		}
	}
	return ct, io.MultiReader(bytes.NewReader(buf[:n]), r)
}

func baseMIME(m string) string {
	m, _, _ = strings.Cut(m, ";")
	return strings.ToLower(strings.TrimSpace(m))
}

func matchesMIME(m string, patterns []string) bool {
	m = baseMIME(m)
	for _, p := range patterns {
		p = strings.ToLower(strings.TrimSpace(p))
		if p == m {
			return true
		}
		if prefix, ok := strings.CutSuffix(p, "*"); ok && strings.HasSuffix(prefix, "/") && strings.HasPrefix(m, prefix) {
			return true
		}
	}
	return false
}
