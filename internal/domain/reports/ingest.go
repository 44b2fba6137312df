package reports

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"
)

// ContentKind classifies the uploaded bytes for the inference call.
type ContentKind string

const (
	KindDocument ContentKind = "document"
	KindImage    ContentKind = "image"
)

// DetectKind classifies a file by its extension. A case-insensitive .pdf
// suffix is a document; everything else is treated as an image. The
// extension is authoritative here; byte-level sniffing happens later when
// choosing the MIME type.
func DetectKind(fileName string) ContentKind {
	if strings.HasSuffix(strings.ToLower(fileName), ".pdf") {
		return KindDocument
	}
	return KindImage
}

// EncodePayload wraps raw file bytes in a data-URL style transport form
// carrying the MIME kind as its prefix.
func EncodePayload(mime string, data []byte) string {
	return fmt.Sprintf("data:%s;base64,%s", mime, base64.StdEncoding.EncodeToString(data))
}

// DecodePayload recovers the raw bytes from a data-URL style payload. Only
// the portion after the first comma is the encoded payload; the prefix is
// discarded. A payload without a comma is taken as bare base64.
func DecodePayload(encoded string) ([]byte, error) {
	payload := encoded
	if i := strings.Index(encoded, ","); i != -1 {
		payload = encoded[i+1:]
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("decoding file payload: %w", err)
	}
	return data, nil
}

// DocumentMIME picks the MIME type tagged on the inference call. Documents
// are always application/pdf. For images the decoded bytes are sniffed so a
// PNG upload is not silently mis-tagged; anything the sniffer does not
// recognize as an image falls back to image/jpeg.
func DocumentMIME(kind ContentKind, data []byte) string {
	if kind == KindDocument {
		return "application/pdf"
	}
	if ct := http.DetectContentType(data); strings.HasPrefix(ct, "image/") {
		return ct
	}
	return "image/jpeg"
}
