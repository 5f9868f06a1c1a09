package lifecycle

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/Domenick1991/frontdesk/internal/domain"
	"github.com/gabriel-vasile/mimetype"
)

// DefaultMaxDocumentBytes caps identification uploads when no limit is configured.
const DefaultMaxDocumentBytes = 5 << 20

// EncodeDocument checks an uploaded identification file and turns it into a
// data URL. Only images and PDFs are accepted, judged by content.
func EncodeDocument(name string, data []byte, maxBytes int64) (domain.IdentificationDocument, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxDocumentBytes
	}
	if len(data) == 0 {
		return domain.IdentificationDocument{}, domain.NewValidationError("idDocument", "the file is empty")
	}
	if int64(len(data)) > maxBytes {
		return domain.IdentificationDocument{}, domain.NewValidationError("idDocument", fmt.Sprintf("the file exceeds %d bytes", maxBytes))
	}

	mt := mimetype.Detect(data)
	if !strings.HasPrefix(mt.String(), "image/") && !mt.Is("application/pdf") {
		return domain.IdentificationDocument{}, domain.NewValidationError("idDocument", fmt.Sprintf("%s files are not accepted", mt.String()))
	}

	if name = strings.TrimSpace(name); name == "" {
		name = "document" + mt.Extension()
	}
	return domain.IdentificationDocument{
		Name: name,
		URL:  "data:" + mt.String() + ";base64," + base64.StdEncoding.EncodeToString(data),
	}, nil
}
