package media

import (
	"fmt"
	"strings"
)

// MaxAttachmentSize is the inclusive per-file size cap (50 MiB)
const MaxAttachmentSize = 50 * 1024 * 1024

// Allowed MIME prefixes; application/pdf is the only exact match.
// The whitelist is intentionally strict: anything the contact flow cannot
// reasonably carry (executables, archives, octet-stream) is rejected.
var allowedPrefixes = []string{"audio/", "video/", "image/"}

const allowedExact = "application/pdf"

// CheckAttachment validates a candidate attachment against the MIME/size
// policy. A nil return means the file is accepted.
func CheckAttachment(mime string, size int64) error {
	if !allowedType(mime) {
		return fmt.Errorf("file type not allowed: %s", mime)
	}
	if size > MaxAttachmentSize {
		return fmt.Errorf("file exceeds the %d MiB limit", MaxAttachmentSize/(1024*1024))
	}
	return nil
}

func allowedType(mime string) bool {
	mime = strings.ToLower(strings.TrimSpace(mime))
	if mime == allowedExact {
		return true
	}
	for _, prefix := range allowedPrefixes {
		if strings.HasPrefix(mime, prefix) {
			return true
		}
	}
	return false
}

// IsImage reports whether the MIME type is an image (thumbnail candidates)
func IsImage(mime string) bool {
	return strings.HasPrefix(strings.ToLower(mime), "image/")
}
