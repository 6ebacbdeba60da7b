package domain

import (
	"time"

	"github.com/google/uuid"
)

// DefaultMaxAttachmentSize is the upload cap applied when the configuration
// does not override it.
const DefaultMaxAttachmentSize = 200 * 1024 * 1024 // 200 MiB

// Attachment is a binary file stored against an agenda item. FileType is the
// caller-declared MIME type; the store does not validate it against an
// allow-list (deliberate current behaviour).
type Attachment struct {
	ID        uuid.UUID
	ItemID    uuid.UUID
	Filename  string
	FileType  string
	FileData  []byte
	CreatedAt time.Time
}

// AttachmentInfo is attachment metadata without the payload, for listings.
type AttachmentInfo struct {
	ID        uuid.UUID
	ItemID    uuid.UUID
	Filename  string
	FileType  string
	FileSize  int64
	CreatedAt time.Time
}
