package attachment

import (
	"time"

	"github.com/google/uuid"
)

// Attachment maps to the attachments table. The binary content itself lives in
// the blob store; BlobID points at it.
type Attachment struct {
	ID           uuid.UUID `db:"id" json:"id"`
	AssessmentID uuid.UUID `db:"assessment_id" json:"assessment_id"`
	Category     string    `db:"category" json:"category"`
	FileName     string    `db:"file_name" json:"file_name"`
	ContentType  string    `db:"content_type" json:"content_type"`
	Size         int64     `db:"size" json:"size"`
	BlobID       string    `db:"blob_id" json:"blob_id"`
	Hash         *string   `db:"hash" json:"hash,omitempty"`
	UploadedBy   *string   `db:"uploaded_by" json:"uploaded_by,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
