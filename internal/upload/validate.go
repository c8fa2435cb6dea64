package upload

import "errors"

// Upload validation limits.
const MaxFileSizeBytes = 10 * 1024 * 1024 // 10 MB

// AllowedFileTypes is the set of accepted MIME types.
var AllowedFileTypes = []string{"image/jpeg", "image/png"}

var (
	ErrInvalidType  = errors.New("invalid file type, please upload a JPG or PNG image")
	ErrFileTooLarge = errors.New("file too large, maximum size is 10MB")
)

// FileMeta describes a candidate upload.
type FileMeta struct {
	Name     string
	MIMEType string
	Size     int64
}

// Validate checks the candidate against the allowed MIME types and the
// maximum byte size. Pure and deterministic; nil means the file may be
// uploaded.
func Validate(meta FileMeta) error {
	allowed := false
	for _, t := range AllowedFileTypes {
		if meta.MIMEType == t {
			allowed = true
			break
		}
	}
	if !allowed {
		return ErrInvalidType
	}

	if meta.Size > MaxFileSizeBytes {
		return ErrFileTooLarge
	}

	return nil
}
