package media

import "errors"

var (
	ErrNotFound         = errors.New("not_found")
	ErrInvalidID        = errors.New("invalid_id")
	ErrFileTooLarge     = errors.New("file_too_large")
	ErrEmptyFile        = errors.New("empty_file")
	ErrUnsupportedType  = errors.New("unsupported_type")
	ErrUploadsDisabled  = errors.New("uploads_disabled")
	ErrInvalidMediaMeta = errors.New("invalid_media_meta")
)
