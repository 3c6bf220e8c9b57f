package domain

import (
	"errors"
)

var (
	MessageSuccessCreateUploadURL = "upload url created successfully"
	MessageFailedCreateUploadURL  = "failed to create upload url"

	ErrPresignFailed = errors.New("failed to presign upload url")
)

const DefaultUploadContentType = "image/jpeg"

type (
	UploadURLRequest struct {
		FileType string `json:"fileType" validate:"omitempty"`
	}

	// UploadURLResponse is the exact wire contract the uploader frontend
	// consumes, so it bypasses the usual response envelope.
	UploadURLResponse struct {
		UploadURL string `json:"uploadUrl"`
		Filename  string `json:"filename"`
	}
)
