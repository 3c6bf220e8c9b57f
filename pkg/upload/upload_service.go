package upload

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"receipt-insights-backend/domain"
	"receipt-insights-backend/internal/utils/storage"
)

const presignExpiry = 5 * time.Minute

type (
	UploadService interface {
		CreateUploadURL(ctx context.Context, req domain.UploadURLRequest) (domain.UploadURLResponse, error)
	}

	uploadService struct {
		s3  storage.AwsS3
		now func() time.Time
	}
)

func NewUploadService(s3 storage.AwsS3) UploadService {
	return &uploadService{
		s3:  s3,
		now: time.Now,
	}
}

func (s *uploadService) CreateUploadURL(ctx context.Context, req domain.UploadURLRequest) (domain.UploadURLResponse, error) {
	fileType := req.FileType
	if fileType == "" {
		fileType = domain.DefaultUploadContentType
	}

	filename := buildObjectKey(s.now(), fileType)

	uploadURL, err := s.s3.PresignPutObject(ctx, filename, fileType, presignExpiry)
	if err != nil {
		return domain.UploadURLResponse{}, fmt.Errorf("%w: %v", domain.ErrPresignFailed, err)
	}

	return domain.UploadURLResponse{
		UploadURL: uploadURL,
		Filename:  filename,
	}, nil
}

// buildObjectKey produces receipts/<timestamp>-<8 hex>.<ext>. The timestamp
// plus random suffix makes collisions vanishingly unlikely.
func buildObjectKey(now time.Time, fileType string) string {
	timestamp := now.Format("20060102-150405")
	uniqueID := uuid.New().String()[:8]

	ext := fileType
	if idx := strings.LastIndex(fileType, "/"); idx >= 0 {
		ext = fileType[idx+1:]
	}
	if ext == "jpeg" {
		ext = "jpg"
	}

	return fmt.Sprintf("receipts/%s-%s.%s", timestamp, uniqueID, ext)
}
