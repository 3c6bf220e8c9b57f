package receipt

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"receipt-insights-backend/entities"
)

type receiptPostgresRepository struct {
	db *gorm.DB
}

// NewReceiptPostgresRepository is the STORE_BACKEND=postgres alternative to
// the DynamoDB store, behind the same interface.
func NewReceiptPostgresRepository(db *gorm.DB) ReceiptRepository {
	return &receiptPostgresRepository{db: db}
}

func (r *receiptPostgresRepository) Save(ctx context.Context, receipt *entities.Receipt) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(receipt).Error
}

func (r *receiptPostgresRepository) History(ctx context.Context, days int) ([]entities.Receipt, error) {
	var receipts []entities.Receipt
	cutoff := time.Now().AddDate(0, 0, -days)

	if err := r.db.WithContext(ctx).
		Where("stored_at > ?", cutoff).
		Find(&receipts).Error; err != nil {
		return nil, err
	}

	return receipts, nil
}
