package entities

import (
	"time"
)

// LineItem is one named purchased item on a receipt. Price and quantity are
// kept as the raw strings the document analysis returned.
type LineItem struct {
	Name     string `json:"name" dynamodbav:"name"`
	Price    string `json:"price" dynamodbav:"price"`
	Quantity string `json:"quantity" dynamodbav:"quantity"`
}

type Receipt struct {
	ID         string     `gorm:"primaryKey" json:"receipt_id" dynamodbav:"receiptId"`
	Date       string     `json:"date" dynamodbav:"date"`
	Vendor     string     `json:"vendor" dynamodbav:"vendor"`
	Total      string     `json:"total" dynamodbav:"total"`
	Items      []LineItem `gorm:"serializer:json;type:jsonb" json:"items" dynamodbav:"items"`
	SourcePath string     `json:"s3_path" dynamodbav:"s3_path"`
	StoredAt   time.Time  `gorm:"index" json:"stored_at" dynamodbav:"stored_at"`

	Timestamp `dynamodbav:"-"`
}
