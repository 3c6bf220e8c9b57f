package receipt

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"receipt-insights-backend/entities"
)

type fakeDynamo struct {
	putInput  *dynamodb.PutItemInput
	putErr    error
	scanPages []*dynamodb.ScanOutput
	scanCalls int
	scanErr   error
}

func (f *fakeDynamo) PutItem(_ context.Context, params *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.putInput = params
	return &dynamodb.PutItemOutput{}, f.putErr
}

func (f *fakeDynamo) Scan(_ context.Context, params *dynamodb.ScanInput, _ ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	if f.scanErr != nil {
		return nil, f.scanErr
	}
	out := f.scanPages[f.scanCalls]
	f.scanCalls++
	return out, nil
}

func marshalReceipt(t *testing.T, receipt entities.Receipt) map[string]types.AttributeValue {
	t.Helper()
	item, err := attributevalue.MarshalMap(&receipt)
	require.NoError(t, err)
	return item
}

func TestDynamoSaveMarshalsReceipt(t *testing.T) {
	db := &fakeDynamo{}
	repo := NewReceiptDynamoRepository(db, "receipts")

	receipt := &entities.Receipt{
		ID:       "r-1",
		Vendor:   "Acme Mart",
		Total:    "12.50",
		Items:    []entities.LineItem{{Name: "Milk", Price: "3.00", Quantity: "1"}},
		StoredAt: time.Now(),
	}

	require.NoError(t, repo.Save(context.Background(), receipt))
	require.NotNil(t, db.putInput)
	assert.Equal(t, "receipts", aws.ToString(db.putInput.TableName))

	id, ok := db.putInput.Item["receiptId"].(*types.AttributeValueMemberS)
	require.True(t, ok)
	assert.Equal(t, "r-1", id.Value)
	assert.Contains(t, db.putInput.Item, "stored_at")
}

func TestDynamoSaveError(t *testing.T) {
	db := &fakeDynamo{putErr: errors.New("denied")}
	repo := NewReceiptDynamoRepository(db, "receipts")

	err := repo.Save(context.Background(), &entities.Receipt{ID: "r-1"})
	assert.Error(t, err)
}

func TestDynamoHistoryPaginates(t *testing.T) {
	first := marshalReceipt(t, entities.Receipt{ID: "a", Vendor: "Acme Mart"})
	second := marshalReceipt(t, entities.Receipt{ID: "b", Vendor: "Best Foods"})

	db := &fakeDynamo{scanPages: []*dynamodb.ScanOutput{
		{
			Items:            []map[string]types.AttributeValue{first},
			LastEvaluatedKey: map[string]types.AttributeValue{"receiptId": &types.AttributeValueMemberS{Value: "a"}},
		},
		{
			Items: []map[string]types.AttributeValue{second},
		},
	}}
	repo := NewReceiptDynamoRepository(db, "receipts")

	receipts, err := repo.History(context.Background(), 30)
	require.NoError(t, err)

	assert.Equal(t, 2, db.scanCalls)
	require.Len(t, receipts, 2)
	assert.Equal(t, "a", receipts[0].ID)
	assert.Equal(t, "b", receipts[1].ID)
}

func TestDynamoHistoryScanError(t *testing.T) {
	db := &fakeDynamo{scanErr: errors.New("throttled")}
	repo := NewReceiptDynamoRepository(db, "receipts")

	_, err := repo.History(context.Background(), 30)
	assert.Error(t, err)
}
