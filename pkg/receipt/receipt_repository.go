package receipt

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"receipt-insights-backend/entities"
)

type (
	// ReceiptRepository persists receipts by id and reads them back within a
	// trailing window. Implementations exist for DynamoDB and Postgres.
	ReceiptRepository interface {
		Save(ctx context.Context, receipt *entities.Receipt) error
		History(ctx context.Context, days int) ([]entities.Receipt, error)
	}

	// DynamoAPI is the slice of the DynamoDB client the repository uses.
	DynamoAPI interface {
		PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
		Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
	}

	receiptDynamoRepository struct {
		db    DynamoAPI
		table string
	}
)

func NewReceiptDynamoRepository(db DynamoAPI, table string) ReceiptRepository {
	return &receiptDynamoRepository{db: db, table: table}
}

func (r *receiptDynamoRepository) Save(ctx context.Context, receipt *entities.Receipt) error {
	item, err := attributevalue.MarshalMap(receipt)
	if err != nil {
		return err
	}

	_, err = r.db.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.table),
		Item:      item,
	})
	return err
}

func (r *receiptDynamoRepository) History(ctx context.Context, days int) ([]entities.Receipt, error) {
	cutoff, err := attributevalue.Marshal(time.Now().AddDate(0, 0, -days))
	if err != nil {
		return nil, err
	}

	var receipts []entities.Receipt
	var startKey map[string]types.AttributeValue

	for {
		out, err := r.db.Scan(ctx, &dynamodb.ScanInput{
			TableName:        aws.String(r.table),
			FilterExpression: aws.String("stored_at > :cutoff"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":cutoff": cutoff,
			},
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, err
		}

		var page []entities.Receipt
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, err
		}
		receipts = append(receipts, page...)

		if out.LastEvaluatedKey == nil {
			break
		}
		startKey = out.LastEvaluatedKey
	}

	return receipts, nil
}
