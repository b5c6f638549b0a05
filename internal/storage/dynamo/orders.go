// Package dynamo persists order records in a DynamoDB table keyed by order_id
// with OrderedAt as the sort key.
package dynamo

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/Stefodan21/Order-fullfillment-Project/internal/domain/order"
)

// Client is the subset of the DynamoDB API the repository uses.
type Client interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
}

type Repository struct {
	client Client
	table  string
}

func NewRepository(client Client, table string) *Repository {
	return &Repository{client: client, table: table}
}

func (r *Repository) Put(ctx context.Context, rec order.Record) error {
	item, err := attributevalue.MarshalMap(rec)
	if err != nil {
		return fmt.Errorf("marshal order %s: %w", rec.OrderID, err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.table),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("put order %s: %w", rec.OrderID, err)
	}
	return nil
}

func (r *Repository) LatestByID(ctx context.Context, orderID string) (order.Record, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.table),
		KeyConditionExpression: aws.String("order_id = :id"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":id": &types.AttributeValueMemberS{Value: orderID},
		},
		// Newest first, one row: the read-after-write probe only cares about
		// the most recent record.
		ScanIndexForward: aws.Bool(false),
		Limit:            aws.Int32(1),
	})
	if err != nil {
		return order.Record{}, fmt.Errorf("query order %s: %w", orderID, err)
	}
	if len(out.Items) == 0 {
		return order.Record{}, order.ErrNotFound
	}

	var rec order.Record
	if err := attributevalue.UnmarshalMap(out.Items[0], &rec); err != nil {
		return order.Record{}, fmt.Errorf("unmarshal order %s: %w", orderID, err)
	}
	return rec, nil
}
