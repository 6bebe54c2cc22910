package dynamodb

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Item は DynamoDB 上の 1 キー分の項目です。
type Item struct {
	Key       string `dynamodbav:"key"`
	Value     string `dynamodbav:"value"`
	UpdatedAt string `dynamodbav:"updatedAt"`
}

// API は Storage が利用する DynamoDB クライアントの操作です。
type API interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
}

// Storage は DynamoDB テーブルを利用したキーバリューストアです。
type Storage struct {
	client    API
	tableName string
	now       func() time.Time
}

// NewStorage は Storage を生成します。
func NewStorage(client API, tableName string) *Storage {
	return &Storage{
		client:    client,
		tableName: tableName,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// NewStorageFromConfig は aws.Config から DynamoDB クライアントを作成して Storage を返します。
func NewStorageFromConfig(cfg aws.Config, tableName string) *Storage {
	return NewStorage(dynamodb.NewFromConfig(cfg), tableName)
}

// Get は key の値を強い整合性で読み込みます。
func (s *Storage) Get(ctx context.Context, key string) (string, bool, error) {
	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(s.tableName),
		Key:            map[string]types.AttributeValue{"key": &types.AttributeValueMemberS{Value: key}},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return "", false, fmt.Errorf("dynamodb storage: get %s: %w", key, err)
	}
	if len(out.Item) == 0 {
		return "", false, nil
	}

	var item Item
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return "", false, fmt.Errorf("dynamodb storage: unmarshal %s: %w", key, err)
	}
	return item.Value, true, nil
}

// Set は key の項目を上書きします。
func (s *Storage) Set(ctx context.Context, key, value string) error {
	av, err := attributevalue.MarshalMap(Item{
		Key:       key,
		Value:     value,
		UpdatedAt: s.now().Format(time.RFC3339),
	})
	if err != nil {
		return fmt.Errorf("dynamodb storage: marshal %s: %w", key, err)
	}

	if _, err := s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.tableName),
		Item:      av,
	}); err != nil {
		return fmt.Errorf("dynamodb storage: put %s: %w", key, err)
	}
	return nil
}
