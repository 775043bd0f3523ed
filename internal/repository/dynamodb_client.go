package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"portfolio-contact/internal/domain"
)

// All contact messages share one partition; the sort key is the UUIDv7 id.
const contactPK = "CONTACT"

// dynamodbAPI is the minimal DynamoDB interface required by DynamoStore.
// Defined here for testability.
type dynamodbAPI interface {
	PutItem(ctx context.Context, in *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Query(ctx context.Context, in *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	DeleteItem(ctx context.Context, in *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
}

// DynamoStore keeps contact messages in a DynamoDB table.
type DynamoStore struct {
	api       dynamodbAPI
	tableName string
	now       func() time.Time
	newID     func() (string, error)
}

// NewDynamoStore creates a DynamoDB backed Store.
func NewDynamoStore(api dynamodbAPI, tableName string) (*DynamoStore, error) {
	if api == nil {
		return nil, errors.New("repository: api must not be nil")
	}
	if strings.TrimSpace(tableName) == "" {
		return nil, errors.New("repository: table name must not be empty")
	}
	return &DynamoStore{api: api, tableName: tableName, now: utcNow, newID: newMessageID}, nil
}

// Insert writes a new message with a fresh id and send time.
func (c *DynamoStore) Insert(ctx context.Context, name, email, message string) (domain.Message, error) {
	id, err := c.newID()
	if err != nil {
		return domain.Message{}, fmt.Errorf("repository: Insert id: %w", err)
	}
	msg := domain.Message{
		ID:      id,
		Name:    name,
		Email:   email,
		Message: message,
		SentAt:  c.now(),
	}

	_, err = c.api.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(c.tableName),
		Item:                messageItem(msg),
		ConditionExpression: aws.String("attribute_not_exists(PK) AND attribute_not_exists(SK)"),
	})
	if err != nil {
		return domain.Message{}, fmt.Errorf("repository: Insert: %w", err)
	}
	return msg, nil
}

// ListAll queries the contact partition newest first, following pagination.
func (c *DynamoStore) ListAll(ctx context.Context) ([]domain.Message, error) {
	msgs := make([]domain.Message, 0)
	var startKey map[string]types.AttributeValue
	for {
		out, err := c.api.Query(ctx, &dynamodb.QueryInput{
			TableName:              aws.String(c.tableName),
			KeyConditionExpression: aws.String("PK = :pk"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":pk": &types.AttributeValueMemberS{Value: contactPK},
			},
			ScanIndexForward:  aws.Bool(false),
			ConsistentRead:    aws.Bool(true),
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, fmt.Errorf("repository: ListAll query: %w", err)
		}
		if out == nil {
			break
		}
		for _, item := range out.Items {
			msg, err := itemToMessage(item)
			if err != nil {
				return nil, fmt.Errorf("repository: ListAll unmarshal: %w", err)
			}
			msgs = append(msgs, msg)
		}
		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		startKey = out.LastEvaluatedKey
	}
	sortNewestFirst(msgs)
	return msgs, nil
}

// DeleteByID removes the message and reports whether it existed.
func (c *DynamoStore) DeleteByID(ctx context.Context, id string) (bool, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return false, ErrInvalidID
	}
	out, err := c.api.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:    aws.String(c.tableName),
		Key:          messageKey(id),
		ReturnValues: types.ReturnValueAllOld,
	})
	if err != nil {
		return false, fmt.Errorf("repository: DeleteByID: %w", err)
	}
	return out != nil && len(out.Attributes) > 0, nil
}

// Close is a no-op; the SDK client holds no per-store resources.
func (c *DynamoStore) Close(context.Context) error {
	return nil
}

func messageKey(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"PK": &types.AttributeValueMemberS{Value: contactPK},
		"SK": &types.AttributeValueMemberS{Value: id},
	}
}

func messageItem(msg domain.Message) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"PK":      &types.AttributeValueMemberS{Value: contactPK},
		"SK":      &types.AttributeValueMemberS{Value: msg.ID},
		"name":    &types.AttributeValueMemberS{Value: msg.Name},
		"email":   &types.AttributeValueMemberS{Value: msg.Email},
		"message": &types.AttributeValueMemberS{Value: msg.Message},
		"date":    &types.AttributeValueMemberS{Value: msg.SentAt.UTC().Format(time.RFC3339Nano)},
	}
}

// itemToMessage converts a DynamoDB attribute map to a Message.
func itemToMessage(item map[string]types.AttributeValue) (domain.Message, error) {
	id, err := strAttr(item, "SK")
	if err != nil {
		return domain.Message{}, err
	}
	name, err := strAttr(item, "name")
	if err != nil {
		return domain.Message{}, err
	}
	message, err := strAttr(item, "message")
	if err != nil {
		return domain.Message{}, err
	}
	email, _ := strAttr(item, "email") // allow empty
	rawDate, err := strAttr(item, "date")
	if err != nil {
		return domain.Message{}, err
	}
	sentAt, err := time.Parse(time.RFC3339Nano, rawDate)
	if err != nil {
		return domain.Message{}, fmt.Errorf("repository: parse attribute %q: %w", "date", err)
	}

	return domain.Message{
		ID:      id,
		Name:    name,
		Email:   email,
		Message: message,
		SentAt:  sentAt,
	}, nil
}

func strAttr(item map[string]types.AttributeValue, key string) (string, error) {
	v, ok := item[key]
	if !ok {
		return "", fmt.Errorf("repository: missing attribute %q", key)
	}
	s, ok := v.(*types.AttributeValueMemberS)
	if !ok {
		return "", fmt.Errorf("repository: attribute %q is not a string", key)
	}
	return s.Value, nil
}
