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
	"github.com/folio/backend/internal/model"
)

const dynamoContactPK = "CONTACT"

// dynamodbAPI is the minimal DynamoDB interface required by DynamoContactRepository.
// Defined here for testability.
type dynamodbAPI interface {
	PutItem(ctx context.Context, in *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Query(ctx context.Context, in *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	DescribeTable(ctx context.Context, in *dynamodb.DescribeTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error)
}

// DynamoContactRepository stores submissions in a single DynamoDB partition.
// The sort key "{created_at_nanos:019}#{uuidv7}" orders records by creation
// time, and the time-ordered id breaks ties in insertion order.
type DynamoContactRepository struct {
	api       dynamodbAPI
	tableName string
	stamp     *stamper
}

var _ ContactRepository = (*DynamoContactRepository)(nil)

// NewDynamoContactRepository creates a repository over the given table.
func NewDynamoContactRepository(api dynamodbAPI, tableName string) (*DynamoContactRepository, error) {
	if api == nil {
		return nil, errors.New("repository: api must not be nil")
	}
	if strings.TrimSpace(tableName) == "" {
		return nil, errors.New("repository: table name must not be empty")
	}
	return &DynamoContactRepository{api: api, tableName: tableName, stamp: newStamper(time.Now)}, nil
}

func dynamoSK(createdAt time.Time, id string) string {
	return fmt.Sprintf("%019d#%s", createdAt.UnixNano(), id)
}

// Create writes the record with a conditional put so an existing key is never
// overwritten.
func (r *DynamoContactRepository) Create(ctx context.Context, sub *model.ContactSubmission) error {
	if err := checkSchema(sub); err != nil {
		return err
	}
	id, createdAt, err := r.stamp.next()
	if err != nil {
		return fmt.Errorf("repository: Create: allocate id: %w", err)
	}

	_, err = r.api.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item: map[string]types.AttributeValue{
			"PK":         &types.AttributeValueMemberS{Value: dynamoContactPK},
			"SK":         &types.AttributeValueMemberS{Value: dynamoSK(createdAt, id)},
			"id":         &types.AttributeValueMemberS{Value: id},
			"name":       &types.AttributeValueMemberS{Value: sub.Name},
			"email":      &types.AttributeValueMemberS{Value: sub.Email},
			"message":    &types.AttributeValueMemberS{Value: sub.Message},
			"created_at": &types.AttributeValueMemberS{Value: createdAt.Format(time.RFC3339Nano)},
		},
		ConditionExpression: aws.String("attribute_not_exists(PK) AND attribute_not_exists(SK)"),
	})
	if err != nil {
		return fmt.Errorf("repository: Create: %w", err)
	}

	sub.ID = id
	sub.CreatedAt = createdAt
	return nil
}

// ListRecent queries the contact partition newest first.
func (r *DynamoContactRepository) ListRecent(ctx context.Context, limit int) ([]*model.ContactSubmission, error) {
	out, err := r.api.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		KeyConditionExpression: aws.String("PK = :pk"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk": &types.AttributeValueMemberS{Value: dynamoContactPK},
		},
		ScanIndexForward: aws.Bool(false),
		Limit:            aws.Int32(int32(limit)),
	})
	if err != nil {
		return nil, fmt.Errorf("repository: ListRecent query: %w", err)
	}

	subs := make([]*model.ContactSubmission, 0, len(out.Items))
	for _, item := range out.Items {
		sub, err := itemToSubmission(item)
		if err != nil {
			return nil, fmt.Errorf("repository: ListRecent unmarshal: %w", err)
		}
		subs = append(subs, sub)
		if len(subs) == limit {
			break
		}
	}
	return subs, nil
}

// Ping checks the table is reachable.
func (r *DynamoContactRepository) Ping(ctx context.Context) error {
	_, err := r.api.DescribeTable(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(r.tableName)})
	if err != nil {
		return fmt.Errorf("repository: describe table: %w", err)
	}
	return nil
}

// Close is a no-op; the SDK client holds no resources that need releasing.
func (r *DynamoContactRepository) Close() {}

func itemToSubmission(item map[string]types.AttributeValue) (*model.ContactSubmission, error) {
	id, err := stringAttr(item, "id")
	if err != nil {
		return nil, err
	}
	name, err := stringAttr(item, "name")
	if err != nil {
		return nil, err
	}
	email, err := stringAttr(item, "email")
	if err != nil {
		return nil, err
	}
	message, err := stringAttr(item, "message")
	if err != nil {
		return nil, err
	}
	rawCreated, err := stringAttr(item, "created_at")
	if err != nil {
		return nil, err
	}
	createdAt, err := time.Parse(time.RFC3339Nano, rawCreated)
	if err != nil {
		return nil, fmt.Errorf("repository: parse created_at: %w", err)
	}
	return &model.ContactSubmission{
		ID:        id,
		Name:      name,
		Email:     email,
		Message:   message,
		CreatedAt: createdAt.UTC(),
	}, nil
}

func stringAttr(item map[string]types.AttributeValue, key string) (string, error) {
	av, ok := item[key]
	if !ok {
		return "", fmt.Errorf("repository: missing attribute %q", key)
	}
	s, ok := av.(*types.AttributeValueMemberS)
	if !ok {
		return "", fmt.Errorf("repository: attribute %q is not a string", key)
	}
	return s.Value, nil
}
