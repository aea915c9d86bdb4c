package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/dmitrijs2005/fintrack/internal/common"
	"github.com/dmitrijs2005/fintrack/internal/server/models"
)

// DynamoAPI is the subset of *dynamodb.Client used by DynamoRepository.
type DynamoAPI interface {
	PutItem(ctx context.Context, in *dynamodb.PutItemInput, opts ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	GetItem(ctx context.Context, in *dynamodb.GetItemInput, opts ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	UpdateItem(ctx context.Context, in *dynamodb.UpdateItemInput, opts ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
}

// dynamoUser is the item layout of the users table (hash key: email).
type dynamoUser struct {
	Email        string  `dynamodbav:"email"`
	UserID       string  `dynamodbav:"userId"`
	PasswordHash string  `dynamodbav:"passwordHash"`
	Name         string  `dynamodbav:"name"`
	Income       float64 `dynamodbav:"income"`
	SavingsGoal  float64 `dynamodbav:"savingsGoal"`
	CreatedAt    string  `dynamodbav:"createdAt"`
	UpdatedAt    string  `dynamodbav:"updatedAt,omitempty"`
}

func (d dynamoUser) model() *models.User {
	u := &models.User{
		ID: d.UserID, Email: d.Email, PasswordHash: d.PasswordHash, Name: d.Name,
		Income: d.Income, SavingsGoal: d.SavingsGoal,
	}
	u.CreatedAt, _ = time.Parse(time.RFC3339Nano, d.CreatedAt)
	if d.UpdatedAt != "" {
		u.UpdatedAt, _ = time.Parse(time.RFC3339Nano, d.UpdatedAt)
	}
	return u
}

// DynamoRepository stores identities in a DynamoDB table keyed by email.
type DynamoRepository struct {
	client DynamoAPI
	table  string
}

func NewDynamoRepository(client DynamoAPI, table string) *DynamoRepository {
	return &DynamoRepository{client: client, table: table}
}

func emailKey(email string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{"email": &types.AttributeValueMemberS{Value: email}}
}

func (r *DynamoRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	item, err := attributevalue.MarshalMap(dynamoUser{
		Email:        user.Email,
		UserID:       user.ID,
		PasswordHash: user.PasswordHash,
		Name:         user.Name,
		Income:       user.Income,
		SavingsGoal:  user.SavingsGoal,
		CreatedAt:    user.CreatedAt.UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return nil, fmt.Errorf("marshal user: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.table),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(email)"),
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return nil, common.ErrDuplicateIdentity
		}
		return nil, fmt.Errorf("dynamodb error: %w", err)
	}

	out := *user
	return &out, nil
}

func (r *DynamoRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.table),
		Key:            emailKey(email),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("dynamodb error: %w", err)
	}
	if len(out.Item) == 0 {
		return nil, common.ErrNotFound
	}

	var doc dynamoUser
	if err := attributevalue.UnmarshalMap(out.Item, &doc); err != nil {
		return nil, fmt.Errorf("decode user: %w", err)
	}
	return doc.model(), nil
}

// UpdateProfile issues a single conditional UpdateItem touching only the
// fields present in upd.
func (r *DynamoRepository) UpdateProfile(ctx context.Context, email string, upd models.ProfileUpdate, now time.Time) (*models.User, error) {
	sets := []string{"updatedAt = :updatedAt"}
	values := map[string]types.AttributeValue{
		":updatedAt": &types.AttributeValueMemberS{Value: now.UTC().Format(time.RFC3339Nano)},
	}
	var names map[string]string

	if upd.Name != nil {
		sets = append(sets, "#name = :name")
		values[":name"] = &types.AttributeValueMemberS{Value: *upd.Name}
		names = map[string]string{"#name": "name"}
	}
	if upd.Income != nil {
		sets = append(sets, "income = :income")
		values[":income"] = numberValue(*upd.Income)
	}
	if upd.SavingsGoal != nil {
		sets = append(sets, "savingsGoal = :savingsGoal")
		values[":savingsGoal"] = numberValue(*upd.SavingsGoal)
	}

	out, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.table),
		Key:                       emailKey(email),
		UpdateExpression:          aws.String("SET " + strings.Join(sets, ", ")),
		ConditionExpression:       aws.String("attribute_exists(email)"),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("dynamodb error: %w", err)
	}

	var doc dynamoUser
	if err := attributevalue.UnmarshalMap(out.Attributes, &doc); err != nil {
		return nil, fmt.Errorf("decode user: %w", err)
	}
	return doc.model(), nil
}

func numberValue(f float64) types.AttributeValue {
	av, _ := attributevalue.Marshal(f)
	return av
}
