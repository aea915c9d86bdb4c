package expenses

import (
	"context"
	"errors"
	"fmt"
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
	Query(ctx context.Context, in *dynamodb.QueryInput, opts ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	UpdateItem(ctx context.Context, in *dynamodb.UpdateItemInput, opts ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	DeleteItem(ctx context.Context, in *dynamodb.DeleteItemInput, opts ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
}

// dynamoExpense is the item layout of the expenses table
// (hash key: userId, range key: expenseId).
type dynamoExpense struct {
	UserID      string  `dynamodbav:"userId"`
	ExpenseID   string  `dynamodbav:"expenseId"`
	Description string  `dynamodbav:"description"`
	Amount      float64 `dynamodbav:"amount"`
	Category    string  `dynamodbav:"category"`
	Date        string  `dynamodbav:"date"`
	CreatedAt   string  `dynamodbav:"createdAt"`
	UpdatedAt   string  `dynamodbav:"updatedAt,omitempty"`
}

func (d dynamoExpense) model() *models.Expense {
	e := &models.Expense{
		ID: d.ExpenseID, UserID: d.UserID, Description: d.Description,
		Amount: d.Amount, Category: d.Category, Date: d.Date,
	}
	e.CreatedAt, _ = time.Parse(time.RFC3339Nano, d.CreatedAt)
	if d.UpdatedAt != "" {
		e.UpdatedAt, _ = time.Parse(time.RFC3339Nano, d.UpdatedAt)
	}
	return e
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// DynamoRepository stores expenses in a DynamoDB table partitioned by owner.
type DynamoRepository struct {
	client DynamoAPI
	table  string
}

func NewDynamoRepository(client DynamoAPI, table string) *DynamoRepository {
	return &DynamoRepository{client: client, table: table}
}

func itemKey(userID, id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"userId":    &types.AttributeValueMemberS{Value: userID},
		"expenseId": &types.AttributeValueMemberS{Value: id},
	}
}

func (r *DynamoRepository) Create(ctx context.Context, e *models.Expense) (*models.Expense, error) {
	item, err := attributevalue.MarshalMap(dynamoExpense{
		UserID:      e.UserID,
		ExpenseID:   e.ID,
		Description: e.Description,
		Amount:      e.Amount,
		Category:    e.Category,
		Date:        e.Date,
		CreatedAt:   formatTime(e.CreatedAt),
	})
	if err != nil {
		return nil, fmt.Errorf("marshal expense: %w", err)
	}

	if _, err := r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.table),
		Item:      item,
	}); err != nil {
		return nil, fmt.Errorf("dynamodb error: %w", err)
	}

	out := *e
	return &out, nil
}

func (r *DynamoRepository) ListByUser(ctx context.Context, userID string) ([]*models.Expense, error) {
	result := make([]*models.Expense, 0)
	var startKey map[string]types.AttributeValue

	for {
		out, err := r.client.Query(ctx, &dynamodb.QueryInput{
			TableName:              aws.String(r.table),
			KeyConditionExpression: aws.String("userId = :userId"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":userId": &types.AttributeValueMemberS{Value: userID},
			},
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, fmt.Errorf("dynamodb error: %w", err)
		}

		var page []dynamoExpense
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, fmt.Errorf("decode expenses: %w", err)
		}
		for _, d := range page {
			result = append(result, d.model())
		}

		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		startKey = out.LastEvaluatedKey
	}

	models.SortExpenses(result)
	return result, nil
}

func (r *DynamoRepository) Update(ctx context.Context, e *models.Expense) (*models.Expense, error) {
	amount, err := attributevalue.Marshal(e.Amount)
	if err != nil {
		return nil, fmt.Errorf("marshal amount: %w", err)
	}

	out, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.table),
		Key:       itemKey(e.UserID, e.ID),
		UpdateExpression: aws.String(
			"SET description = :description, amount = :amount, category = :category, #date = :date, updatedAt = :updatedAt"),
		ConditionExpression:      aws.String("attribute_exists(expenseId)"),
		ExpressionAttributeNames: map[string]string{"#date": "date"},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":description": &types.AttributeValueMemberS{Value: e.Description},
			":amount":      amount,
			":category":    &types.AttributeValueMemberS{Value: e.Category},
			":date":        &types.AttributeValueMemberS{Value: e.Date},
			":updatedAt":   &types.AttributeValueMemberS{Value: formatTime(e.UpdatedAt)},
		},
		ReturnValues: types.ReturnValueAllNew,
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("dynamodb error: %w", err)
	}

	var doc dynamoExpense
	if err := attributevalue.UnmarshalMap(out.Attributes, &doc); err != nil {
		return nil, fmt.Errorf("decode expense: %w", err)
	}
	return doc.model(), nil
}

func (r *DynamoRepository) Delete(ctx context.Context, userID, id string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:           aws.String(r.table),
		Key:                 itemKey(userID, id),
		ConditionExpression: aws.String("attribute_exists(expenseId)"),
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return common.ErrNotFound
		}
		return fmt.Errorf("dynamodb error: %w", err)
	}
	return nil
}
