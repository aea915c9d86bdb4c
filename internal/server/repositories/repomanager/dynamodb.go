package repomanager

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"github.com/dmitrijs2005/fintrack/internal/server/repositories/expenses"
	"github.com/dmitrijs2005/fintrack/internal/server/repositories/users"
)

// DynamoOptions selects the region, tables and an optional endpoint override
// (DynamoDB Local, LocalStack).
type DynamoOptions struct {
	Region        string
	Endpoint      string
	UsersTable    string
	ExpensesTable string
}

// DynamoRepositoryManager vends DynamoDB-backed repositories.
type DynamoRepositoryManager struct {
	users    *users.DynamoRepository
	expenses *expenses.DynamoRepository
}

// NewDynamoRepositoryManager loads the default AWS configuration for the
// region. With an endpoint override static local credentials are used.
func NewDynamoRepositoryManager(ctx context.Context, o DynamoOptions) (*DynamoRepositoryManager, error) {
	loadOpts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(o.Region)}
	if o.Endpoint != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider("local", "local", ""),
		))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := dynamodb.NewFromConfig(cfg, func(opts *dynamodb.Options) {
		if o.Endpoint != "" {
			opts.BaseEndpoint = aws.String(o.Endpoint)
		}
	})

	return newDynamoRepositoryManager(client, o), nil
}

func newDynamoRepositoryManager(client *dynamodb.Client, o DynamoOptions) *DynamoRepositoryManager {
	return &DynamoRepositoryManager{
		users:    users.NewDynamoRepository(client, o.UsersTable),
		expenses: expenses.NewDynamoRepository(client, o.ExpensesTable),
	}
}

func (m *DynamoRepositoryManager) Users() users.Repository {
	return m.users
}

func (m *DynamoRepositoryManager) Expenses() expenses.Repository {
	return m.expenses
}

// Close is a no-op: the SDK client holds no long-lived connections to close.
func (m *DynamoRepositoryManager) Close() error {
	return nil
}
