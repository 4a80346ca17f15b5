package store

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/sirupsen/logrus"

	"github.com/bookloft/catalog-api/internal/config"
	"github.com/bookloft/catalog-api/internal/metrics"
	"github.com/bookloft/catalog-api/internal/models"
)

// DynamoCredentialStore keeps user records in a DynamoDB table keyed
// by user_id, with a username-index GSI for lookups by username.
type DynamoCredentialStore struct {
	client    *dynamodb.Client
	tableName string
	logger    *logrus.Logger
}

// NewDynamoDBClient loads AWS configuration and creates a DynamoDB client.
// Without an explicit profile the SDK falls back to the ambient credential
// chain (env vars, IRSA in Kubernetes).
func NewDynamoDBClient(cfg *config.Config, logger *logrus.Logger) (*dynamodb.Client, error) {
	ctx := context.Background()

	var awsCfg aws.Config
	var err error

	if cfg.AWS.Profile != "" {
		awsCfg, err = awsconfig.LoadDefaultConfig(ctx,
			awsconfig.WithRegion(cfg.DynamoDB.Region),
			awsconfig.WithSharedConfigProfile(cfg.AWS.Profile),
		)
	} else {
		awsCfg, err = awsconfig.LoadDefaultConfig(ctx,
			awsconfig.WithRegion(cfg.DynamoDB.Region),
		)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := dynamodb.NewFromConfig(awsCfg)

	logger.WithFields(logrus.Fields{
		"region":     cfg.DynamoDB.Region,
		"table_name": cfg.DynamoDB.UsersTableName,
	}).Info("DynamoDB client initialized")

	return client, nil
}

func NewDynamoCredentialStore(client *dynamodb.Client, tableName string, logger *logrus.Logger) *DynamoCredentialStore {
	return &DynamoCredentialStore{
		client:    client,
		tableName: tableName,
		logger:    logger,
	}
}

func (s *DynamoCredentialStore) GetUser(ctx context.Context, username string) (*models.User, error) {
	defer metrics.ObserveStoreOperation("dynamodb", "get_user")()

	result, err := s.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(s.tableName),
		IndexName:              aws.String("username-index"),
		KeyConditionExpression: aws.String("username = :username"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":username": &types.AttributeValueMemberS{Value: username},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}

	if len(result.Items) == 0 {
		return nil, ErrUserNotFound
	}

	var user models.User
	if err := attributevalue.UnmarshalMap(result.Items[0], &user); err != nil {
		return nil, fmt.Errorf("unmarshal failed: %w", err)
	}

	return &user, nil
}

func (s *DynamoCredentialStore) PutUser(ctx context.Context, user *models.User) error {
	defer metrics.ObserveStoreOperation("dynamodb", "put_user")()

	// The username GSI cannot enforce uniqueness; check-then-put
	// leaves a small write race window.
	if _, err := s.GetUser(ctx, user.Username); err == nil {
		return ErrUserExists
	} else if err != ErrUserNotFound {
		return err
	}

	item, err := attributevalue.MarshalMap(user)
	if err != nil {
		return fmt.Errorf("marshal failed: %w", err)
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(s.tableName),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(user_id)"),
	})
	if err != nil {
		return fmt.Errorf("put item failed: %w", err)
	}

	return nil
}

func (s *DynamoCredentialStore) CountUsers(ctx context.Context) (int, error) {
	result, err := s.client.Scan(ctx, &dynamodb.ScanInput{
		TableName: aws.String(s.tableName),
		Select:    types.SelectCount,
	})
	if err != nil {
		return 0, fmt.Errorf("scan failed: %w", err)
	}
	return int(result.Count), nil
}
