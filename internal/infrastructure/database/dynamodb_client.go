package database

import (
	"context"
	"errors"
	"fmt"

	"erp_invoicing/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"
)

// ConnectDynamoDB builds a DynamoDB client from the service configuration.
//
// Local DynamoDB does not validate credentials, but the AWS SDK requires them, so the
// static provider is always set. DynamoDBEndpoint (e.g. http://dynamodb:8000) points the
// client at a local instance.
func ConnectDynamoDB(ctx context.Context, cfg config.Config, log *zap.Logger) (*dynamodb.Client, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.AWSRegion),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AWSAccessKeyID, cfg.AWSSecretAccessKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if cfg.DynamoDBEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.DynamoDBEndpoint)
		}
	})
	log.Info("dynamodb client ready", zap.String("region", cfg.AWSRegion), zap.String("endpoint", cfg.DynamoDBEndpoint))
	return client, nil
}

// tableSpec describes one table: every table is keyed by a string "id"; indexes are
// single string hash keys projected ALL.
type tableSpec struct {
	name    string
	indexes map[string]string
}

func tableSpecs(t config.Tables) []tableSpec {
	return []tableSpec{
		{name: t.Invoices, indexes: map[string]string{
			"invoice_number-index": "invoice_number",
			"customer_id-index":    "customer_id",
		}},
		{name: t.InvoiceCounter},
		{name: t.TimeEntries, indexes: map[string]string{"order_id-index": "order_id"}},
		{name: t.Customers},
		{name: t.Orders},
		{name: t.Settings},
		{name: t.Payments, indexes: map[string]string{"invoice_id-index": "invoice_id"}},
	}
}

type tableCreator interface {
	CreateTable(ctx context.Context, params *dynamodb.CreateTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error)
}

// EnsureDynamoTables creates the tables (on-demand billing) that do not exist yet.
// Existing tables are left as they are.
func EnsureDynamoTables(ctx context.Context, ddb tableCreator, tables config.Tables, log *zap.Logger) error {
	for _, spec := range tableSpecs(tables) {
		_, err := ddb.CreateTable(ctx, createTableInput(spec))
		var inUse *types.ResourceInUseException
		switch {
		case errors.As(err, &inUse):
			log.Debug("table already exists", zap.String("table", spec.name))
		case err != nil:
			return fmt.Errorf("create table %s: %w", spec.name, err)
		default:
			log.Info("table created", zap.String("table", spec.name))
		}
	}
	return nil
}

func createTableInput(spec tableSpec) *dynamodb.CreateTableInput {
	attrs := []types.AttributeDefinition{{AttributeName: aws.String("id"), AttributeType: types.ScalarAttributeTypeS}}
	var gsis []types.GlobalSecondaryIndex
	for index, attr := range spec.indexes {
		attrs = append(attrs, types.AttributeDefinition{AttributeName: aws.String(attr), AttributeType: types.ScalarAttributeTypeS})
		gsis = append(gsis, types.GlobalSecondaryIndex{
			IndexName:  aws.String(index),
			KeySchema:  []types.KeySchemaElement{{AttributeName: aws.String(attr), KeyType: types.KeyTypeHash}},
			Projection: &types.Projection{ProjectionType: types.ProjectionTypeAll},
		})
	}
	return &dynamodb.CreateTableInput{
		TableName:              aws.String(spec.name),
		AttributeDefinitions:   attrs,
		KeySchema:              []types.KeySchemaElement{{AttributeName: aws.String("id"), KeyType: types.KeyTypeHash}},
		GlobalSecondaryIndexes: gsis,
		BillingMode:            types.BillingModePayPerRequest,
	}
}
