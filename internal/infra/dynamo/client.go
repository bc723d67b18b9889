// Package dynamo provides DynamoDB-backed stores for user records,
// budgets, and subscriptions.
package dynamo

import (
	"errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/smithy-go"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"github.com/thetajwar2003/SpendWiseApi/internal/domain"
)

var tracer = otel.Tracer("dynamo")

// Tables names the DynamoDB tables the API reads and writes.
type Tables struct {
	Users         string
	Budgets       string
	Subscriptions string
}

// Client wraps the DynamoDB SDK client and implements the user, budget,
// and subscription store ports.
type Client struct {
	db     *dynamodb.Client
	tables Tables
	logger *zap.Logger
}

// NewClient creates a DynamoDB-backed store client.
func NewClient(awsCfg aws.Config, tables Tables, logger *zap.Logger) *Client {
	return &Client{
		db:     dynamodb.NewFromConfig(awsCfg),
		tables: tables,
		logger: logger,
	}
}

// wrapError logs a failed DynamoDB call with its service error code and
// converts it to ErrExternalService.
func (c *Client) wrapError(op string, err error, fields ...zap.Field) error {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		fields = append(fields, zap.String("code", apiErr.ErrorCode()))
	}
	c.logger.Error("dynamo: "+op+" failed", append(fields, zap.Error(err))...)
	return &domain.ErrExternalService{Service: "dynamodb", Err: err}
}
