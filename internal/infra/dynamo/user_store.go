package dynamo

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"

	"github.com/thetajwar2003/SpendWiseApi/internal/domain"
)

// GetUser loads a user record by id.
func (c *Client) GetUser(ctx context.Context, userID string) (*domain.UserRecord, error) {
	ctx, span := tracer.Start(ctx, "Dynamo.GetUser")
	defer span.End()

	out, err := c.db.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(c.tables.Users),
		Key: map[string]types.AttributeValue{
			"user_id": &types.AttributeValueMemberS{Value: userID},
		},
	})
	if err != nil {
		return nil, c.wrapError("get user", err, zap.String("user_id", userID))
	}
	if out.Item == nil {
		return nil, &domain.ErrNotFound{Resource: "user", ID: userID}
	}

	var user domain.UserRecord
	if err := attributevalue.UnmarshalMap(out.Item, &user); err != nil {
		return nil, fmt.Errorf("decode user record: %w", err)
	}
	return &user, nil
}

// PutUser writes a full user record.
func (c *Client) PutUser(ctx context.Context, user *domain.UserRecord) error {
	ctx, span := tracer.Start(ctx, "Dynamo.PutUser")
	defer span.End()

	item, err := attributevalue.MarshalMap(user)
	if err != nil {
		return fmt.Errorf("encode user record: %w", err)
	}

	if _, err := c.db.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(c.tables.Users),
		Item:      item,
	}); err != nil {
		return c.wrapError("put user", err, zap.String("user_id", user.UserID))
	}
	return nil
}

// MergeUser updates the given attributes on an existing user record.
// The record must already exist; merging into a missing record returns
// ErrNotFound rather than creating a partial row.
func (c *Client) MergeUser(ctx context.Context, userID string, fields map[string]any) error {
	ctx, span := tracer.Start(ctx, "Dynamo.MergeUser")
	defer span.End()

	if len(fields) == 0 {
		return nil
	}

	// Deterministic expression order keeps requests reproducible in tests.
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	expr := "SET "
	exprNames := make(map[string]string, len(names)+1)
	exprValues := make(map[string]types.AttributeValue, len(names)+1)
	for i, name := range names {
		av, err := attributevalue.Marshal(fields[name])
		if err != nil {
			return fmt.Errorf("encode field %s: %w", name, err)
		}
		if i > 0 {
			expr += ", "
		}
		expr += fmt.Sprintf("#f%d = :v%d", i, i)
		exprNames[fmt.Sprintf("#f%d", i)] = name
		exprValues[fmt.Sprintf(":v%d", i)] = av
	}
	expr += ", #updated = :updated"
	exprNames["#updated"] = "updated_at"
	exprValues[":updated"] = &types.AttributeValueMemberS{
		Value: time.Now().UTC().Format(time.RFC3339),
	}

	_, err := c.db.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(c.tables.Users),
		Key:                       map[string]types.AttributeValue{"user_id": &types.AttributeValueMemberS{Value: userID}},
		UpdateExpression:          aws.String(expr),
		ExpressionAttributeNames:  exprNames,
		ExpressionAttributeValues: exprValues,
		ConditionExpression:       aws.String("attribute_exists(user_id)"),
	})
	if err != nil {
		var conditionFailed *types.ConditionalCheckFailedException
		if errors.As(err, &conditionFailed) {
			return &domain.ErrNotFound{Resource: "user", ID: userID}
		}
		return c.wrapError("merge user", err, zap.String("user_id", userID))
	}
	return nil
}
