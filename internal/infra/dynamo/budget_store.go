package dynamo

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"

	"github.com/thetajwar2003/SpendWiseApi/internal/domain"
)

// CreateBudget writes a budget row keyed on (user_id, category).
// Writing an existing category overwrites its amount.
func (c *Client) CreateBudget(ctx context.Context, budget *domain.Budget) error {
	ctx, span := tracer.Start(ctx, "Dynamo.CreateBudget")
	defer span.End()

	item, err := attributevalue.MarshalMap(budget)
	if err != nil {
		return fmt.Errorf("encode budget: %w", err)
	}

	if _, err := c.db.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(c.tables.Budgets),
		Item:      item,
	}); err != nil {
		return c.wrapError("create budget", err, zap.String("user_id", budget.UserID))
	}
	return nil
}

// ListBudgets returns all budgets for a user.
func (c *Client) ListBudgets(ctx context.Context, userID string) ([]domain.Budget, error) {
	ctx, span := tracer.Start(ctx, "Dynamo.ListBudgets")
	defer span.End()

	out, err := c.db.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(c.tables.Budgets),
		KeyConditionExpression: aws.String("user_id = :uid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":uid": &types.AttributeValueMemberS{Value: userID},
		},
	})
	if err != nil {
		return nil, c.wrapError("list budgets", err, zap.String("user_id", userID))
	}

	budgets := make([]domain.Budget, 0, len(out.Items))
	for _, item := range out.Items {
		var b domain.Budget
		if err := attributevalue.UnmarshalMap(item, &b); err != nil {
			return nil, fmt.Errorf("decode budget: %w", err)
		}
		budgets = append(budgets, b)
	}
	return budgets, nil
}

// UpdateBudget changes the amount of an existing budget category.
func (c *Client) UpdateBudget(ctx context.Context, userID, category string, amount float64) error {
	ctx, span := tracer.Start(ctx, "Dynamo.UpdateBudget")
	defer span.End()

	_, err := c.db.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(c.tables.Budgets),
		Key: map[string]types.AttributeValue{
			"user_id":  &types.AttributeValueMemberS{Value: userID},
			"category": &types.AttributeValueMemberS{Value: category},
		},
		UpdateExpression: aws.String("SET amount = :amount"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":amount": &types.AttributeValueMemberN{Value: fmt.Sprintf("%g", amount)},
		},
		ConditionExpression: aws.String("attribute_exists(user_id)"),
	})
	if err != nil {
		var conditionFailed *types.ConditionalCheckFailedException
		if errors.As(err, &conditionFailed) {
			return &domain.ErrNotFound{Resource: "budget", ID: category}
		}
		return c.wrapError("update budget", err, zap.String("user_id", userID))
	}
	return nil
}

// DeleteBudget removes a budget category for a user.
func (c *Client) DeleteBudget(ctx context.Context, userID, category string) error {
	ctx, span := tracer.Start(ctx, "Dynamo.DeleteBudget")
	defer span.End()

	_, err := c.db.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(c.tables.Budgets),
		Key: map[string]types.AttributeValue{
			"user_id":  &types.AttributeValueMemberS{Value: userID},
			"category": &types.AttributeValueMemberS{Value: category},
		},
		ConditionExpression: aws.String("attribute_exists(user_id)"),
	})
	if err != nil {
		var conditionFailed *types.ConditionalCheckFailedException
		if errors.As(err, &conditionFailed) {
			return &domain.ErrNotFound{Resource: "budget", ID: category}
		}
		return c.wrapError("delete budget", err, zap.String("user_id", userID))
	}
	return nil
}
