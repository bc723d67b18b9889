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

// AddSubscription writes a subscription row keyed on (user_id, subscription_id).
func (c *Client) AddSubscription(ctx context.Context, sub *domain.Subscription) error {
	ctx, span := tracer.Start(ctx, "Dynamo.AddSubscription")
	defer span.End()

	item, err := attributevalue.MarshalMap(sub)
	if err != nil {
		return fmt.Errorf("encode subscription: %w", err)
	}

	if _, err := c.db.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(c.tables.Subscriptions),
		Item:      item,
	}); err != nil {
		return c.wrapError("add subscription", err, zap.String("user_id", sub.UserID))
	}
	return nil
}

// ListSubscriptions returns all tracked subscriptions for a user.
func (c *Client) ListSubscriptions(ctx context.Context, userID string) ([]domain.Subscription, error) {
	ctx, span := tracer.Start(ctx, "Dynamo.ListSubscriptions")
	defer span.End()

	out, err := c.db.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(c.tables.Subscriptions),
		KeyConditionExpression: aws.String("user_id = :uid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":uid": &types.AttributeValueMemberS{Value: userID},
		},
	})
	if err != nil {
		return nil, c.wrapError("list subscriptions", err, zap.String("user_id", userID))
	}

	subs := make([]domain.Subscription, 0, len(out.Items))
	for _, item := range out.Items {
		var s domain.Subscription
		if err := attributevalue.UnmarshalMap(item, &s); err != nil {
			return nil, fmt.Errorf("decode subscription: %w", err)
		}
		subs = append(subs, s)
	}
	return subs, nil
}

// DeleteSubscription removes a tracked subscription.
func (c *Client) DeleteSubscription(ctx context.Context, userID, subscriptionID string) error {
	ctx, span := tracer.Start(ctx, "Dynamo.DeleteSubscription")
	defer span.End()

	_, err := c.db.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(c.tables.Subscriptions),
		Key: map[string]types.AttributeValue{
			"user_id":         &types.AttributeValueMemberS{Value: userID},
			"subscription_id": &types.AttributeValueMemberS{Value: subscriptionID},
		},
		ConditionExpression: aws.String("attribute_exists(user_id)"),
	})
	if err != nil {
		var conditionFailed *types.ConditionalCheckFailedException
		if errors.As(err, &conditionFailed) {
			return &domain.ErrNotFound{Resource: "subscription", ID: subscriptionID}
		}
		return c.wrapError("delete subscription", err, zap.String("user_id", userID))
	}
	return nil
}
