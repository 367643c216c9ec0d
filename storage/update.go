package storage

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const TimestampLayout = "2006-01-02T15:04:05Z"

// Now is the storage clock.
var Now = time.Now

func Timestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

func NowTimestamp() string {
	return Timestamp(Now())
}

// Changes maps attribute names to their new values for a partial update.
type Changes map[string]any

// Names returns the changed attribute names in a stable order.
func (c Changes) Names() []string {
	names := make([]string, 0, len(c))
	for name := range c {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// buildUpdate turns changes into a single SET expression that also refreshes
// updated_at, conditioned on the item existing so an update never creates one.
func buildUpdate(keyAttr string, changes Changes) (expression.Expression, error) {
	if len(changes) == 0 {
		return expression.Expression{}, ErrNothingToUpdate
	}

	var update expression.UpdateBuilder
	for _, name := range changes.Names() {
		update = update.Set(expression.Name(name), expression.Value(changes[name]))
	}
	update = update.Set(expression.Name("updated_at"), expression.Value(NowTimestamp()))

	return expression.NewBuilder().
		WithUpdate(update).
		WithCondition(expression.AttributeExists(expression.Name(keyAttr))).
		Build()
}

// updateItem applies changes to the item at key and decodes the post-update
// record into out.
func updateItem(ctx context.Context, client DynamoAPI, tableName, keyAttr string, key map[string]types.AttributeValue, changes Changes, out any) error {
	expr, err := buildUpdate(keyAttr, changes)
	if err != nil {
		return err
	}

	res, err := client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(tableName),
		Key:                       key,
		UpdateExpression:          expr.Update(),
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		var cce *types.ConditionalCheckFailedException
		if errors.As(err, &cce) {
			return ErrNotFound
		}
		return err
	}

	if out == nil {
		return nil
	}
	return attributevalue.UnmarshalMap(res.Attributes, out)
}
