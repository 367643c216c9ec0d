// Package storagetest provides an in-memory stand-in for the DynamoDB client
// so storage and handler tests run without localstack.
package storagetest

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type table struct {
	pk    string
	sk    string
	items map[string]map[string]types.AttributeValue
}

// FakeDynamo understands the expression shapes the storage package emits:
// SET-only update expressions, attribute_exists/attribute_not_exists
// conditions on the key, and single-attribute equality key conditions.
type FakeDynamo struct {
	mu     sync.Mutex
	tables map[string]*table

	// Errors makes the named operation ("GetItem", "Scan", ...) fail.
	Errors map[string]error
}

func NewFakeDynamo() *FakeDynamo {
	return &FakeDynamo{
		tables: make(map[string]*table),
		Errors: make(map[string]error),
	}
}

// CreateTable registers a table; sk may be empty for hash-only keys.
func (f *FakeDynamo) CreateTable(name, pk, sk string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tables[name] = &table{pk: pk, sk: sk, items: make(map[string]map[string]types.AttributeValue)}
}

// Count returns the number of items in a table.
func (f *FakeDynamo) Count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if t, ok := f.tables[name]; ok {
		return len(t.items)
	}
	return 0
}

// Items returns copies of every item in a table, ordered by key.
func (f *FakeDynamo) Items(name string) []map[string]types.AttributeValue {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tables[name]
	if !ok {
		return nil
	}
	return t.sorted()
}

func (f *FakeDynamo) table(name *string) (*table, error) {
	t, ok := f.tables[aws.ToString(name)]
	if !ok {
		return nil, &types.ResourceNotFoundException{Message: aws.String("table not found: " + aws.ToString(name))}
	}
	return t, nil
}

func (f *FakeDynamo) fail(op string) error {
	if err, ok := f.Errors[op]; ok && err != nil {
		return err
	}
	return nil
}

func (t *table) key(item map[string]types.AttributeValue) (string, error) {
	pk, ok := item[t.pk]
	if !ok {
		return "", fmt.Errorf("missing key attribute %s", t.pk)
	}
	k := attrString(pk)
	if t.sk != "" {
		sk, ok := item[t.sk]
		if !ok {
			return "", fmt.Errorf("missing key attribute %s", t.sk)
		}
		k += "|" + attrString(sk)
	}
	return k, nil
}

func (t *table) sorted() []map[string]types.AttributeValue {
	keys := make([]string, 0, len(t.items))
	for k := range t.items {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]map[string]types.AttributeValue, 0, len(keys))
	for _, k := range keys {
		out = append(out, clone(t.items[k]))
	}
	return out
}

func attrString(av types.AttributeValue) string {
	switch v := av.(type) {
	case *types.AttributeValueMemberS:
		return "S:" + v.Value
	case *types.AttributeValueMemberN:
		return "N:" + v.Value
	case *types.AttributeValueMemberB:
		return "B:" + string(v.Value)
	case *types.AttributeValueMemberBOOL:
		return fmt.Sprintf("BOOL:%t", v.Value)
	default:
		return fmt.Sprintf("%T", av)
	}
}

func clone(item map[string]types.AttributeValue) map[string]types.AttributeValue {
	out := make(map[string]types.AttributeValue, len(item))
	for k, v := range item {
		out[k] = v
	}
	return out
}

func conditionFailed() error {
	return &types.ConditionalCheckFailedException{Message: aws.String("The conditional request failed")}
}

func resolveName(token string, names map[string]string) string {
	if strings.HasPrefix(token, "#") {
		return names[token]
	}
	return token
}

func (f *FakeDynamo) GetItem(_ context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("GetItem"); err != nil {
		return nil, err
	}
	t, err := f.table(in.TableName)
	if err != nil {
		return nil, err
	}
	k, err := t.key(in.Key)
	if err != nil {
		return nil, err
	}
	item, ok := t.items[k]
	if !ok {
		return &dynamodb.GetItemOutput{}, nil
	}
	return &dynamodb.GetItemOutput{Item: clone(item)}, nil
}

func (f *FakeDynamo) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("PutItem"); err != nil {
		return nil, err
	}
	t, err := f.table(in.TableName)
	if err != nil {
		return nil, err
	}
	k, err := t.key(in.Item)
	if err != nil {
		return nil, err
	}
	_, exists := t.items[k]
	if cond := aws.ToString(in.ConditionExpression); strings.Contains(cond, "attribute_not_exists") && exists {
		return nil, conditionFailed()
	}
	t.items[k] = clone(in.Item)
	return &dynamodb.PutItemOutput{}, nil
}

func (f *FakeDynamo) UpdateItem(_ context.Context, in *dynamodb.UpdateItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("UpdateItem"); err != nil {
		return nil, err
	}
	t, err := f.table(in.TableName)
	if err != nil {
		return nil, err
	}
	k, err := t.key(in.Key)
	if err != nil {
		return nil, err
	}

	item, exists := t.items[k]
	cond := aws.ToString(in.ConditionExpression)
	switch {
	case strings.Contains(cond, "attribute_not_exists") && exists:
		return nil, conditionFailed()
	case strings.Contains(cond, "attribute_exists") && !strings.Contains(cond, "attribute_not_exists") && !exists:
		return nil, conditionFailed()
	}
	if !exists {
		item = clone(in.Key)
	} else {
		item = clone(item)
	}

	expr := strings.TrimSpace(aws.ToString(in.UpdateExpression))
	if !strings.HasPrefix(expr, "SET ") {
		return nil, fmt.Errorf("unsupported update expression: %q", expr)
	}
	for _, clause := range strings.Split(strings.TrimPrefix(expr, "SET "), ",") {
		parts := strings.SplitN(clause, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("unsupported update clause: %q", clause)
		}
		name := resolveName(strings.TrimSpace(parts[0]), in.ExpressionAttributeNames)
		value, ok := in.ExpressionAttributeValues[strings.TrimSpace(parts[1])]
		if !ok {
			return nil, fmt.Errorf("missing value for %q", clause)
		}
		item[name] = value
	}
	t.items[k] = item

	out := &dynamodb.UpdateItemOutput{}
	if in.ReturnValues == types.ReturnValueAllNew {
		out.Attributes = clone(item)
	}
	return out, nil
}

func (f *FakeDynamo) DeleteItem(_ context.Context, in *dynamodb.DeleteItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("DeleteItem"); err != nil {
		return nil, err
	}
	t, err := f.table(in.TableName)
	if err != nil {
		return nil, err
	}
	k, err := t.key(in.Key)
	if err != nil {
		return nil, err
	}
	delete(t.items, k)
	return &dynamodb.DeleteItemOutput{}, nil
}

func (f *FakeDynamo) Scan(_ context.Context, in *dynamodb.ScanInput, _ ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("Scan"); err != nil {
		return nil, err
	}
	t, err := f.table(in.TableName)
	if err != nil {
		return nil, err
	}
	items := t.sorted()
	return &dynamodb.ScanOutput{Items: items, Count: int32(len(items))}, nil
}

func (f *FakeDynamo) Query(_ context.Context, in *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("Query"); err != nil {
		return nil, err
	}
	t, err := f.table(in.TableName)
	if err != nil {
		return nil, err
	}

	parts := strings.SplitN(aws.ToString(in.KeyConditionExpression), "=", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("unsupported key condition: %q", aws.ToString(in.KeyConditionExpression))
	}
	name := resolveName(strings.TrimSpace(parts[0]), in.ExpressionAttributeNames)
	want, ok := in.ExpressionAttributeValues[strings.TrimSpace(parts[1])]
	if !ok {
		return nil, fmt.Errorf("missing key condition value")
	}

	var items []map[string]types.AttributeValue
	for _, item := range t.sorted() {
		if v, ok := item[name]; ok && attrString(v) == attrString(want) {
			items = append(items, item)
		}
	}
	return &dynamodb.QueryOutput{Items: items, Count: int32(len(items))}, nil
}

func (f *FakeDynamo) BatchWriteItem(_ context.Context, in *dynamodb.BatchWriteItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.BatchWriteItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("BatchWriteItem"); err != nil {
		return nil, err
	}
	for name, requests := range in.RequestItems {
		t, err := f.table(aws.String(name))
		if err != nil {
			return nil, err
		}
		for _, req := range requests {
			switch {
			case req.DeleteRequest != nil:
				k, err := t.key(req.DeleteRequest.Key)
				if err != nil {
					return nil, err
				}
				delete(t.items, k)
			case req.PutRequest != nil:
				k, err := t.key(req.PutRequest.Item)
				if err != nil {
					return nil, err
				}
				t.items[k] = clone(req.PutRequest.Item)
			}
		}
	}
	return &dynamodb.BatchWriteItemOutput{UnprocessedItems: map[string][]types.WriteRequest{}}, nil
}
