package storage

import (
	"context"
	"errors"

	"github.com/alex-pricope/hackathon-judging-api/logging"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type UseCaseStorage interface {
	Get(ctx context.Context, id int) (*UseCase, error)
	GetAll(ctx context.Context) ([]*UseCase, error)
	NextID(ctx context.Context) (int, error)
	Create(ctx context.Context, useCase *UseCase) error
	Put(ctx context.Context, useCase *UseCase) error
	Update(ctx context.Context, id int, changes Changes) (*UseCase, error)
}

type DynamoUseCaseStorage struct {
	Client    DynamoAPI
	TableName string
}

func useCaseKey(id int) (map[string]types.AttributeValue, error) {
	return attributevalue.MarshalMap(map[string]int{"use_case_id": id})
}

func (s *DynamoUseCaseStorage) Get(ctx context.Context, id int) (*UseCase, error) {
	key, err := useCaseKey(id)
	if err != nil {
		logging.Log.Errorf("USECASE: failed to marshal key for ID %d: %v", id, err)
		return nil, err
	}

	out, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: &s.TableName,
		Key:       key,
	})
	if err != nil {
		logging.Log.Errorf("USECASE: GetItem for ID %d failed: %v", id, err)
		return nil, err
	}
	if out.Item == nil {
		return nil, ErrNotFound
	}

	var useCase UseCase
	if err := attributevalue.UnmarshalMap(out.Item, &useCase); err != nil {
		logging.Log.Errorf("USECASE: failed to unmarshal use case: %v", err)
		return nil, err
	}
	return &useCase, nil
}

func (s *DynamoUseCaseStorage) GetAll(ctx context.Context) ([]*UseCase, error) {
	items, err := scanAll(ctx, s.Client, s.TableName, nil)
	if err != nil {
		logging.Log.Errorf("USECASE: scan failed: %v", err)
		return nil, err
	}

	useCases := make([]*UseCase, 0, len(items))
	if err := attributevalue.UnmarshalListOfMaps(items, &useCases); err != nil {
		logging.Log.Errorf("USECASE: failed to unmarshal list: %v", err)
		return nil, err
	}
	return useCases, nil
}

// NextID returns max(existing ids)+1, or 1 for an empty table. Gaps are never reused.
func (s *DynamoUseCaseStorage) NextID(ctx context.Context) (int, error) {
	items, err := scanAll(ctx, s.Client, s.TableName, aws.String("use_case_id"))
	if err != nil {
		logging.Log.Errorf("USECASE: id scan failed: %v", err)
		return 0, err
	}

	var ids []struct {
		ID int `dynamodbav:"use_case_id"`
	}
	if err := attributevalue.UnmarshalListOfMaps(items, &ids); err != nil {
		return 0, err
	}

	next := 1
	for _, item := range ids {
		if item.ID >= next {
			next = item.ID + 1
		}
	}
	return next, nil
}

func (s *DynamoUseCaseStorage) Create(ctx context.Context, useCase *UseCase) error {
	item, err := attributevalue.MarshalMap(useCase)
	if err != nil {
		logging.Log.Errorf("USECASE: failed to marshal use case: %v", err)
		return err
	}

	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           &s.TableName,
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(use_case_id)"),
	})
	if err != nil {
		var cce *types.ConditionalCheckFailedException
		if errors.As(err, &cce) {
			logging.Log.Warnf("USECASE: item with ID %d already exists", useCase.UseCaseID)
			return ErrItemWithIDAlreadyExists
		}
		logging.Log.Errorf("USECASE: failed to create use case: %v", err)
		return err
	}
	return nil
}

// Put writes the use case unconditionally.
func (s *DynamoUseCaseStorage) Put(ctx context.Context, useCase *UseCase) error {
	item, err := attributevalue.MarshalMap(useCase)
	if err != nil {
		logging.Log.Errorf("USECASE: failed to marshal use case: %v", err)
		return err
	}

	if _, err := s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: &s.TableName,
		Item:      item,
	}); err != nil {
		logging.Log.Errorf("USECASE: failed to put use case %d: %v", useCase.UseCaseID, err)
		return err
	}
	return nil
}

func (s *DynamoUseCaseStorage) Update(ctx context.Context, id int, changes Changes) (*UseCase, error) {
	key, err := useCaseKey(id)
	if err != nil {
		return nil, err
	}

	var useCase UseCase
	if err := updateItem(ctx, s.Client, s.TableName, "use_case_id", key, changes, &useCase); err != nil {
		if !errors.Is(err, ErrNotFound) {
			logging.Log.Errorf("USECASE: failed to update use case %d: %v", id, err)
		}
		return nil, err
	}
	logging.Log.Infof("USECASE: updated %v on use case %d", changes.Names(), id)
	return &useCase, nil
}
