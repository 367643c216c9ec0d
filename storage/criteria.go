package storage

import (
	"context"
	"errors"

	"github.com/alex-pricope/hackathon-judging-api/logging"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type JudgingCriteriaStorage interface {
	Get(ctx context.Context) (*JudgingCriteria, error)
	Put(ctx context.Context, criteria *JudgingCriteria) error
	Update(ctx context.Context, changes Changes) (*JudgingCriteria, error)
}

type DynamoJudgingCriteriaStorage struct {
	Client    DynamoAPI
	TableName string
}

func criteriaKey() map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"criteria_id": &types.AttributeValueMemberS{Value: JudgingCriteriaID},
	}
}

func (s *DynamoJudgingCriteriaStorage) Get(ctx context.Context) (*JudgingCriteria, error) {
	out, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: &s.TableName,
		Key:       criteriaKey(),
	})
	if err != nil {
		logging.Log.Errorf("CRITERIA: GetItem failed: %v", err)
		return nil, err
	}
	if out.Item == nil {
		return nil, ErrNotFound
	}

	var criteria JudgingCriteria
	if err := attributevalue.UnmarshalMap(out.Item, &criteria); err != nil {
		logging.Log.Errorf("CRITERIA: failed to unmarshal criteria: %v", err)
		return nil, err
	}
	return &criteria, nil
}

// Put replaces the singleton record; only the seeder writes it whole.
func (s *DynamoJudgingCriteriaStorage) Put(ctx context.Context, criteria *JudgingCriteria) error {
	criteria.CriteriaID = JudgingCriteriaID
	if criteria.UpdatedAt == "" {
		criteria.UpdatedAt = NowTimestamp()
	}

	item, err := attributevalue.MarshalMap(criteria)
	if err != nil {
		logging.Log.Errorf("CRITERIA: failed to marshal criteria: %v", err)
		return err
	}

	if _, err := s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: &s.TableName,
		Item:      item,
	}); err != nil {
		logging.Log.Errorf("CRITERIA: failed to put criteria: %v", err)
		return err
	}
	return nil
}

func (s *DynamoJudgingCriteriaStorage) Update(ctx context.Context, changes Changes) (*JudgingCriteria, error) {
	var criteria JudgingCriteria
	if err := updateItem(ctx, s.Client, s.TableName, "criteria_id", criteriaKey(), changes, &criteria); err != nil {
		if !errors.Is(err, ErrNotFound) {
			logging.Log.Errorf("CRITERIA: failed to update criteria: %v", err)
		}
		return nil, err
	}
	logging.Log.Infof("CRITERIA: updated %v", changes.Names())
	return &criteria, nil
}
