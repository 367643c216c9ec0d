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

// PanelistStorage has no Delete: panelists are never removed through the API.
type PanelistStorage interface {
	Get(ctx context.Context, id string) (*Panelist, error)
	GetAll(ctx context.Context) ([]*Panelist, error)
	Create(ctx context.Context, panelist *Panelist) error
	Update(ctx context.Context, id string, changes Changes) (*Panelist, error)
}

type DynamoPanelistStorage struct {
	Client    DynamoAPI
	TableName string
}

func panelistKey(id string) (map[string]types.AttributeValue, error) {
	return attributevalue.MarshalMap(map[string]string{"panelist_id": id})
}

func (s *DynamoPanelistStorage) Get(ctx context.Context, id string) (*Panelist, error) {
	key, err := panelistKey(id)
	if err != nil {
		logging.Log.Errorf("PANELIST: failed to marshal key for ID %s: %v", id, err)
		return nil, err
	}

	out, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: &s.TableName,
		Key:       key,
	})
	if err != nil {
		logging.Log.Errorf("PANELIST: GetItem for ID %s failed: %v", id, err)
		return nil, err
	}
	if out.Item == nil {
		return nil, ErrNotFound
	}

	var panelist Panelist
	if err := attributevalue.UnmarshalMap(out.Item, &panelist); err != nil {
		logging.Log.Errorf("PANELIST: failed to unmarshal panelist: %v", err)
		return nil, err
	}
	return &panelist, nil
}

func (s *DynamoPanelistStorage) GetAll(ctx context.Context) ([]*Panelist, error) {
	items, err := scanAll(ctx, s.Client, s.TableName, nil)
	if err != nil {
		logging.Log.Errorf("PANELIST: scan failed: %v", err)
		return nil, err
	}

	panelists := make([]*Panelist, 0, len(items))
	if err := attributevalue.UnmarshalListOfMaps(items, &panelists); err != nil {
		logging.Log.Errorf("PANELIST: failed to unmarshal list: %v", err)
		return nil, err
	}
	return panelists, nil
}

func (s *DynamoPanelistStorage) Create(ctx context.Context, panelist *Panelist) error {
	item, err := attributevalue.MarshalMap(panelist)
	if err != nil {
		logging.Log.Errorf("PANELIST: failed to marshal panelist: %v", err)
		return err
	}

	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           &s.TableName,
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(panelist_id)"),
	})
	if err != nil {
		var cce *types.ConditionalCheckFailedException
		if errors.As(err, &cce) {
			logging.Log.Warnf("PANELIST: item with ID %s already exists", panelist.PanelistID)
			return ErrItemWithIDAlreadyExists
		}
		logging.Log.Errorf("PANELIST: failed to create panelist: %v", err)
		return err
	}
	return nil
}

func (s *DynamoPanelistStorage) Update(ctx context.Context, id string, changes Changes) (*Panelist, error) {
	key, err := panelistKey(id)
	if err != nil {
		return nil, err
	}

	var panelist Panelist
	if err := updateItem(ctx, s.Client, s.TableName, "panelist_id", key, changes, &panelist); err != nil {
		if !errors.Is(err, ErrNotFound) {
			logging.Log.Errorf("PANELIST: failed to update panelist %s: %v", id, err)
		}
		return nil, err
	}
	logging.Log.Infof("PANELIST: updated %v on panelist %s", changes.Names(), id)
	return &panelist, nil
}
