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

type TeamStorage interface {
	Get(ctx context.Context, id string) (*Team, error)
	GetAll(ctx context.Context) ([]*Team, error)
	Create(ctx context.Context, team *Team) error
	Update(ctx context.Context, id string, changes Changes) (*Team, error)
	Delete(ctx context.Context, id string) error
}

type DynamoTeamStorage struct {
	Client    DynamoAPI
	TableName string
}

func teamKey(id string) (map[string]types.AttributeValue, error) {
	return attributevalue.MarshalMap(map[string]string{"team_id": id})
}

func (s *DynamoTeamStorage) GetAll(ctx context.Context) ([]*Team, error) {
	items, err := scanAll(ctx, s.Client, s.TableName, nil)
	if err != nil {
		logging.Log.Errorf("TEAM: scan failed: %v", err)
		return nil, err
	}

	teams := make([]*Team, 0, len(items))
	if err := attributevalue.UnmarshalListOfMaps(items, &teams); err != nil {
		logging.Log.Errorf("TEAM: failed to unmarshal team list: %v", err)
		return nil, err
	}
	return teams, nil
}

func (s *DynamoTeamStorage) Get(ctx context.Context, id string) (*Team, error) {
	key, err := teamKey(id)
	if err != nil {
		logging.Log.Errorf("TEAM: failed to marshal key for ID %s: %v", id, err)
		return nil, err
	}

	out, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: &s.TableName,
		Key:       key,
	})
	if err != nil {
		logging.Log.Errorf("TEAM: GetItem for ID %s failed: %v", id, err)
		return nil, err
	}
	if out.Item == nil {
		logging.Log.Debugf("TEAM: no team found with ID %s", id)
		return nil, ErrNotFound
	}

	var team Team
	if err := attributevalue.UnmarshalMap(out.Item, &team); err != nil {
		logging.Log.Errorf("TEAM: failed to unmarshal team: %v", err)
		return nil, err
	}
	return &team, nil
}

func (s *DynamoTeamStorage) Create(ctx context.Context, team *Team) error {
	item, err := attributevalue.MarshalMap(team)
	if err != nil {
		logging.Log.Errorf("TEAM: failed to marshal team: %v", err)
		return err
	}

	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           &s.TableName,
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(team_id)"),
	})
	if err != nil {
		var cce *types.ConditionalCheckFailedException
		if errors.As(err, &cce) {
			logging.Log.Warnf("TEAM: item with ID %s already exists", team.TeamID)
			return ErrItemWithIDAlreadyExists
		}
		logging.Log.Errorf("TEAM: failed to create team: %v", err)
		return err
	}
	return nil
}

func (s *DynamoTeamStorage) Update(ctx context.Context, id string, changes Changes) (*Team, error) {
	key, err := teamKey(id)
	if err != nil {
		logging.Log.Errorf("TEAM: failed to marshal key for ID %s: %v", id, err)
		return nil, err
	}

	var team Team
	if err := updateItem(ctx, s.Client, s.TableName, "team_id", key, changes, &team); err != nil {
		if !errors.Is(err, ErrNotFound) {
			logging.Log.Errorf("TEAM: failed to update team %s: %v", id, err)
		}
		return nil, err
	}
	logging.Log.Infof("TEAM: updated %v on team %s", changes.Names(), id)
	return &team, nil
}

func (s *DynamoTeamStorage) Delete(ctx context.Context, id string) error {
	key, err := teamKey(id)
	if err != nil {
		logging.Log.Errorf("TEAM: failed to marshal delete key for ID %s: %v", id, err)
		return err
	}

	_, err = s.Client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: &s.TableName,
		Key:       key,
	})
	if err != nil {
		logging.Log.Errorf("TEAM: failed to delete team with ID %s: %v", id, err)
		return err
	}
	logging.Log.Infof("TEAM: deleted team with ID %s", id)
	return nil
}
