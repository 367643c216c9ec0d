package storage

import (
	"context"
	"fmt"

	"github.com/alex-pricope/hackathon-judging-api/logging"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// batchWriteLimit is the DynamoDB cap on requests per BatchWriteItem call.
const batchWriteLimit = 25

type ScoreStorage interface {
	Put(ctx context.Context, score *Score) error
	GetAll(ctx context.Context) ([]*Score, error)
	GetByTeam(ctx context.Context, teamID string) ([]*Score, error)
	DeleteByTeam(ctx context.Context, teamID string) (int, error)
}

type DynamoScoreStorage struct {
	Client    DynamoAPI
	TableName string
}

func (s *DynamoScoreStorage) Put(ctx context.Context, score *Score) error {
	item, err := attributevalue.MarshalMap(score)
	if err != nil {
		logging.Log.Errorf("SCORE: failed to marshal score: %v", err)
		return err
	}

	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: &s.TableName,
		Item:      item,
	})
	if err != nil {
		logging.Log.Errorf("SCORE: failed to put score for team %s by %s: %v", score.TeamID, score.PanelistID, err)
		return err
	}
	return nil
}

func (s *DynamoScoreStorage) GetAll(ctx context.Context) ([]*Score, error) {
	items, err := scanAll(ctx, s.Client, s.TableName, nil)
	if err != nil {
		logging.Log.Errorf("SCORE: scan failed: %v", err)
		return nil, err
	}

	scores := make([]*Score, 0, len(items))
	if err := attributevalue.UnmarshalListOfMaps(items, &scores); err != nil {
		logging.Log.Errorf("SCORE: failed to unmarshal score list: %v", err)
		return nil, err
	}
	return scores, nil
}

func (s *DynamoScoreStorage) GetByTeam(ctx context.Context, teamID string) ([]*Score, error) {
	paginator := dynamodb.NewQueryPaginator(s.Client, &dynamodb.QueryInput{
		TableName:              &s.TableName,
		KeyConditionExpression: aws.String("team_id = :tid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":tid": &types.AttributeValueMemberS{Value: teamID},
		},
	})

	var items []map[string]types.AttributeValue
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			logging.Log.Errorf("SCORE: failed to query scores for team %s: %v", teamID, err)
			return nil, err
		}
		items = append(items, page.Items...)
	}

	scores := make([]*Score, 0, len(items))
	if err := attributevalue.UnmarshalListOfMaps(items, &scores); err != nil {
		logging.Log.Errorf("SCORE: failed to unmarshal scores for team %s: %v", teamID, err)
		return nil, err
	}
	return scores, nil
}

// DeleteByTeam removes every score of a team and returns how many were deleted.
func (s *DynamoScoreStorage) DeleteByTeam(ctx context.Context, teamID string) (int, error) {
	scores, err := s.GetByTeam(ctx, teamID)
	if err != nil {
		return 0, err
	}

	writeRequests := make([]types.WriteRequest, 0, len(scores))
	for _, score := range scores {
		writeRequests = append(writeRequests, types.WriteRequest{
			DeleteRequest: &types.DeleteRequest{
				Key: map[string]types.AttributeValue{
					"team_id":     &types.AttributeValueMemberS{Value: score.TeamID},
					"panelist_id": &types.AttributeValueMemberS{Value: score.PanelistID},
				},
			},
		})
	}

	deleted := 0
	for i := 0; i < len(writeRequests); i += batchWriteLimit {
		end := min(i+batchWriteLimit, len(writeRequests))
		out, err := s.Client.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{
			RequestItems: map[string][]types.WriteRequest{
				s.TableName: writeRequests[i:end],
			},
		})
		if err != nil {
			logging.Log.Errorf("SCORE: batch delete failed for team %s: %v", teamID, err)
			return deleted, err
		}
		if unprocessed := len(out.UnprocessedItems[s.TableName]); unprocessed > 0 {
			deleted += end - i - unprocessed
			return deleted, fmt.Errorf("%d scores of team %s were not deleted", unprocessed, teamID)
		}
		deleted += end - i
		logging.Log.Infof("SCORE: deleted batch of %d scores for team %s", end-i, teamID)
	}

	return deleted, nil
}
