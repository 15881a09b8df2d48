package storage

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/sphereplay/arena/internal/domains/entities"
)

var (
	ErrMatchRecordNotFound = fmt.Errorf("match record not found")
	ErrRoomIdTaken         = fmt.Errorf("room id taken")
	ErrVersionConflict     = fmt.Errorf("match record version conflict")
)

func (client *Client) GetMatchRecord(ctx context.Context, roomId string) (entities.MatchRecord, error) {
	output, err := client.dynamodb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: client.cfg.MatchRecordsTableName,
		Key: map[string]types.AttributeValue{
			"roomId": &types.AttributeValueMemberS{
				Value: roomId,
			},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.MatchRecord{}, err
	}
	if output.Item == nil {
		return entities.MatchRecord{}, ErrMatchRecordNotFound
	}
	var record entities.MatchRecord
	if err := attributevalue.UnmarshalMap(output.Item, &record); err != nil {
		return entities.MatchRecord{}, err
	}
	return record, nil
}

// PutMatchRecord creates a fresh record. The conditional put keeps a
// racing creation from silently overwriting an existing room.
func (client *Client) PutMatchRecord(ctx context.Context, record entities.MatchRecord) error {
	av, err := attributevalue.MarshalMap(record)
	if err != nil {
		return fmt.Errorf("failed to marshal match record map: %w", err)
	}

	_, err = client.dynamodb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           client.cfg.MatchRecordsTableName,
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(roomId)"),
	})
	if err != nil {
		var condErr *types.ConditionalCheckFailedException
		if errors.As(err, &condErr) {
			return ErrRoomIdTaken
		}
		return fmt.Errorf("failed to put match record: %w", err)
	}
	return nil
}

// UpdateMatchRecord writes the successor record as given, conditioned
// on the stored version still being the one the caller read. The whole
// record goes in one item write, so partial game states are never
// visible.
func (client *Client) UpdateMatchRecord(
	ctx context.Context,
	record entities.MatchRecord,
	expectedVersion int64,
) error {
	av, err := attributevalue.MarshalMap(record)
	if err != nil {
		return fmt.Errorf("failed to marshal match record map: %w", err)
	}

	_, err = client.dynamodb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           client.cfg.MatchRecordsTableName,
		Item:                av,
		ConditionExpression: aws.String("attribute_exists(roomId) AND version = :expected"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":expected": &types.AttributeValueMemberN{
				Value: fmt.Sprintf("%d", expectedVersion),
			},
		},
	})
	if err != nil {
		var condErr *types.ConditionalCheckFailedException
		if errors.As(err, &condErr) {
			return ErrVersionConflict
		}
		return fmt.Errorf("failed to update match record: %w", err)
	}
	return nil
}

func (client *Client) DeleteMatchRecord(ctx context.Context, roomId string) error {
	_, err := client.dynamodb.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: client.cfg.MatchRecordsTableName,
		Key: map[string]types.AttributeValue{
			"roomId": &types.AttributeValueMemberS{Value: roomId},
		},
	})
	if err != nil {
		return err
	}
	return nil
}

// FetchStaleMatchRecords scans for rooms whose last write is older than
// cutoff. Paginated with lastKey like any other scan; used by the room
// sweeper.
func (client *Client) FetchStaleMatchRecords(
	ctx context.Context,
	cutoff time.Time,
	lastKey map[string]types.AttributeValue,
	limit int32,
) (
	[]entities.MatchRecord,
	map[string]types.AttributeValue,
	error,
) {
	input := &dynamodb.ScanInput{
		TableName:        client.cfg.MatchRecordsTableName,
		FilterExpression: aws.String("updatedAt < :cutoff"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":cutoff": &types.AttributeValueMemberN{
				Value: strconv.FormatInt(cutoff.Unix(), 10),
			},
		},
		ExclusiveStartKey: lastKey,
		Limit:             aws.Int32(limit),
	}
	output, err := client.dynamodb.Scan(ctx, input)
	if err != nil {
		return nil, nil, err
	}
	var records []entities.MatchRecord
	if err := attributevalue.UnmarshalListOfMaps(output.Items, &records); err != nil {
		return nil, nil, err
	}
	return records, output.LastEvaluatedKey, nil
}
