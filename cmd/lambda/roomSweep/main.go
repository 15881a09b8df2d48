package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/sphereplay/arena/internal/aws/storage"
	"github.com/sphereplay/arena/pkg/logging"
	"go.uber.org/zap"
)

var (
	storageClient *storage.Client
	staleAfter    time.Duration
)

func init() {
	cfg, _ := config.LoadDefaultConfig(context.TODO())
	storageClient = storage.NewClient(
		dynamodb.NewFromConfig(cfg),
		storage.Config{
			MatchRecordsTableName: aws.String(os.Getenv("MATCH_RECORDS_TABLE_NAME")),
		},
	)
	hours, err := strconv.Atoi(os.Getenv("STALE_AFTER_HOURS"))
	if err != nil || hours <= 0 {
		hours = 24
	}
	staleAfter = time.Duration(hours) * time.Hour
}

// handler tears down rooms nobody has written to within the TTL.
// Clients returning to a swept room observe record absence, the same
// terminal signal an abandon produces.
func handler(ctx context.Context) error {
	cutoff := time.Now().UTC().Add(-staleAfter)
	var lastKey map[string]types.AttributeValue
	swept := 0
	for {
		records, nextKey, err := storageClient.FetchStaleMatchRecords(ctx, cutoff, lastKey, 100)
		if err != nil {
			return fmt.Errorf("failed to fetch stale match records: %w", err)
		}
		for _, record := range records {
			if err := storageClient.DeleteMatchRecord(ctx, record.RoomId); err != nil {
				logging.Error("failed to delete stale room",
					zap.String("room_id", record.RoomId),
					zap.Error(err),
				)
				continue
			}
			swept++
		}
		if nextKey == nil {
			break
		}
		lastKey = nextKey
	}
	logging.Info("room sweep finished",
		zap.Int("swept", swept),
		zap.Time("cutoff", cutoff),
	)
	return nil
}

func main() {
	lambda.Start(handler)
}
