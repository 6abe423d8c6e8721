package history

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/moodlens/moodlens/internal/models"
)

const (
	MOOD_HISTORY_TABLE_NAME = "MoodHistory"

	// Item id 0 holds the monotonic id counter; real entries start at 1.
	counterItemID = 0

	putMaxRetries  = 3
	putBackoffBase = 500 * time.Millisecond
)

// DynamoStore is the managed-storage alternative to SQLite. Monotonic ids
// come from an atomic counter item updated with ADD, so concurrent inserts
// never collide.
type DynamoStore struct {
	client *dynamodb.Client
	table  string
}

// dynamoEntry mirrors HistoryEntry with dynamodbav tags for unmarshalling
// scan pages.
type dynamoEntry struct {
	ID             int64    `dynamodbav:"id"`
	Timestamp      int64    `dynamodbav:"timestamp_ns"`
	Mood           string   `dynamodbav:"mood_type"`
	SentimentScore *float64 `dynamodbav:"sentiment_score"`
	Method         string   `dynamodbav:"analysis_method"`
	TextContent    *string  `dynamodbav:"text_content"`
	Confidence     float64  `dynamodbav:"confidence"`
}

// NewDynamoStore loads AWS config and targets the given endpoint (useful for
// DynamoDB Local) when one is configured.
func NewDynamoStore(ctx context.Context, region, endpoint string) (*DynamoStore, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}

	client := dynamodb.NewFromConfig(cfg, func(o *dynamodb.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})

	slog.Info("[DynamoStore] Mood history store ready",
		slog.String("table", MOOD_HISTORY_TABLE_NAME),
		slog.String("region", region))

	return &DynamoStore{client: client, table: MOOD_HISTORY_TABLE_NAME}, nil
}

func (d *DynamoStore) Close() error {
	return nil
}

func (d *DynamoStore) Insert(ctx context.Context, entry models.HistoryEntry) (int64, error) {
	id, err := d.nextID(ctx)
	if err != nil {
		return 0, err
	}

	item := entryToItem(entry, id)

	backoff := putBackoffBase
	for attempt := 0; ; attempt++ {
		_, err = d.client.PutItem(ctx, &dynamodb.PutItemInput{
			TableName: aws.String(d.table),
			Item:      item,
		})
		if err == nil {
			return id, nil
		}
		if attempt == putMaxRetries-1 {
			break
		}

		slog.Warn("[DynamoStore] PutItem failed, retrying...",
			slog.Int("attempt", attempt+1),
			slog.String("error", err.Error()))
		time.Sleep(backoff)
		backoff *= 2
	}

	return 0, fmt.Errorf("putting history entry after %d attempts: %w", putMaxRetries, err)
}

// nextID atomically increments the counter item and returns the new value.
func (d *DynamoStore) nextID(ctx context.Context) (int64, error) {
	out, err := d.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(d.table),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberN{Value: strconv.Itoa(counterItemID)},
		},
		UpdateExpression: aws.String("ADD last_id :one"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":one": &types.AttributeValueMemberN{Value: "1"},
		},
		ReturnValues: types.ReturnValueUpdatedNew,
	})
	if err != nil {
		return 0, fmt.Errorf("incrementing id counter: %w", err)
	}

	n, ok := out.Attributes["last_id"].(*types.AttributeValueMemberN)
	if !ok {
		return 0, fmt.Errorf("id counter returned unexpected attribute %T", out.Attributes["last_id"])
	}
	return strconv.ParseInt(n.Value, 10, 64)
}

func (d *DynamoStore) Recent(ctx context.Context, limit int) ([]models.HistoryEntry, error) {
	input := &dynamodb.ScanInput{
		TableName:        aws.String(d.table),
		FilterExpression: aws.String("attribute_exists(mood_type)"),
	}

	var records []dynamoEntry
	paginator := dynamodb.NewScanPaginator(d.client, input)
	for paginator.HasMorePages() {
		out, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("scanning history: %w", err)
		}

		var page []dynamoEntry
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, fmt.Errorf("unmarshalling history page: %w", err)
		}
		records = append(records, page...)
	}

	sort.Slice(records, func(i, j int) bool {
		if records[i].Timestamp != records[j].Timestamp {
			return records[i].Timestamp > records[j].Timestamp
		}
		return records[i].ID > records[j].ID
	})
	if len(records) > limit {
		records = records[:limit]
	}

	entries := make([]models.HistoryEntry, 0, len(records))
	for _, r := range records {
		entries = append(entries, models.HistoryEntry{
			ID:             r.ID,
			Timestamp:      time.Unix(0, r.Timestamp).UTC(),
			Mood:           models.MoodLabel(r.Mood),
			SentimentScore: r.SentimentScore,
			Method:         models.AnalysisMethod(r.Method),
			TextContent:    r.TextContent,
			Confidence:     r.Confidence,
		})
	}
	return entries, nil
}

func entryToItem(entry models.HistoryEntry, id int64) map[string]types.AttributeValue {
	item := map[string]types.AttributeValue{
		"id":              &types.AttributeValueMemberN{Value: strconv.FormatInt(id, 10)},
		"timestamp_ns":    &types.AttributeValueMemberN{Value: strconv.FormatInt(entry.Timestamp.UnixNano(), 10)},
		"mood_type":       &types.AttributeValueMemberS{Value: string(entry.Mood)},
		"analysis_method": &types.AttributeValueMemberS{Value: string(entry.Method)},
		"confidence":      &types.AttributeValueMemberN{Value: strconv.FormatFloat(entry.Confidence, 'f', -1, 64)},
	}
	if entry.SentimentScore != nil {
		item["sentiment_score"] = &types.AttributeValueMemberN{
			Value: strconv.FormatFloat(*entry.SentimentScore, 'f', -1, 64),
		}
	}
	if entry.TextContent != nil {
		item["text_content"] = &types.AttributeValueMemberS{Value: *entry.TextContent}
	}
	return item
}
