package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"seguro_imovel/internal/domain/entities"
	"seguro_imovel/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultQuotesTableName = "quotes"
	quotesUserIDIndex      = "user_id-index"
	quotesStatusIndex      = "status-index"
)

type quoteItem struct {
	ID         string `dynamodbav:"id"`
	UserID     string `dynamodbav:"user_id,omitempty"`
	PropertyID string `dynamodbav:"property_id,omitempty"`
	Status     string `dynamodbav:"status"`

	ExternalQuoteID string   `dynamodbav:"external_quote_id,omitempty"`
	PremiumTotal    *float64 `dynamodbav:"premium_total,omitempty"`

	Request        string `dynamodbav:"request,omitempty"`
	PaymentOptions string `dynamodbav:"payment_options,omitempty"`
	RawResponse    string `dynamodbav:"raw_response,omitempty"`

	RejectionReason string `dynamodbav:"rejection_reason,omitempty"`

	CreatedAt string `dynamodbav:"created_at"`
	UpdatedAt string `dynamodbav:"updated_at"`
}

// QuoteDynamoRepository persists Quote entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: user_id-index (PK: user_id)
//   - GSI: status-index (PK: status, SK: created_at)
//
// status-index carries created_at as sort key so the review queue comes out
// ordered without a client-side sort.

type QuoteDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IQuoteRepository = (*QuoteDynamoRepository)(nil)

func NewQuoteDynamoRepository(ddb *dynamodb.Client) *QuoteDynamoRepository {
	return &QuoteDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("QUOTES_TABLE", defaultQuotesTableName),
	}
}

func (r *QuoteDynamoRepository) Create(ctx context.Context, q entities.Quote) (entities.Quote, error) {
	it := toQuoteItem(q)
	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		return entities.Quote{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		return entities.Quote{}, err
	}
	return q, nil
}

func (r *QuoteDynamoRepository) GetByID(ctx context.Context, id string) (entities.Quote, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Quote{}, err
	}
	if len(out.Item) == 0 {
		return entities.Quote{}, nil
	}

	var it quoteItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Quote{}, err
	}
	return fromQuoteItem(it), nil
}

func (r *QuoteDynamoRepository) ListByUserID(ctx context.Context, userID string) ([]entities.Quote, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(quotesUserIDIndex),
		KeyConditionExpression: aws.String("user_id = :uid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":uid": &types.AttributeValueMemberS{Value: userID},
		},
	})
	if err != nil {
		return nil, err
	}
	return unmarshalQuotes(out.Items)
}

func (r *QuoteDynamoRepository) ListPending(ctx context.Context) ([]entities.Quote, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(quotesStatusIndex),
		KeyConditionExpression: aws.String("#status = :status"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":status": &types.AttributeValueMemberS{Value: string(entities.QuoteStatusPending)},
		},
		// Newest first for the review queue.
		ScanIndexForward: aws.Bool(false),
	})
	if err != nil {
		return nil, err
	}
	return unmarshalQuotes(out.Items)
}

// UpdateStatus transitions a quote from one status to another, applying the
// patch atomically with the transition. The conditional write is the
// compare-and-swap that serializes concurrent decisions: when the stored
// status no longer equals `from`, DynamoDB rejects the write and we report
// not-found (empty quote, nil error).
func (r *QuoteDynamoRepository) UpdateStatus(ctx context.Context, id string, from, to entities.QuoteStatus, patch entities.QuotePatch) (entities.Quote, error) {
	now := time.Now().UTC().Format(time.RFC3339Nano)

	expr := "SET #status = :to, #updated_at = :updated_at"
	names := map[string]string{
		"#status":     "status",
		"#updated_at": "updated_at",
	}
	values := map[string]types.AttributeValue{
		":from":       &types.AttributeValueMemberS{Value: string(from)},
		":to":         &types.AttributeValueMemberS{Value: string(to)},
		":updated_at": &types.AttributeValueMemberS{Value: now},
	}

	if patch.ExternalQuoteID != nil {
		expr += ", #external_quote_id = :external_quote_id"
		names["#external_quote_id"] = "external_quote_id"
		values[":external_quote_id"] = &types.AttributeValueMemberS{Value: *patch.ExternalQuoteID}
	}
	if patch.PremiumTotal != nil {
		expr += ", #premium_total = :premium_total"
		names["#premium_total"] = "premium_total"
		values[":premium_total"] = &types.AttributeValueMemberN{Value: floatToString(*patch.PremiumTotal)}
	}
	if patch.Request != nil {
		expr += ", #request = :request"
		names["#request"] = "request"
		values[":request"] = &types.AttributeValueMemberS{Value: string(patch.Request)}
	}
	if patch.PaymentOptions != nil {
		expr += ", #payment_options = :payment_options"
		names["#payment_options"] = "payment_options"
		values[":payment_options"] = &types.AttributeValueMemberS{Value: string(patch.PaymentOptions)}
	}
	if patch.RawResponse != nil {
		expr += ", #raw_response = :raw_response"
		names["#raw_response"] = "raw_response"
		values[":raw_response"] = &types.AttributeValueMemberS{Value: string(patch.RawResponse)}
	}
	if patch.RejectionReason != nil {
		expr += ", #rejection_reason = :rejection_reason"
		names["#rejection_reason"] = "rejection_reason"
		values[":rejection_reason"] = &types.AttributeValueMemberS{Value: *patch.RejectionReason}
	}

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConditionExpression:       aws.String("attribute_exists(#id) AND #status = :from"),
		UpdateExpression:          aws.String(expr),
		ExpressionAttributeValues: values,
		ExpressionAttributeNames:  mergeNames(names, map[string]string{"#id": "id"}),
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return entities.Quote{}, nil
		}
		return entities.Quote{}, err
	}
	if len(out.Attributes) == 0 {
		return entities.Quote{}, nil
	}
	var it quoteItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.Quote{}, err
	}
	return fromQuoteItem(it), nil
}

func unmarshalQuotes(raw []map[string]types.AttributeValue) ([]entities.Quote, error) {
	items := make([]entities.Quote, 0, len(raw))
	for _, m := range raw {
		var it quoteItem
		if err := attributevalue.UnmarshalMap(m, &it); err != nil {
			return nil, err
		}
		items = append(items, fromQuoteItem(it))
	}
	return items, nil
}

func toQuoteItem(q entities.Quote) quoteItem {
	return quoteItem{
		ID:              q.ID,
		UserID:          q.UserID,
		PropertyID:      q.PropertyID,
		Status:          string(q.Status),
		ExternalQuoteID: q.ExternalQuoteID,
		PremiumTotal:    q.PremiumTotal,
		Request:         string(q.Request),
		PaymentOptions:  string(q.PaymentOptions),
		RawResponse:     string(q.RawResponse),
		RejectionReason: q.RejectionReason,
		CreatedAt:       q.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt:       q.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func fromQuoteItem(it quoteItem) entities.Quote {
	createdAt, _ := time.Parse(time.RFC3339Nano, it.CreatedAt)
	updatedAt, _ := time.Parse(time.RFC3339Nano, it.UpdatedAt)
	return entities.Quote{
		ID:              it.ID,
		UserID:          it.UserID,
		PropertyID:      it.PropertyID,
		Status:          entities.QuoteStatus(it.Status),
		ExternalQuoteID: it.ExternalQuoteID,
		PremiumTotal:    it.PremiumTotal,
		Request:         rawOrNil(it.Request),
		PaymentOptions:  rawOrNil(it.PaymentOptions),
		RawResponse:     rawOrNil(it.RawResponse),
		RejectionReason: it.RejectionReason,
		CreatedAt:       createdAt,
		UpdatedAt:       updatedAt,
	}
}

func rawOrNil(s string) json.RawMessage {
	if s == "" {
		return nil
	}
	return json.RawMessage(s)
}
