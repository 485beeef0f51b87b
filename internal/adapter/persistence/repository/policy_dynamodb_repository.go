package repository

import (
	"context"
	"time"

	"seguro_imovel/internal/domain/entities"
	"seguro_imovel/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultPoliciesTableName = "policies"
	policiesUserIDIndex      = "user_id-index"
)

type policyItem struct {
	ID           string  `dynamodbav:"id"`
	QuoteID      string  `dynamodbav:"quote_id"`
	UserID       string  `dynamodbav:"user_id,omitempty"`
	PolicyNumber string  `dynamodbav:"policy_number"`
	ValidFrom    string  `dynamodbav:"valid_from"`
	ValidTo      string  `dynamodbav:"valid_to"`
	Premium      float64 `dynamodbav:"premium"`
	Status       string  `dynamodbav:"status"`
	CreatedAt    string  `dynamodbav:"created_at"`
}

// PolicyDynamoRepository persists Policy entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: user_id-index (PK: user_id)
//
// Policies are insert-only here; status changes happen in the downstream
// policy-administration system.

type PolicyDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IPolicyRepository = (*PolicyDynamoRepository)(nil)

func NewPolicyDynamoRepository(ddb *dynamodb.Client) *PolicyDynamoRepository {
	return &PolicyDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("POLICIES_TABLE", defaultPoliciesTableName),
	}
}

func (r *PolicyDynamoRepository) Create(ctx context.Context, p entities.Policy) (entities.Policy, error) {
	it := toPolicyItem(p)
	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		return entities.Policy{}, err
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
		return entities.Policy{}, err
	}
	return p, nil
}

func (r *PolicyDynamoRepository) GetByID(ctx context.Context, id string) (entities.Policy, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Policy{}, err
	}
	if len(out.Item) == 0 {
		return entities.Policy{}, nil
	}

	var it policyItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Policy{}, err
	}
	return fromPolicyItem(it), nil
}

func (r *PolicyDynamoRepository) ListByUserID(ctx context.Context, userID string) ([]entities.Policy, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(policiesUserIDIndex),
		KeyConditionExpression: aws.String("user_id = :uid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":uid": &types.AttributeValueMemberS{Value: userID},
		},
	})
	if err != nil {
		return nil, err
	}

	items := make([]entities.Policy, 0, len(out.Items))
	for _, raw := range out.Items {
		var it policyItem
		if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
			return nil, err
		}
		items = append(items, fromPolicyItem(it))
	}
	return items, nil
}

func toPolicyItem(p entities.Policy) policyItem {
	return policyItem{
		ID:           p.ID,
		QuoteID:      p.QuoteID,
		UserID:       p.UserID,
		PolicyNumber: p.PolicyNumber,
		ValidFrom:    p.ValidFrom.UTC().Format(time.RFC3339Nano),
		ValidTo:      p.ValidTo.UTC().Format(time.RFC3339Nano),
		Premium:      p.Premium,
		Status:       string(p.Status),
		CreatedAt:    p.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func fromPolicyItem(it policyItem) entities.Policy {
	validFrom, _ := time.Parse(time.RFC3339Nano, it.ValidFrom)
	validTo, _ := time.Parse(time.RFC3339Nano, it.ValidTo)
	createdAt, _ := time.Parse(time.RFC3339Nano, it.CreatedAt)
	return entities.Policy{
		ID:           it.ID,
		QuoteID:      it.QuoteID,
		UserID:       it.UserID,
		PolicyNumber: it.PolicyNumber,
		ValidFrom:    validFrom,
		ValidTo:      validTo,
		Premium:      it.Premium,
		Status:       entities.PolicyStatus(it.Status),
		CreatedAt:    createdAt,
	}
}
