package repository

import (
	"context"
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
	defaultPropertiesTableName = "properties"
	propertiesUserIDIndex      = "user_id-index"
)

type propertyItem struct {
	ID     string `dynamodbav:"id"`
	UserID string `dynamodbav:"user_id"`

	OwnerName     string `dynamodbav:"owner_name"`
	OwnerDocument string `dynamodbav:"owner_document"`

	Type             string `dynamodbav:"type"`
	ConstructionType string `dynamodbav:"construction_type,omitempty"`

	Address  string `dynamodbav:"address"`
	Number   string `dynamodbav:"number,omitempty"`
	District string `dynamodbav:"district,omitempty"`
	City     string `dynamodbav:"city"`
	State    string `dynamodbav:"state"`
	ZipCode  string `dynamodbav:"zip_code"`

	ConstructionYear *int     `dynamodbav:"construction_year,omitempty"`
	Area             *float64 `dynamodbav:"area,omitempty"`
	EstimatedValue   *float64 `dynamodbav:"estimated_value,omitempty"`

	RiskCategory string `dynamodbav:"risk_category,omitempty"`

	CreatedAt string `dynamodbav:"created_at"`
	UpdatedAt string `dynamodbav:"updated_at"`
}

// PropertyDynamoRepository persists Property entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: user_id-index (PK: user_id)

type PropertyDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IPropertyRepository = (*PropertyDynamoRepository)(nil)

func NewPropertyDynamoRepository(ddb *dynamodb.Client) *PropertyDynamoRepository {
	return &PropertyDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("PROPERTIES_TABLE", defaultPropertiesTableName),
	}
}

func (r *PropertyDynamoRepository) Create(ctx context.Context, p entities.Property) (entities.Property, error) {
	it := toPropertyItem(p)
	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		return entities.Property{}, err
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
		return entities.Property{}, err
	}
	return p, nil
}

func (r *PropertyDynamoRepository) GetByID(ctx context.Context, id string) (entities.Property, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Property{}, err
	}
	if len(out.Item) == 0 {
		return entities.Property{}, nil
	}

	var it propertyItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Property{}, err
	}
	return fromPropertyItem(it), nil
}

func (r *PropertyDynamoRepository) ListByUserID(ctx context.Context, userID string) ([]entities.Property, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(propertiesUserIDIndex),
		KeyConditionExpression: aws.String("user_id = :uid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":uid": &types.AttributeValueMemberS{Value: userID},
		},
	})
	if err != nil {
		return nil, err
	}

	items := make([]entities.Property, 0, len(out.Items))
	for _, raw := range out.Items {
		var it propertyItem
		if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
			return nil, err
		}
		items = append(items, fromPropertyItem(it))
	}
	return items, nil
}

// Update replaces the whole item; the condition keeps us from resurrecting
// a property that was deleted between the usecase read and this write.
func (r *PropertyDynamoRepository) Update(ctx context.Context, p entities.Property) (entities.Property, error) {
	it := toPropertyItem(p)
	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		return entities.Property{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return entities.Property{}, nil
		}
		return entities.Property{}, err
	}
	return p, nil
}

func (r *PropertyDynamoRepository) Delete(ctx context.Context, id string) error {
	_, err := r.ddb.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
	})
	return err
}

func toPropertyItem(p entities.Property) propertyItem {
	return propertyItem{
		ID:               p.ID,
		UserID:           p.UserID,
		OwnerName:        p.OwnerName,
		OwnerDocument:    p.OwnerDocument,
		Type:             p.Type,
		ConstructionType: p.ConstructionType,
		Address:          p.Address,
		Number:           p.Number,
		District:         p.District,
		City:             p.City,
		State:            p.State,
		ZipCode:          p.ZipCode,
		ConstructionYear: p.ConstructionYear,
		Area:             p.Area,
		EstimatedValue:   p.EstimatedValue,
		RiskCategory:     string(p.RiskCategory),
		CreatedAt:        p.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt:        p.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func fromPropertyItem(it propertyItem) entities.Property {
	createdAt, _ := time.Parse(time.RFC3339Nano, it.CreatedAt)
	updatedAt, _ := time.Parse(time.RFC3339Nano, it.UpdatedAt)
	return entities.Property{
		ID:               it.ID,
		UserID:           it.UserID,
		OwnerName:        it.OwnerName,
		OwnerDocument:    it.OwnerDocument,
		Type:             it.Type,
		ConstructionType: it.ConstructionType,
		Address:          it.Address,
		Number:           it.Number,
		District:         it.District,
		City:             it.City,
		State:            it.State,
		ZipCode:          it.ZipCode,
		ConstructionYear: it.ConstructionYear,
		Area:             it.Area,
		EstimatedValue:   it.EstimatedValue,
		RiskCategory:     entities.RiskCategory(it.RiskCategory),
		CreatedAt:        createdAt,
		UpdatedAt:        updatedAt,
	}
}
