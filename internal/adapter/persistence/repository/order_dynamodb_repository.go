package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"checkout_service/internal/domain/entities"
	"checkout_service/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultOrdersTableName = "orders"
	ordersIntentIDIndex    = "payment_intent_id-index"
	ordersCartIDIndex      = "cart_id-index"

	// correlationKeyPrefix namespaces the guard rows that enforce at most
	// one order per correlation key within the orders table.
	correlationKeyPrefix = "corr#"
)

type orderLineItem struct {
	Title     string         `dynamodbav:"title"`
	ProductID string         `dynamodbav:"product_id,omitempty"`
	VariantID string         `dynamodbav:"variant_id,omitempty"`
	Quantity  int64          `dynamodbav:"quantity"`
	UnitPrice int64          `dynamodbav:"unit_price"`
	Metadata  map[string]any `dynamodbav:"metadata,omitempty"`
}

type orderItem struct {
	ID              string          `dynamodbav:"id"`
	Email           string          `dynamodbav:"email"`
	CurrencyCode    string          `dynamodbav:"currency_code"`
	Total           int64           `dynamodbav:"total"`
	Subtotal        int64           `dynamodbav:"subtotal"`
	TaxTotal        int64           `dynamodbav:"tax_total"`
	ShippingTotal   int64           `dynamodbav:"shipping_total"`
	DiscountTotal   int64           `dynamodbav:"discount_total"`
	Items           []orderLineItem `dynamodbav:"items,omitempty"`
	PaymentIntentID string          `dynamodbav:"payment_intent_id,omitempty"`
	CartID          string          `dynamodbav:"cart_id,omitempty"`
	Metadata        map[string]any  `dynamodbav:"metadata,omitempty"`
	CreatedAt       string          `dynamodbav:"created_at"`
}

type correlationGuardItem struct {
	ID        string `dynamodbav:"id"`
	OrderID   string `dynamodbav:"order_id"`
	CreatedAt string `dynamodbav:"created_at"`
}

// OrderDynamoRepository persists Order entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: payment_intent_id-index (PK: payment_intent_id)
//   - GSI: cart_id-index (PK: cart_id)
//
// Exactly-once creation: the order row and a "corr#<key>" guard row are
// written in one transaction, each conditioned on attribute_not_exists(id).
// A cancelled transaction is surfaced as interfaces.ErrOrderConflict so the
// caller can treat the constraint violation as the idempotency signal.

type OrderDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IOrderRepository = (*OrderDynamoRepository)(nil)

func NewOrderDynamoRepository(ddb *dynamodb.Client) *OrderDynamoRepository {
	return &OrderDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("ORDERS_TABLE", defaultOrdersTableName),
	}
}

func (r *OrderDynamoRepository) CreateIdempotent(ctx context.Context, o entities.Order) (entities.Order, error) {
	it := toOrderItem(o)
	orderAV, err := attributevalue.MarshalMap(it)
	if err != nil {
		return entities.Order{}, err
	}

	key := o.CorrelationKey()
	if key == "" {
		// No correlation key at all; fall back to a conditional put on the
		// order id alone.
		_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
			TableName:                aws.String(r.tableName),
			Item:                     orderAV,
			ConditionExpression:      aws.String("attribute_not_exists(#id)"),
			ExpressionAttributeNames: map[string]string{"#id": "id"},
		})
		if err != nil {
			var condFailed *types.ConditionalCheckFailedException
			if errors.As(err, &condFailed) {
				return entities.Order{}, interfaces.ErrOrderConflict
			}
			return entities.Order{}, err
		}
		return o, nil
	}

	guardAV, err := attributevalue.MarshalMap(correlationGuardItem{
		ID:        correlationKeyPrefix + key,
		OrderID:   o.ID,
		CreatedAt: it.CreatedAt,
	})
	if err != nil {
		return entities.Order{}, err
	}

	_, err = r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				Put: &types.Put{
					TableName:                aws.String(r.tableName),
					Item:                     orderAV,
					ConditionExpression:      aws.String("attribute_not_exists(#id)"),
					ExpressionAttributeNames: map[string]string{"#id": "id"},
				},
			},
			{
				Put: &types.Put{
					TableName:                aws.String(r.tableName),
					Item:                     guardAV,
					ConditionExpression:      aws.String("attribute_not_exists(#id)"),
					ExpressionAttributeNames: map[string]string{"#id": "id"},
				},
			},
		},
	})
	if err != nil {
		if isConditionalCancellation(err) {
			return entities.Order{}, interfaces.ErrOrderConflict
		}
		return entities.Order{}, err
	}
	return o, nil
}

func (r *OrderDynamoRepository) GetByID(ctx context.Context, id string) (entities.Order, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Order{}, err
	}
	if len(out.Item) == 0 {
		return entities.Order{}, nil
	}

	var it orderItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Order{}, err
	}
	return fromOrderItem(it), nil
}

func (r *OrderDynamoRepository) GetByIntentID(ctx context.Context, intentID string) (entities.Order, error) {
	return r.queryIndex(ctx, ordersIntentIDIndex, "payment_intent_id", intentID)
}

func (r *OrderDynamoRepository) GetByCartID(ctx context.Context, cartID string) (entities.Order, error) {
	return r.queryIndex(ctx, ordersCartIDIndex, "cart_id", cartID)
}

func (r *OrderDynamoRepository) queryIndex(ctx context.Context, index, attr, value string) (entities.Order, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:                aws.String(r.tableName),
		IndexName:                aws.String(index),
		KeyConditionExpression:   aws.String("#k = :v"),
		ExpressionAttributeNames: map[string]string{"#k": attr},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":v": &types.AttributeValueMemberS{Value: value},
		},
		Limit: aws.Int32(1),
	})
	if err != nil {
		return entities.Order{}, err
	}
	if len(out.Items) == 0 {
		return entities.Order{}, nil
	}

	var it orderItem
	if err := attributevalue.UnmarshalMap(out.Items[0], &it); err != nil {
		return entities.Order{}, err
	}
	return fromOrderItem(it), nil
}

// UpdateMetadata overlays the given keys onto the order's metadata map and
// persists the merged result.
func (r *OrderDynamoRepository) UpdateMetadata(ctx context.Context, id string, metadata map[string]any) (entities.Order, error) {
	existing, err := r.GetByID(ctx, id)
	if err != nil {
		return entities.Order{}, err
	}
	if existing.ID == "" {
		return entities.Order{}, fmt.Errorf("order not found: %s", id)
	}

	merged := make(map[string]any, len(existing.Metadata)+len(metadata))
	for k, v := range existing.Metadata {
		merged[k] = v
	}
	for k, v := range metadata {
		merged[k] = v
	}

	av, err := attributevalue.Marshal(merged)
	if err != nil {
		return entities.Order{}, err
	}
	_, err = r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		UpdateExpression:         aws.String("SET #metadata = :md"),
		ExpressionAttributeNames: map[string]string{"#metadata": "metadata"},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":md": av,
		},
		ConditionExpression: aws.String("attribute_exists(id)"),
	})
	if err != nil {
		return entities.Order{}, err
	}

	existing.Metadata = merged
	return existing, nil
}

func isConditionalCancellation(err error) bool {
	var cancelled *types.TransactionCanceledException
	if !errors.As(err, &cancelled) {
		return false
	}
	for _, reason := range cancelled.CancellationReasons {
		if reason.Code != nil && *reason.Code == "ConditionalCheckFailed" {
			return true
		}
	}
	return false
}

func toOrderItem(o entities.Order) orderItem {
	items := make([]orderLineItem, 0, len(o.Items))
	for _, li := range o.Items {
		items = append(items, orderLineItem{
			Title:     li.Title,
			ProductID: li.ProductID,
			VariantID: li.VariantID,
			Quantity:  li.Quantity,
			UnitPrice: li.UnitPrice,
			Metadata:  li.Metadata,
		})
	}
	return orderItem{
		ID:              o.ID,
		Email:           o.Email,
		CurrencyCode:    o.CurrencyCode,
		Total:           o.Total,
		Subtotal:        o.Subtotal,
		TaxTotal:        o.TaxTotal,
		ShippingTotal:   o.ShippingTotal,
		DiscountTotal:   o.DiscountTotal,
		Items:           items,
		PaymentIntentID: o.PaymentIntentID,
		CartID:          o.CartID,
		Metadata:        o.Metadata,
		CreatedAt:       o.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func fromOrderItem(it orderItem) entities.Order {
	createdAt, _ := time.Parse(time.RFC3339Nano, it.CreatedAt)
	items := make([]entities.OrderItem, 0, len(it.Items))
	for _, li := range it.Items {
		items = append(items, entities.OrderItem{
			Title:     li.Title,
			ProductID: li.ProductID,
			VariantID: li.VariantID,
			Quantity:  li.Quantity,
			UnitPrice: li.UnitPrice,
			Metadata:  li.Metadata,
		})
	}
	return entities.Order{
		ID:              it.ID,
		Email:           it.Email,
		CurrencyCode:    it.CurrencyCode,
		Total:           it.Total,
		Subtotal:        it.Subtotal,
		TaxTotal:        it.TaxTotal,
		ShippingTotal:   it.ShippingTotal,
		DiscountTotal:   it.DiscountTotal,
		Items:           items,
		PaymentIntentID: it.PaymentIntentID,
		CartID:          it.CartID,
		Metadata:        it.Metadata,
		CreatedAt:       createdAt,
	}
}
