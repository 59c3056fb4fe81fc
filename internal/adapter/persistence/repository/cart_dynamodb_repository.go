package repository

import (
	"context"

	"checkout_service/internal/domain/entities"
	"checkout_service/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const defaultCartsTableName = "carts"

type cartAddressItem struct {
	FirstName   string `dynamodbav:"first_name"`
	LastName    string `dynamodbav:"last_name"`
	Address1    string `dynamodbav:"address_1"`
	Address2    string `dynamodbav:"address_2,omitempty"`
	City        string `dynamodbav:"city"`
	Province    string `dynamodbav:"province,omitempty"`
	PostalCode  string `dynamodbav:"postal_code"`
	CountryCode string `dynamodbav:"country_code"`
	Phone       string `dynamodbav:"phone,omitempty"`
}

type paymentSessionItem struct {
	ID         string            `dynamodbav:"id"`
	ProviderID string            `dynamodbav:"provider_id"`
	Status     string            `dynamodbav:"status"`
	Data       map[string]string `dynamodbav:"data,omitempty"`
}

type paymentCollectionItem struct {
	ID              string               `dynamodbav:"id"`
	CurrencyCode    string               `dynamodbav:"currency_code"`
	Amount          int64                `dynamodbav:"amount"`
	Metadata        map[string]string    `dynamodbav:"metadata,omitempty"`
	PaymentSessions []paymentSessionItem `dynamodbav:"payment_sessions,omitempty"`
}

type cartLineItem struct {
	Title     string `dynamodbav:"title"`
	ProductID string `dynamodbav:"product_id,omitempty"`
	VariantID string `dynamodbav:"variant_id,omitempty"`
	Quantity  int64  `dynamodbav:"quantity"`
	UnitPrice int64  `dynamodbav:"unit_price"`
}

type cartItem struct {
	ID                string                 `dynamodbav:"id"`
	Email             string                 `dynamodbav:"email"`
	CurrencyCode      string                 `dynamodbav:"currency_code"`
	Total             int64                  `dynamodbav:"total"`
	ShippingAddress   *cartAddressItem       `dynamodbav:"shipping_address,omitempty"`
	BillingAddress    *cartAddressItem       `dynamodbav:"billing_address,omitempty"`
	Items             []cartLineItem         `dynamodbav:"items,omitempty"`
	PaymentCollection *paymentCollectionItem `dynamodbav:"payment_collection,omitempty"`
}

// CartDynamoRepository reads carts from DynamoDB. Carts are owned by the
// storefront; this repository never writes anything but payment-collection
// metadata.
//
// Table requirements:
//   - PK: id (string)

type CartDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.ICartRepository = (*CartDynamoRepository)(nil)

func NewCartDynamoRepository(ddb *dynamodb.Client) *CartDynamoRepository {
	return &CartDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("CARTS_TABLE", defaultCartsTableName),
	}
}

// GetSnapshot fetches only the reconciliation field set. Line items are
// deliberately excluded; nested relations are the expensive part of the read.
func (r *CartDynamoRepository) GetSnapshot(ctx context.Context, cartID string) (entities.Cart, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: cartID},
		},
		ProjectionExpression: aws.String("#id, #email, #currency_code, #total, #payment_collection"),
		ExpressionAttributeNames: map[string]string{
			"#id":                 "id",
			"#email":              "email",
			"#currency_code":      "currency_code",
			"#total":              "total",
			"#payment_collection": "payment_collection",
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Cart{}, err
	}
	if len(out.Item) == 0 {
		return entities.Cart{}, nil
	}

	var it cartItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Cart{}, err
	}
	return fromCartItem(it), nil
}

func (r *CartDynamoRepository) ListItems(ctx context.Context, cartID string) ([]entities.CartItem, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: cartID},
		},
		ProjectionExpression:     aws.String("#items"),
		ExpressionAttributeNames: map[string]string{"#items": "items"},
		ConsistentRead:           aws.Bool(true),
	})
	if err != nil {
		return nil, err
	}
	if len(out.Item) == 0 {
		return nil, nil
	}

	var it cartItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return nil, err
	}
	items := make([]entities.CartItem, 0, len(it.Items))
	for _, li := range it.Items {
		items = append(items, entities.CartItem{
			Title:     li.Title,
			ProductID: li.ProductID,
			VariantID: li.VariantID,
			Quantity:  li.Quantity,
			UnitPrice: li.UnitPrice,
		})
	}
	return items, nil
}

// MergePaymentCollectionMetadata reads the current metadata map, overlays the
// given keys, and writes the merged map back. Not atomic; callers treat this
// as best-effort bookkeeping.
func (r *CartDynamoRepository) MergePaymentCollectionMetadata(ctx context.Context, cartID string, metadata map[string]string) error {
	cart, err := r.GetSnapshot(ctx, cartID)
	if err != nil {
		return err
	}
	if cart.ID == "" || cart.PaymentCollection == nil {
		return nil
	}

	merged := make(map[string]string, len(cart.PaymentCollection.Metadata)+len(metadata))
	for k, v := range cart.PaymentCollection.Metadata {
		merged[k] = v
	}
	for k, v := range metadata {
		merged[k] = v
	}

	av, err := attributevalue.Marshal(merged)
	if err != nil {
		return err
	}
	_, err = r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: cartID},
		},
		UpdateExpression: aws.String("SET #payment_collection.#metadata = :md"),
		ExpressionAttributeNames: map[string]string{
			"#payment_collection": "payment_collection",
			"#metadata":           "metadata",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":md": av,
		},
		ConditionExpression: aws.String("attribute_exists(#payment_collection)"),
	})
	return err
}

func fromCartItem(it cartItem) entities.Cart {
	c := entities.Cart{
		ID:           it.ID,
		Email:        it.Email,
		CurrencyCode: it.CurrencyCode,
		Total:        it.Total,
	}
	if it.ShippingAddress != nil {
		addr := fromCartAddressItem(*it.ShippingAddress)
		c.ShippingAddress = &addr
	}
	if it.BillingAddress != nil {
		addr := fromCartAddressItem(*it.BillingAddress)
		c.BillingAddress = &addr
	}
	for _, li := range it.Items {
		c.Items = append(c.Items, entities.CartItem{
			Title:     li.Title,
			ProductID: li.ProductID,
			VariantID: li.VariantID,
			Quantity:  li.Quantity,
			UnitPrice: li.UnitPrice,
		})
	}
	if it.PaymentCollection != nil {
		pc := &entities.PaymentCollection{
			ID:           it.PaymentCollection.ID,
			CurrencyCode: it.PaymentCollection.CurrencyCode,
			Amount:       it.PaymentCollection.Amount,
			Metadata:     it.PaymentCollection.Metadata,
		}
		for _, s := range it.PaymentCollection.PaymentSessions {
			pc.PaymentSessions = append(pc.PaymentSessions, entities.PaymentSession{
				ID:         s.ID,
				ProviderID: s.ProviderID,
				Status:     entities.SessionStatus(s.Status),
				Data:       s.Data,
			})
		}
		c.PaymentCollection = pc
	}
	return c
}

func fromCartAddressItem(it cartAddressItem) entities.Address {
	return entities.Address{
		FirstName:   it.FirstName,
		LastName:    it.LastName,
		Address1:    it.Address1,
		Address2:    it.Address2,
		City:        it.City,
		Province:    it.Province,
		PostalCode:  it.PostalCode,
		CountryCode: it.CountryCode,
		Phone:       it.Phone,
	}
}
