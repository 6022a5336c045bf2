package repository

import (
	"context"

	"erp_invoicing/internal/domain/entities"
	"erp_invoicing/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

const (
	defaultCustomersTableName = "customers"
	defaultOrdersTableName    = "orders"
)

type customerItem struct {
	ID      string `dynamodbav:"id"`
	Name    string `dynamodbav:"name"`
	Email   string `dynamodbav:"email,omitempty"`
	Address string `dynamodbav:"address,omitempty"`
}

type orderItem struct {
	ID         string         `dynamodbav:"id"`
	CustomerID string         `dynamodbav:"customer_id"`
	Title      string         `dynamodbav:"title"`
	Items      []lineItemItem `dynamodbav:"items"`
}

// CustomerDynamoRepository and OrderDynamoRepository are thin lookups; both tables use
// PK id (string).

type CustomerDynamoRepository struct {
	ddb       dynamoAPI
	tableName string
}

var _ interfaces.ICustomerDirectory = (*CustomerDynamoRepository)(nil)

func NewCustomerDynamoRepository(ddb dynamoAPI, tableName string) *CustomerDynamoRepository {
	return &CustomerDynamoRepository{ddb: ddb, tableName: tableOrDefault(tableName, defaultCustomersTableName)}
}

func (r *CustomerDynamoRepository) Get(ctx context.Context, id string) (entities.Customer, error) {
	var it customerItem
	found, err := getByID(ctx, r.ddb, r.tableName, id, &it)
	if err != nil || !found {
		return entities.Customer{}, err
	}
	return entities.Customer{ID: it.ID, Name: it.Name, Email: it.Email, Address: it.Address}, nil
}

func (r *CustomerDynamoRepository) Save(ctx context.Context, c entities.Customer) (entities.Customer, error) {
	err := put(ctx, r.ddb, r.tableName, customerItem{ID: c.ID, Name: c.Name, Email: c.Email, Address: c.Address})
	if err != nil {
		return entities.Customer{}, err
	}
	return c, nil
}

type OrderDynamoRepository struct {
	ddb       dynamoAPI
	tableName string
}

var _ interfaces.IOrderCatalog = (*OrderDynamoRepository)(nil)

func NewOrderDynamoRepository(ddb dynamoAPI, tableName string) *OrderDynamoRepository {
	return &OrderDynamoRepository{ddb: ddb, tableName: tableOrDefault(tableName, defaultOrdersTableName)}
}

func (r *OrderDynamoRepository) Get(ctx context.Context, id string) (entities.Order, error) {
	var it orderItem
	found, err := getByID(ctx, r.ddb, r.tableName, id, &it)
	if err != nil || !found {
		return entities.Order{}, err
	}
	return entities.Order{ID: it.ID, CustomerID: it.CustomerID, Title: it.Title, Items: fromLineItemItems(it.Items)}, nil
}

func (r *OrderDynamoRepository) Save(ctx context.Context, o entities.Order) (entities.Order, error) {
	err := put(ctx, r.ddb, r.tableName, orderItem{ID: o.ID, CustomerID: o.CustomerID, Title: o.Title, Items: toLineItemItems(o.Items)})
	if err != nil {
		return entities.Order{}, err
	}
	return o, nil
}

// getByID reads one item into out and reports whether it existed.
func getByID(ctx context.Context, ddb dynamoAPI, table, id string, out any) (bool, error) {
	res, err := ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(table),
		Key:            idKey(id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return false, err
	}
	if len(res.Item) == 0 {
		return false, nil
	}
	return true, attributevalue.UnmarshalMap(res.Item, out)
}

// put is an unconditional upsert.
func put(ctx context.Context, ddb dynamoAPI, table string, item any) error {
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return err
	}
	_, err = ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(table),
		Item:      av,
	})
	return err
}
