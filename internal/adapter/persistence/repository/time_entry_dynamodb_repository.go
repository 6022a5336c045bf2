package repository

import (
	"context"

	"erp_invoicing/internal/domain/entities"
	"erp_invoicing/internal/domain/invoicing"
	"erp_invoicing/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultTimeEntriesTableName = "time_entries"
	timeEntriesOrderIDIndex     = "order_id-index"

	// DynamoDB limits.
	maxTransactItems = 100
	maxBatchGetKeys  = 100
)

type timeEntryItem struct {
	ID              string `dynamodbav:"id"`
	OrderID         string `dynamodbav:"order_id,omitempty"`
	CustomerID      string `dynamodbav:"customer_id,omitempty"`
	Description     string `dynamodbav:"description"`
	Date            string `dynamodbav:"date"`
	DurationMinutes int    `dynamodbav:"duration_minutes"`
	Billed          bool   `dynamodbav:"billed"`
	InvoiceID       string `dynamodbav:"invoice_id,omitempty"`
}

// TimeEntryDynamoRepository is the DynamoDB time-entry ledger.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: order_id-index (PK: order_id)
//
// Billing flags are flipped inside a single TransactWriteItems call so a claim either
// bills every entry or none.

type TimeEntryDynamoRepository struct {
	ddb       dynamoAPI
	tableName string
}

var _ interfaces.ITimeEntryLedger = (*TimeEntryDynamoRepository)(nil)

func NewTimeEntryDynamoRepository(ddb dynamoAPI, tableName string) *TimeEntryDynamoRepository {
	return &TimeEntryDynamoRepository{
		ddb:       ddb,
		tableName: tableOrDefault(tableName, defaultTimeEntriesTableName),
	}
}

func (r *TimeEntryDynamoRepository) ListUnbilled(ctx context.Context, orderID string) ([]entities.TimeEntry, error) {
	values := map[string]types.AttributeValue{
		":false": &types.AttributeValueMemberBOOL{Value: false},
	}
	names := map[string]string{"#billed": "billed"}

	var raw []map[string]types.AttributeValue
	if orderID != "" {
		values[":oid"] = &types.AttributeValueMemberS{Value: orderID}
		p := dynamodb.NewQueryPaginator(r.ddb, &dynamodb.QueryInput{
			TableName:                 aws.String(r.tableName),
			IndexName:                 aws.String(timeEntriesOrderIDIndex),
			KeyConditionExpression:    aws.String("order_id = :oid"),
			FilterExpression:          aws.String("#billed = :false"),
			ExpressionAttributeValues: values,
			ExpressionAttributeNames:  names,
		})
		for p.HasMorePages() {
			page, err := p.NextPage(ctx)
			if err != nil {
				return nil, err
			}
			raw = append(raw, page.Items...)
		}
	} else {
		p := dynamodb.NewScanPaginator(r.ddb, &dynamodb.ScanInput{
			TableName:                 aws.String(r.tableName),
			FilterExpression:          aws.String("#billed = :false"),
			ExpressionAttributeValues: values,
			ExpressionAttributeNames:  names,
		})
		for p.HasMorePages() {
			page, err := p.NextPage(ctx)
			if err != nil {
				return nil, err
			}
			raw = append(raw, page.Items...)
		}
	}
	return unmarshalTimeEntries(raw)
}

// GetByIDs reads the entries with strongly consistent reads. Unknown ids are skipped.
func (r *TimeEntryDynamoRepository) GetByIDs(ctx context.Context, ids []string) ([]entities.TimeEntry, error) {
	var raw []map[string]types.AttributeValue
	for start := 0; start < len(ids); start += maxBatchGetKeys {
		end := min(start+maxBatchGetKeys, len(ids))
		keys := make([]map[string]types.AttributeValue, 0, end-start)
		seen := map[string]bool{}
		for _, id := range ids[start:end] {
			if seen[id] {
				continue
			}
			seen[id] = true
			keys = append(keys, idKey(id))
		}

		request := map[string]types.KeysAndAttributes{
			r.tableName: {Keys: keys, ConsistentRead: aws.Bool(true)},
		}
		for len(request) > 0 {
			out, err := r.ddb.BatchGetItem(ctx, &dynamodb.BatchGetItemInput{RequestItems: request})
			if err != nil {
				return nil, err
			}
			raw = append(raw, out.Responses[r.tableName]...)
			request = out.UnprocessedKeys
		}
	}
	return unmarshalTimeEntries(raw)
}

func (r *TimeEntryDynamoRepository) MarkBilled(ctx context.Context, ids []string, invoiceID string) error {
	if len(ids) == 0 {
		return nil
	}
	if len(ids) > maxTransactItems {
		return invoicing.NewValidationError("time_entry_ids", "too many time entries for one invoice")
	}

	items := make([]types.TransactWriteItem, 0, len(ids))
	for _, id := range ids {
		items = append(items, types.TransactWriteItem{
			Update: &types.Update{
				TableName:           aws.String(r.tableName),
				Key:                 idKey(id),
				ConditionExpression: aws.String("attribute_exists(#id) AND (#billed = :false OR #invoice_id = :inv)"),
				UpdateExpression:    aws.String("SET #billed = :true, #invoice_id = :inv"),
				ExpressionAttributeNames: map[string]string{
					"#id":         "id",
					"#billed":     "billed",
					"#invoice_id": "invoice_id",
				},
				ExpressionAttributeValues: map[string]types.AttributeValue{
					":true":  &types.AttributeValueMemberBOOL{Value: true},
					":false": &types.AttributeValueMemberBOOL{Value: false},
					":inv":   &types.AttributeValueMemberS{Value: invoiceID},
				},
			},
		})
	}

	_, err := r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{TransactItems: items})
	if err != nil {
		return billingConflict(err, ids)
	}
	return nil
}

func (r *TimeEntryDynamoRepository) MarkUnbilled(ctx context.Context, ids []string) error {
	for start := 0; start < len(ids); start += maxTransactItems {
		end := min(start+maxTransactItems, len(ids))
		items := make([]types.TransactWriteItem, 0, end-start)
		for _, id := range ids[start:end] {
			items = append(items, types.TransactWriteItem{
				Update: &types.Update{
					TableName:           aws.String(r.tableName),
					Key:                 idKey(id),
					ConditionExpression: aws.String("attribute_exists(#id)"),
					UpdateExpression:    aws.String("SET #billed = :false REMOVE #invoice_id"),
					ExpressionAttributeNames: map[string]string{
						"#id":         "id",
						"#billed":     "billed",
						"#invoice_id": "invoice_id",
					},
					ExpressionAttributeValues: map[string]types.AttributeValue{
						":false": &types.AttributeValueMemberBOOL{Value: false},
					},
				},
			})
		}
		if _, err := r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{TransactItems: items}); err != nil {
			return err
		}
	}
	return nil
}

func (r *TimeEntryDynamoRepository) Save(ctx context.Context, e entities.TimeEntry) (entities.TimeEntry, error) {
	av, err := attributevalue.MarshalMap(toTimeEntryItem(e))
	if err != nil {
		return entities.TimeEntry{}, err
	}
	if _, err := r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	}); err != nil {
		return entities.TimeEntry{}, err
	}
	return e, nil
}

// billingConflict turns a cancelled transaction into a ConflictError naming the first
// entry whose guard failed.
func billingConflict(err error, ids []string) error {
	tce, ok := asTransactionCanceled(err)
	if !ok {
		return err
	}
	for i, reason := range tce.CancellationReasons {
		if aws.ToString(reason.Code) == "ConditionalCheckFailed" && i < len(ids) {
			return invoicing.NewConflictError("time entry", ids[i], "missing or already billed on another invoice")
		}
	}
	return invoicing.NewConflictError("time entry", "", "billing transaction was cancelled, retry")
}

func toTimeEntryItem(e entities.TimeEntry) timeEntryItem {
	return timeEntryItem{
		ID:              e.ID,
		OrderID:         e.OrderID,
		CustomerID:      e.CustomerID,
		Description:     e.Description,
		Date:            formatTime(e.Date),
		DurationMinutes: e.DurationMinutes,
		Billed:          e.Billed,
		InvoiceID:       e.InvoiceID,
	}
}

func fromTimeEntryItem(it timeEntryItem) entities.TimeEntry {
	return entities.TimeEntry{
		ID:              it.ID,
		OrderID:         it.OrderID,
		CustomerID:      it.CustomerID,
		Description:     it.Description,
		Date:            parseTime(it.Date),
		DurationMinutes: it.DurationMinutes,
		Billed:          it.Billed,
		InvoiceID:       it.InvoiceID,
	}
}

func unmarshalTimeEntries(raw []map[string]types.AttributeValue) ([]entities.TimeEntry, error) {
	out := make([]entities.TimeEntry, 0, len(raw))
	for _, item := range raw {
		var it timeEntryItem
		if err := attributevalue.UnmarshalMap(item, &it); err != nil {
			return nil, err
		}
		out = append(out, fromTimeEntryItem(it))
	}
	return out, nil
}
