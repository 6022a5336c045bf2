package repository

import (
	"context"
	"sort"
	"strconv"

	"erp_invoicing/internal/domain/entities"
	"erp_invoicing/internal/domain/invoicing"
	"erp_invoicing/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultInvoicesTableName        = "invoices"
	defaultInvoiceCountersTableName = "invoice_counters"
	invoicesNumberIndex             = "invoice_number-index"
	invoicesCustomerIDIndex         = "customer_id-index"
)

type invoiceItem struct {
	ID              string            `dynamodbav:"id"`
	InvoiceNumber   string            `dynamodbav:"invoice_number"`
	CustomerID      string            `dynamodbav:"customer_id"`
	OrderID         string            `dynamodbav:"order_id,omitempty"`
	Items           []lineItemItem    `dynamodbav:"items"`
	TaxRatePercent  string            `dynamodbav:"tax_rate_percent"`
	Subtotal        string            `dynamodbav:"subtotal"`
	TaxAmount       string            `dynamodbav:"tax_amount"`
	TotalAmount     string            `dynamodbav:"total_amount"`
	PaymentSchedule string            `dynamodbav:"payment_schedule"`
	Installments    []installmentItem `dynamodbav:"installments,omitempty"`
	Status          string            `dynamodbav:"status"`
	IssueDate       string            `dynamodbav:"issue_date"`
	DueDate         string            `dynamodbav:"due_date"`
	SentAt          string            `dynamodbav:"sent_at,omitempty"`
	TimeEntryIDs    []string          `dynamodbav:"time_entry_ids,omitempty"`
	Notes           string            `dynamodbav:"notes,omitempty"`
	Version         int64             `dynamodbav:"version"`
	CreatedAt       string            `dynamodbav:"created_at"`
	UpdatedAt       string            `dynamodbav:"updated_at"`
}

type installmentItem struct {
	Description string `dynamodbav:"description"`
	Percentage  string `dynamodbav:"percentage"`
	Amount      string `dynamodbav:"amount"`
	DueDate     string `dynamodbav:"due_date"`
	IsPaid      bool   `dynamodbav:"is_paid"`
	PaidDate    string `dynamodbav:"paid_date,omitempty"`
}

// InvoiceDynamoRepository persists Invoice entities in DynamoDB.
//
// Table requirements:
//   - invoices: PK id (string)
//   - GSI: invoice_number-index (PK: invoice_number)
//   - GSI: customer_id-index (PK: customer_id)
//   - invoice_counters: PK id (string), one item per year holding an atomic "seq"
//
// Every write after Create is conditioned on the stored version.

type InvoiceDynamoRepository struct {
	ddb          dynamoAPI
	tableName    string
	countersName string
}

var _ interfaces.IInvoiceRepository = (*InvoiceDynamoRepository)(nil)

func NewInvoiceDynamoRepository(ddb dynamoAPI, tableName, countersTableName string) *InvoiceDynamoRepository {
	return &InvoiceDynamoRepository{
		ddb:          ddb,
		tableName:    tableOrDefault(tableName, defaultInvoicesTableName),
		countersName: tableOrDefault(countersTableName, defaultInvoiceCountersTableName),
	}
}

func (r *InvoiceDynamoRepository) Create(ctx context.Context, inv entities.Invoice) (entities.Invoice, error) {
	av, err := attributevalue.MarshalMap(toInvoiceItem(inv))
	if err != nil {
		return entities.Invoice{}, err
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
		if isConditionalCheckFailed(err) {
			return entities.Invoice{}, invoicing.NewConflictError("invoice", inv.ID, "already exists")
		}
		return entities.Invoice{}, err
	}
	return inv, nil
}

func (r *InvoiceDynamoRepository) GetByID(ctx context.Context, id string) (entities.Invoice, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            idKey(id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Invoice{}, err
	}
	if len(out.Item) == 0 {
		return entities.Invoice{}, nil
	}

	var it invoiceItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Invoice{}, err
	}
	return fromInvoiceItem(it), nil
}

func (r *InvoiceDynamoRepository) GetByNumber(ctx context.Context, number string) (entities.Invoice, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(invoicesNumberIndex),
		KeyConditionExpression: aws.String("invoice_number = :num"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":num": &types.AttributeValueMemberS{Value: number},
		},
		Limit: aws.Int32(1),
	})
	if err != nil {
		return entities.Invoice{}, err
	}
	if len(out.Items) == 0 {
		return entities.Invoice{}, nil
	}

	var it invoiceItem
	if err := attributevalue.UnmarshalMap(out.Items[0], &it); err != nil {
		return entities.Invoice{}, err
	}
	return fromInvoiceItem(it), nil
}

// List queries the customer index when a customer is given and scans otherwise.
// Results are ordered by issue date, newest first.
func (r *InvoiceDynamoRepository) List(ctx context.Context, filter interfaces.InvoiceFilter) ([]entities.Invoice, error) {
	var filterExpr *string
	values := map[string]types.AttributeValue{}
	names := map[string]string{}
	if filter.Status != "" {
		filterExpr = aws.String("#status = :status")
		values[":status"] = &types.AttributeValueMemberS{Value: string(filter.Status)}
		names["#status"] = "status"
	}

	var raw []map[string]types.AttributeValue
	if filter.CustomerID != "" {
		values[":cid"] = &types.AttributeValueMemberS{Value: filter.CustomerID}
		p := dynamodb.NewQueryPaginator(r.ddb, &dynamodb.QueryInput{
			TableName:                 aws.String(r.tableName),
			IndexName:                 aws.String(invoicesCustomerIDIndex),
			KeyConditionExpression:    aws.String("customer_id = :cid"),
			FilterExpression:          filterExpr,
			ExpressionAttributeValues: values,
			ExpressionAttributeNames:  nonEmptyNames(names),
		})
		for p.HasMorePages() {
			page, err := p.NextPage(ctx)
			if err != nil {
				return nil, err
			}
			raw = append(raw, page.Items...)
		}
	} else {
		in := &dynamodb.ScanInput{
			TableName:                aws.String(r.tableName),
			FilterExpression:         filterExpr,
			ExpressionAttributeNames: nonEmptyNames(names),
		}
		if len(values) > 0 {
			in.ExpressionAttributeValues = values
		}
		p := dynamodb.NewScanPaginator(r.ddb, in)
		for p.HasMorePages() {
			page, err := p.NextPage(ctx)
			if err != nil {
				return nil, err
			}
			raw = append(raw, page.Items...)
		}
	}

	invoices := make([]entities.Invoice, 0, len(raw))
	for _, item := range raw {
		var it invoiceItem
		if err := attributevalue.UnmarshalMap(item, &it); err != nil {
			return nil, err
		}
		invoices = append(invoices, fromInvoiceItem(it))
	}
	sortInvoices(invoices)
	return invoices, nil
}

func (r *InvoiceDynamoRepository) Update(ctx context.Context, inv entities.Invoice) (entities.Invoice, error) {
	expected := inv.Version
	inv.Version = expected + 1
	it := toInvoiceItem(inv)

	return r.update(ctx, inv.ID, expected, func() (string, map[string]types.AttributeValue, map[string]string, error) {
		items, err := attributevalue.Marshal(it.Items)
		if err != nil {
			return "", nil, nil, err
		}
		installments, err := attributevalue.Marshal(it.Installments)
		if err != nil {
			return "", nil, nil, err
		}
		timeEntries, err := attributevalue.Marshal(it.TimeEntryIDs)
		if err != nil {
			return "", nil, nil, err
		}

		expr := "SET #items = :items, #tax_rate = :tax_rate, #subtotal = :subtotal, #tax_amount = :tax_amount, " +
			"#total_amount = :total_amount, #installments = :installments, #status = :status, " +
			"#due_date = :due_date, #time_entry_ids = :time_entry_ids, #notes = :notes, " +
			"#version = :version, #updated_at = :updated_at"
		vals := map[string]types.AttributeValue{
			":items":          items,
			":tax_rate":       &types.AttributeValueMemberS{Value: it.TaxRatePercent},
			":subtotal":       &types.AttributeValueMemberS{Value: it.Subtotal},
			":tax_amount":     &types.AttributeValueMemberS{Value: it.TaxAmount},
			":total_amount":   &types.AttributeValueMemberS{Value: it.TotalAmount},
			":installments":   installments,
			":status":         &types.AttributeValueMemberS{Value: it.Status},
			":due_date":       &types.AttributeValueMemberS{Value: it.DueDate},
			":time_entry_ids": timeEntries,
			":notes":          &types.AttributeValueMemberS{Value: it.Notes},
			":version":        &types.AttributeValueMemberN{Value: strconv.FormatInt(it.Version, 10)},
			":updated_at":     &types.AttributeValueMemberS{Value: it.UpdatedAt},
		}
		names := map[string]string{
			"#items":          "items",
			"#tax_rate":       "tax_rate_percent",
			"#subtotal":       "subtotal",
			"#tax_amount":     "tax_amount",
			"#total_amount":   "total_amount",
			"#installments":   "installments",
			"#status":         "status",
			"#due_date":       "due_date",
			"#time_entry_ids": "time_entry_ids",
			"#notes":          "notes",
			"#updated_at":     "updated_at",
		}
		if it.SentAt != "" {
			expr += ", #sent_at = :sent_at"
			vals[":sent_at"] = &types.AttributeValueMemberS{Value: it.SentAt}
			names["#sent_at"] = "sent_at"
		}
		return expr, vals, names, nil
	})
}

// update applies a SET expression guarded by the expected version. A failed guard
// (row gone or version moved on) surfaces as a ConflictError.
func (r *InvoiceDynamoRepository) update(
	ctx context.Context,
	id string,
	expectedVersion int64,
	build func() (updateExpr string, values map[string]types.AttributeValue, names map[string]string, err error),
) (entities.Invoice, error) {
	updateExpr, values, names, err := build()
	if err != nil {
		return entities.Invoice{}, err
	}
	values[":expected_version"] = &types.AttributeValueMemberN{Value: strconv.FormatInt(expectedVersion, 10)}

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       idKey(id),
		ConditionExpression:       aws.String("attribute_exists(#id) AND #version = :expected_version"),
		UpdateExpression:          aws.String(updateExpr),
		ExpressionAttributeValues: values,
		ExpressionAttributeNames:  mergeNames(names, map[string]string{"#id": "id", "#version": "version"}),
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return entities.Invoice{}, invoicing.NewConflictError("invoice", id, "modified concurrently, reload and retry")
		}
		return entities.Invoice{}, err
	}

	var it invoiceItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.Invoice{}, err
	}
	return fromInvoiceItem(it), nil
}

func (r *InvoiceDynamoRepository) Delete(ctx context.Context, id string) error {
	_, err := r.ddb.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       idKey(id),
	})
	return err
}

func (r *InvoiceDynamoRepository) NextInvoiceNumber(ctx context.Context, year int) (string, error) {
	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:        aws.String(r.countersName),
		Key:              idKey("invoice-" + strconv.Itoa(year)),
		UpdateExpression: aws.String("ADD #seq :one"),
		ExpressionAttributeNames: map[string]string{
			"#seq": "seq",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":one": &types.AttributeValueMemberN{Value: "1"},
		},
		ReturnValues: types.ReturnValueUpdatedNew,
	})
	if err != nil {
		return "", err
	}

	var counter struct {
		Seq int64 `dynamodbav:"seq"`
	}
	if err := attributevalue.UnmarshalMap(out.Attributes, &counter); err != nil {
		return "", err
	}
	return invoicing.FormatInvoiceNumber(year, counter.Seq), nil
}

func nonEmptyNames(names map[string]string) map[string]string {
	if len(names) == 0 {
		return nil
	}
	return names
}

func sortInvoices(invoices []entities.Invoice) {
	sort.SliceStable(invoices, func(i, j int) bool {
		if !invoices[i].IssueDate.Equal(invoices[j].IssueDate) {
			return invoices[i].IssueDate.After(invoices[j].IssueDate)
		}
		return invoices[i].InvoiceNumber > invoices[j].InvoiceNumber
	})
}

func toInvoiceItem(inv entities.Invoice) invoiceItem {
	installments := make([]installmentItem, 0, len(inv.Installments))
	for _, in := range inv.Installments {
		installments = append(installments, installmentItem{
			Description: in.Description,
			Percentage:  in.Percentage.String(),
			Amount:      in.Amount.StringFixed(2),
			DueDate:     formatDate(in.DueDate),
			IsPaid:      in.IsPaid,
			PaidDate:    formatTimePtr(in.PaidDate),
		})
	}
	return invoiceItem{
		ID:              inv.ID,
		InvoiceNumber:   inv.InvoiceNumber,
		CustomerID:      inv.CustomerID,
		OrderID:         inv.OrderID,
		Items:           toLineItemItems(inv.Items),
		TaxRatePercent:  inv.TaxRatePercent.String(),
		Subtotal:        inv.Subtotal.StringFixed(2),
		TaxAmount:       inv.TaxAmount.StringFixed(2),
		TotalAmount:     inv.TotalAmount.StringFixed(2),
		PaymentSchedule: string(inv.PaymentSchedule),
		Installments:    installments,
		Status:          string(inv.Status),
		IssueDate:       formatDate(inv.IssueDate),
		DueDate:         formatDate(inv.DueDate),
		SentAt:          formatTimePtr(inv.SentAt),
		TimeEntryIDs:    inv.TimeEntryIDs,
		Notes:           inv.Notes,
		Version:         inv.Version,
		CreatedAt:       formatTime(inv.CreatedAt),
		UpdatedAt:       formatTime(inv.UpdatedAt),
	}
}

func fromInvoiceItem(it invoiceItem) entities.Invoice {
	var installments []entities.Installment
	for _, in := range it.Installments {
		installments = append(installments, entities.Installment{
			Description: in.Description,
			Percentage:  parseDecimal(in.Percentage),
			Amount:      parseDecimal(in.Amount),
			DueDate:     parseDate(in.DueDate),
			IsPaid:      in.IsPaid,
			PaidDate:    parseTimePtr(in.PaidDate),
		})
	}
	return entities.Invoice{
		ID:              it.ID,
		InvoiceNumber:   it.InvoiceNumber,
		CustomerID:      it.CustomerID,
		OrderID:         it.OrderID,
		Items:           fromLineItemItems(it.Items),
		TaxRatePercent:  parseDecimal(it.TaxRatePercent),
		Subtotal:        parseDecimal(it.Subtotal),
		TaxAmount:       parseDecimal(it.TaxAmount),
		TotalAmount:     parseDecimal(it.TotalAmount),
		PaymentSchedule: entities.PaymentSchedule(it.PaymentSchedule),
		Installments:    installments,
		Status:          entities.InvoiceStatus(it.Status),
		IssueDate:       parseDate(it.IssueDate),
		DueDate:         parseDate(it.DueDate),
		SentAt:          parseTimePtr(it.SentAt),
		TimeEntryIDs:    it.TimeEntryIDs,
		Notes:           it.Notes,
		Version:         it.Version,
		CreatedAt:       parseTime(it.CreatedAt),
		UpdatedAt:       parseTime(it.UpdatedAt),
	}
}
