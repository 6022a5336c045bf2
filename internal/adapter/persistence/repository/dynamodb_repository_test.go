package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"erp_invoicing/internal/domain/entities"
	"erp_invoicing/internal/domain/invoicing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDynamo overrides only the calls a test needs; anything else panics on the nil
// embedded interface.
type fakeDynamo struct {
	dynamoAPI
	getItem       func(*dynamodb.GetItemInput) (*dynamodb.GetItemOutput, error)
	putItem       func(*dynamodb.PutItemInput) (*dynamodb.PutItemOutput, error)
	updateItem    func(*dynamodb.UpdateItemInput) (*dynamodb.UpdateItemOutput, error)
	transactWrite func(*dynamodb.TransactWriteItemsInput) (*dynamodb.TransactWriteItemsOutput, error)
}

func (f *fakeDynamo) GetItem(_ context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	return f.getItem(in)
}

func (f *fakeDynamo) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	return f.putItem(in)
}

func (f *fakeDynamo) UpdateItem(_ context.Context, in *dynamodb.UpdateItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	return f.updateItem(in)
}

func (f *fakeDynamo) TransactWriteItems(_ context.Context, in *dynamodb.TransactWriteItemsInput, _ ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error) {
	return f.transactWrite(in)
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func sampleInvoice() entities.Invoice {
	paid := time.Date(2026, 3, 2, 9, 15, 0, 0, time.UTC)
	sent := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return entities.Invoice{
		ID:              "inv-1",
		InvoiceNumber:   "INV-2026-0001",
		CustomerID:      "cus-1",
		Items:           []entities.LineItem{{Description: "Consulting", Quantity: d("2"), UnitPrice: d("50")}, {Description: "Setup", Quantity: d("1"), UnitPrice: d("30")}},
		TaxRatePercent:  d("19"),
		Subtotal:        d("130"),
		TaxAmount:       d("24.7"),
		TotalAmount:     d("154.7"),
		PaymentSchedule: entities.PaymentScheduleInstallments,
		Installments: []entities.Installment{
			{Description: "First installment", Percentage: d("30"), Amount: d("46.41"), DueDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), IsPaid: true, PaidDate: &paid},
			{Description: "Final installment", Percentage: d("70"), Amount: d("108.29"), DueDate: time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)},
		},
		Status:       entities.InvoiceStatusPartiallyPaid,
		IssueDate:    time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		DueDate:      time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
		SentAt:       &sent,
		TimeEntryIDs: []string{"te-1"},
		Version:      3,
		CreatedAt:    sent,
		UpdatedAt:    paid,
	}
}

func TestInvoiceItemMapping_KeepsMoneyExact(t *testing.T) {
	inv := sampleInvoice()

	av, err := attributevalue.MarshalMap(toInvoiceItem(inv))
	require.NoError(t, err)

	money, ok := av["total_amount"].(*types.AttributeValueMemberS)
	require.True(t, ok, "money must be stored as a string attribute")
	assert.Equal(t, "154.70", money.Value)

	var it invoiceItem
	require.NoError(t, attributevalue.UnmarshalMap(av, &it))
	got := fromInvoiceItem(it)

	assert.True(t, got.TotalAmount.Equal(inv.TotalAmount))
	assert.True(t, got.Installments[0].Amount.Equal(d("46.41")))
	assert.Equal(t, inv.Installments[0].PaidDate.UTC(), got.Installments[0].PaidDate.UTC())
	assert.Nil(t, got.Installments[1].PaidDate)
	assert.Equal(t, inv.DueDate, got.DueDate)
	assert.Equal(t, inv.SentAt.UTC(), got.SentAt.UTC())
	assert.Equal(t, inv.TimeEntryIDs, got.TimeEntryIDs)
	assert.Equal(t, int64(3), got.Version)
}

func TestInvoiceDynamoRepository_Update(t *testing.T) {
	t.Run("guards on the expected version and bumps it", func(t *testing.T) {
		fake := &fakeDynamo{updateItem: func(in *dynamodb.UpdateItemInput) (*dynamodb.UpdateItemOutput, error) {
			assert.Equal(t, "attribute_exists(#id) AND #version = :expected_version", aws.ToString(in.ConditionExpression))
			assert.Equal(t, "3", in.ExpressionAttributeValues[":expected_version"].(*types.AttributeValueMemberN).Value)
			assert.Equal(t, "4", in.ExpressionAttributeValues[":version"].(*types.AttributeValueMemberN).Value)
			assert.Equal(t, "version", in.ExpressionAttributeNames["#version"])

			inv := sampleInvoice()
			inv.Version = 4
			attrs, err := attributevalue.MarshalMap(toInvoiceItem(inv))
			require.NoError(t, err)
			return &dynamodb.UpdateItemOutput{Attributes: attrs}, nil
		}}
		repo := NewInvoiceDynamoRepository(fake, "", "")

		got, err := repo.Update(context.Background(), sampleInvoice())
		require.NoError(t, err)
		assert.Equal(t, int64(4), got.Version)
	})

	t.Run("lost race is a conflict", func(t *testing.T) {
		fake := &fakeDynamo{updateItem: func(*dynamodb.UpdateItemInput) (*dynamodb.UpdateItemOutput, error) {
			return nil, &types.ConditionalCheckFailedException{Message: aws.String("The conditional request failed")}
		}}
		repo := NewInvoiceDynamoRepository(fake, "", "")

		_, err := repo.Update(context.Background(), sampleInvoice())
		assert.True(t, errors.Is(err, invoicing.ErrConflict), "got %v", err)
	})
}

func TestInvoiceDynamoRepository_Create_Duplicate(t *testing.T) {
	fake := &fakeDynamo{putItem: func(in *dynamodb.PutItemInput) (*dynamodb.PutItemOutput, error) {
		assert.Equal(t, "invoices", aws.ToString(in.TableName))
		return nil, &types.ConditionalCheckFailedException{}
	}}
	repo := NewInvoiceDynamoRepository(fake, "", "")

	_, err := repo.Create(context.Background(), sampleInvoice())
	assert.True(t, errors.Is(err, invoicing.ErrConflict), "got %v", err)
}

func TestInvoiceDynamoRepository_NextInvoiceNumber(t *testing.T) {
	fake := &fakeDynamo{updateItem: func(in *dynamodb.UpdateItemInput) (*dynamodb.UpdateItemOutput, error) {
		assert.Equal(t, "counters", aws.ToString(in.TableName))
		assert.Equal(t, "invoice-2026", in.Key["id"].(*types.AttributeValueMemberS).Value)
		assert.Equal(t, "ADD #seq :one", aws.ToString(in.UpdateExpression))
		return &dynamodb.UpdateItemOutput{Attributes: map[string]types.AttributeValue{
			"seq": &types.AttributeValueMemberN{Value: "7"},
		}}, nil
	}}
	repo := NewInvoiceDynamoRepository(fake, "invoices", "counters")

	number, err := repo.NextInvoiceNumber(context.Background(), 2026)
	require.NoError(t, err)
	assert.Equal(t, "INV-2026-0007", number)
}

func TestTimeEntryDynamoRepository_MarkBilled(t *testing.T) {
	t.Run("guard and values", func(t *testing.T) {
		fake := &fakeDynamo{transactWrite: func(in *dynamodb.TransactWriteItemsInput) (*dynamodb.TransactWriteItemsOutput, error) {
			require.Len(t, in.TransactItems, 2)
			u := in.TransactItems[0].Update
			assert.Equal(t, "attribute_exists(#id) AND (#billed = :false OR #invoice_id = :inv)", aws.ToString(u.ConditionExpression))
			assert.Equal(t, "inv-1", u.ExpressionAttributeValues[":inv"].(*types.AttributeValueMemberS).Value)
			return &dynamodb.TransactWriteItemsOutput{}, nil
		}}
		repo := NewTimeEntryDynamoRepository(fake, "")
		require.NoError(t, repo.MarkBilled(context.Background(), []string{"te-1", "te-2"}, "inv-1"))
	})

	t.Run("cancelled transaction names the conflicting entry", func(t *testing.T) {
		fake := &fakeDynamo{transactWrite: func(*dynamodb.TransactWriteItemsInput) (*dynamodb.TransactWriteItemsOutput, error) {
			return nil, &types.TransactionCanceledException{
				CancellationReasons: []types.CancellationReason{
					{Code: aws.String("None")},
					{Code: aws.String("ConditionalCheckFailed")},
				},
			}
		}}
		repo := NewTimeEntryDynamoRepository(fake, "")

		err := repo.MarkBilled(context.Background(), []string{"te-1", "te-2"}, "inv-1")
		var ce *invoicing.ConflictError
		require.True(t, errors.As(err, &ce), "got %v", err)
		assert.Equal(t, "te-2", ce.ID)
	})

	t.Run("other errors pass through", func(t *testing.T) {
		fake := &fakeDynamo{transactWrite: func(*dynamodb.TransactWriteItemsInput) (*dynamodb.TransactWriteItemsOutput, error) {
			return nil, errors.New("throttled")
		}}
		repo := NewTimeEntryDynamoRepository(fake, "")

		err := repo.MarkBilled(context.Background(), []string{"te-1"}, "inv-1")
		assert.EqualError(t, err, "throttled")
	})
}

func TestSettingsDynamoRepository_DefaultsWhenMissing(t *testing.T) {
	fake := &fakeDynamo{getItem: func(in *dynamodb.GetItemInput) (*dynamodb.GetItemOutput, error) {
		assert.Equal(t, billingDefaultsID, in.Key["id"].(*types.AttributeValueMemberS).Value)
		return &dynamodb.GetItemOutput{}, nil
	}}
	repo := NewSettingsDynamoRepository(fake, "")

	got, err := repo.GetBillingDefaults(context.Background())
	require.NoError(t, err)
	assert.Equal(t, entities.DefaultBillingDefaults(), got)
}
