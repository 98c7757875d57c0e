package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/belovedchibuikem/smarthousing-pro-api-sub000/models"
)

func TestNormalizeHeader(t *testing.T) {
	got := NormalizeHeader([]string{
		"Member Number",
		"Loan ID",
		"Amount (₦)",
		"Principal (₦)",
		"Payment Date",
		"Payment-Method",
		"Ref",
		"Narration",
	})
	assert.Equal(t, []string{
		"member_id",
		"obligation_id",
		"amount",
		"principal_paid",
		"payment_date",
		"payment_method",
		"reference",
		"note",
	}, got)
}

func TestNormalizeHeader_UnknownColumnsKept(t *testing.T) {
	got := NormalizeHeader([]string{"Branch Office", "AMOUNT"})
	assert.Equal(t, []string{"branch_office", "amount"}, got)
}

func TestImportRepayments_RowLevelValidation(t *testing.T) {
	header := []string{"Member ID", "Loan ID", "Amount", "Payment Date"}
	rows := [][]string{
		{"", "", "", ""},                        // blank: silently skipped
		{"MEM-001", "1", "abc", "2026-01-10"},   // bad amount
		{"MEM-001", "1", "-50", "2026-01-10"},   // non-positive amount
		{"", "1", "5000", "2026-01-10"},         // missing member
		{"MEM-001", "1", "5000"},                // column count mismatch
		{"MEM-001", "1", "5000", "10 Jan 2026"}, // bad date
	}

	// every row fails before any database work, so a nil handle is safe
	result := ImportRepayments(nil, models.KindLoan, header, rows, 1)

	assert.Equal(t, 5, result.Total, "blank row must not count")
	assert.Equal(t, 0, result.Successful)
	assert.Equal(t, 5, result.Failed)
	require.Len(t, result.Errors, 5)
	assert.Contains(t, result.Errors[0], "row 3")
	assert.Contains(t, result.Errors[0], "invalid amount")
	assert.Contains(t, result.Errors[3], "expected 4 columns, got 3")
}

func TestImportRepayments_ErrorListCapped(t *testing.T) {
	header := []string{"Member ID", "Amount"}
	rows := make([][]string, 80)
	for i := range rows {
		rows[i] = []string{"", fmt.Sprintf("%d", i+1)} // missing member
	}

	result := ImportRepayments(nil, models.KindLoan, header, rows, 1)
	assert.Equal(t, 80, result.Failed)
	assert.Len(t, result.Errors, maxImportErrors)
}

func TestParsePaymentDate(t *testing.T) {
	got, err := parsePaymentDate("2026-03-15")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), got)

	got, err = parsePaymentDate("15/03/2026")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), got)

	_, err = parsePaymentDate("yesterday")
	assert.Error(t, err)
}

func TestParseOptionalAmount(t *testing.T) {
	got, ok := parseOptionalAmount("1,250,000.50")
	require.True(t, ok)
	assert.True(t, got.Equal(decimal.RequireFromString("1250000.50")))

	_, ok = parseOptionalAmount("")
	assert.False(t, ok)
}

func TestBlankRow(t *testing.T) {
	assert.True(t, blankRow([]string{"", "  ", ""}))
	assert.False(t, blankRow([]string{"", "x", ""}))
}

func TestIsBusinessError(t *testing.T) {
	assert.True(t, isBusinessError(models.ErrExceedsBalance))
	assert.True(t, isBusinessError(fmt.Errorf("loan 3: %w", models.ErrNotFound)))
	assert.False(t, isBusinessError(fmt.Errorf("connection refused")))
}
