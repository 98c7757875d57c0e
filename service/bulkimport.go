package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/belovedchibuikem/smarthousing-pro-api-sub000/models"
)

// maxImportErrors bounds the error list in a bulk result so a fully
// broken file cannot blow up the response.
const maxImportErrors = 50

// ImportResult summarizes a bulk repayment upload. A batch with at least
// one successful row is not a failure.
type ImportResult struct {
	Total      int      `json:"total"`
	Successful int      `json:"successful"`
	Failed     int      `json:"failed"`
	Errors     []string `json:"errors"`
}

// headerAliases maps normalized upload column names to their canonical
// field. Uploaded sheets come from several cooperatives and name the
// same columns differently.
var headerAliases = map[string]string{
	"member":        "member_id",
	"member_id":     "member_id",
	"member_no":     "member_id",
	"member_number": "member_id",
	"staff_id":      "member_id",

	"id":            "obligation_id",
	"loan_id":       "obligation_id",
	"mortgage_id":   "obligation_id",
	"plan_id":       "obligation_id",
	"obligation_id": "obligation_id",

	"amount":      "amount",
	"amount_paid": "amount",

	"principal":      "principal_paid",
	"principal_paid": "principal_paid",
	"interest":       "interest_paid",
	"interest_paid":  "interest_paid",

	"date":         "payment_date",
	"paid_at":      "payment_date",
	"payment_date": "payment_date",

	"method":         "payment_method",
	"payment_method": "payment_method",

	"ref":       "reference",
	"reference": "reference",

	"note":      "note",
	"narration": "note",
}

// NormalizeHeader canonicalizes uploaded column names: case-insensitive,
// parenthetical suffixes stripped ("Amount (₦)" matches "amount"),
// spaces collapsed to underscores, known aliases mapped.
func NormalizeHeader(cols []string) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		if idx := strings.Index(c, "("); idx >= 0 {
			c = c[:idx]
		}
		c = strings.ToLower(strings.TrimSpace(c))
		c = strings.ReplaceAll(c, " ", "_")
		c = strings.ReplaceAll(c, "-", "_")
		if canonical, ok := headerAliases[c]; ok {
			c = canonical
		}
		out[i] = c
	}
	return out
}

// ImportRepayments posts one repayment per uploaded row. Each row runs
// in its own transaction: a failure rolls back that row alone and can
// never disturb rows already committed. Rows are processed strictly in
// file order; blank rows are skipped silently and every other failure
// becomes a row-level error while the batch keeps going.
func ImportRepayments(db *gorm.DB, kind models.ObligationKind, header []string, rows [][]string, recordedBy uint) ImportResult {
	header = NormalizeHeader(header)
	result := ImportResult{Errors: []string{}}

	for i, row := range rows {
		lineNo := i + 2 // header is line 1

		if blankRow(row) {
			continue
		}
		result.Total++

		if len(row) != len(header) {
			result.fail(lineNo, fmt.Errorf("expected %d columns, got %d", len(header), len(row)))
			continue
		}

		fields := make(map[string]string, len(header))
		for j, col := range header {
			fields[col] = strings.TrimSpace(row[j])
		}

		if err := importRow(db, kind, fields, recordedBy); err != nil {
			if !isBusinessError(err) {
				logrus.WithError(err).WithField("line", lineNo).Warn("bulk repayment row failed")
			}
			result.fail(lineNo, err)
			continue
		}
		result.Successful++
	}

	return result
}

func importRow(db *gorm.DB, kind models.ObligationKind, fields map[string]string, recordedBy uint) error {
	amountText := fields["amount"]
	if amountText == "" {
		return fmt.Errorf("amount is required")
	}
	amount, err := decimal.NewFromString(strings.ReplaceAll(amountText, ",", ""))
	if err != nil {
		return fmt.Errorf("invalid amount %q", amountText)
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("amount must be greater than zero")
	}
	if fields["member_id"] == "" {
		return fmt.Errorf("member identifier is required")
	}

	in := PostInput{
		Amount:        amount,
		PaymentMethod: fields["payment_method"],
		Reference:     fields["reference"],
		Note:          fields["note"],
		RecordedBy:    recordedBy,
	}
	if in.PaymentMethod == "" {
		in.PaymentMethod = "bank"
	}
	if p, ok := parseOptionalAmount(fields["principal_paid"]); ok {
		in.PrincipalPaid = &p
	}
	if v, ok := parseOptionalAmount(fields["interest_paid"]); ok {
		in.InterestPaid = &v
	}
	if d := fields["payment_date"]; d != "" {
		paidAt, err := parsePaymentDate(d)
		if err != nil {
			return err
		}
		in.PaidAt = paidAt
	}

	// One transaction per row: member and obligation resolution happen
	// inside it so the posting validates against a consistent snapshot.
	return db.Transaction(func(tx *gorm.DB) error {
		member, err := ResolveMember(tx, fields["member_id"])
		if err != nil {
			return err
		}
		ob, _, err := ResolveObligation(tx, kind, fields["obligation_id"], member.ID, true)
		if err != nil {
			return err
		}
		_, _, err = PostRepayment(tx, ob, in)
		return err
	})
}

func (r *ImportResult) fail(lineNo int, err error) {
	r.Failed++
	if len(r.Errors) < maxImportErrors {
		r.Errors = append(r.Errors, fmt.Sprintf("row %d: %v", lineNo, err))
	}
}

func blankRow(row []string) bool {
	for _, f := range row {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

func parseOptionalAmount(s string) (decimal.Decimal, bool) {
	if s == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(strings.ReplaceAll(s, ",", ""))
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

var paymentDateLayouts = []string{"2006-01-02", "02/01/2006", "2006-01-02 15:04:05", time.RFC3339}

func parsePaymentDate(s string) (time.Time, error) {
	for _, layout := range paymentDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid payment date %q", s)
}

// isBusinessError reports whether err is an expected business-rule
// rejection rather than a system failure.
func isBusinessError(err error) bool {
	for _, target := range []error{
		models.ErrInvalidState,
		models.ErrScheduleNotApproved,
		models.ErrAlreadySettled,
		models.ErrAllocationMismatch,
		models.ErrExceedsBalance,
		models.ErrExceedsPrincipal,
		models.ErrDuplicateReference,
		models.ErrNotFound,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
