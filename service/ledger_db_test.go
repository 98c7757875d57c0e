package service

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/belovedchibuikem/smarthousing-pro-api-sub000/models"
)

func openLedgerDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// a single connection keeps every query on the same in-memory DB
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.Member{}, &models.Loan{}, &models.Repayment{}))
	return db
}

func createMember(t *testing.T, db *gorm.DB, number, staffID string) *models.Member {
	t.Helper()
	m := models.Member{
		UUID:         "3f1d2b84-0000-4000-8000-" + number[len(number)-3:] + "000000000",
		MemberNumber: number,
		StaffID:      staffID,
		FirstName:    "Ada",
		LastName:     "Okafor",
		IsActive:     true,
	}
	require.NoError(t, db.Create(&m).Error)
	return &m
}

func createLoan(t *testing.T, db *gorm.DB, memberID uint, principal, rate string, termMonths int) *models.Loan {
	t.Helper()
	p := decimal.RequireFromString(principal)
	r := decimal.RequireFromString(rate)
	loan := models.Loan{
		MemberID:        memberID,
		Principal:       p,
		InterestRate:    r,
		TermMonths:      termMonths,
		PeriodicPayment: PeriodicPayment(p, r, termMonths, 12),
		Status:          models.StatusActive,
		StartDate:       time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, db.Create(&loan).Error)
	return &loan
}

func postOnLoan(db *gorm.DB, loanID uint, in PostInput) (*models.Repayment, *BalanceSummary, error) {
	var (
		rep     *models.Repayment
		summary *BalanceSummary
	)
	err := db.Transaction(func(tx *gorm.DB) error {
		ob, err := LoadObligation(tx, models.KindLoan, loanID, true)
		if err != nil {
			return err
		}
		rep, summary, err = PostRepayment(tx, ob, in)
		return err
	})
	return rep, summary, err
}

func TestPostRepayment_FullPayoffThenSettled(t *testing.T) {
	db := openLedgerDB(t)
	member := createMember(t, db, "MEM-001", "ST-001")
	loan := createLoan(t, db, member.ID, "100000", "12", 12)

	payoff := TotalOwed(loan)
	_, summary, err := postOnLoan(db, loan.ID, PostInput{Amount: payoff, RecordedBy: 1})
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, summary.Status)
	assert.True(t, summary.RemainingTotal.Abs().LessThanOrEqual(centTolerance))

	_, _, err = postOnLoan(db, loan.ID, PostInput{Amount: d("500"), RecordedBy: 1})
	require.ErrorIs(t, err, models.ErrAlreadySettled)

	var count int64
	require.NoError(t, db.Model(&models.Repayment{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestPostRepayment_PrincipalExhaustionThenSettled(t *testing.T) {
	db := openLedgerDB(t)
	member := createMember(t, db, "MEM-002", "ST-002")
	loan := createLoan(t, db, member.ID, "100000", "12", 12)

	// explicit split retires the whole principal in one posting while
	// full-term interest never accrues
	principal := d("100000")
	interest := decimal.Zero
	_, summary, err := postOnLoan(db, loan.ID, PostInput{
		Amount:        d("100000"),
		PrincipalPaid: &principal,
		InterestPaid:  &interest,
		RecordedBy:    1,
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, summary.Status)
	assert.True(t, summary.RemainingPrincipal.LessThanOrEqual(centTolerance))

	_, _, err = postOnLoan(db, loan.ID, PostInput{Amount: d("500"), RecordedBy: 1})
	require.ErrorIs(t, err, models.ErrAlreadySettled)

	var count int64
	require.NoError(t, db.Model(&models.Repayment{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestImportRepayments_PersistsGoodRowsPastBadOne(t *testing.T) {
	db := openLedgerDB(t)
	member := createMember(t, db, "MEM-003", "ST-003")
	loan := createLoan(t, db, member.ID, "1000000", "0", 12)

	header := []string{"Member ID", "Loan ID", "Amount", "Payment Date"}
	rows := [][]string{
		{"MEM-003", "1", "5000", "2026-02-01"},
		{"MEM-003", "1", "5000", "2026-03-01"},
		{"MEM-999", "1", "5000", "2026-04-01"}, // unknown member
		{"ST-003", "1", "5000", "2026-05-01"},
		{"MEM-003", "", "5000", "2026-06-01"}, // falls back to latest open loan
	}

	result := ImportRepayments(db, models.KindLoan, header, rows, 1)
	assert.Equal(t, 5, result.Total)
	assert.Equal(t, 4, result.Successful)
	assert.Equal(t, 1, result.Failed)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "row 4")

	var count int64
	require.NoError(t, db.Model(&models.Repayment{}).
		Where("obligation_type = ? AND obligation_id = ?", models.KindLoan, loan.ID).
		Count(&count).Error)
	assert.EqualValues(t, 4, count)

	balance, err := ObligationBalance(db, loan)
	require.NoError(t, err)
	assert.True(t, balance.TotalPaid.Equal(d("20000")))
}

func TestResolveMember_LookupOrderAndNotFound(t *testing.T) {
	db := openLedgerDB(t)
	member := createMember(t, db, "MEM-004", "ST-004")

	byNumber, err := ResolveMember(db, "MEM-004")
	require.NoError(t, err)
	assert.Equal(t, member.ID, byNumber.ID)

	byStaff, err := ResolveMember(db, "ST-004")
	require.NoError(t, err)
	assert.Equal(t, member.ID, byStaff.ID)

	byUUID, err := ResolveMember(db, member.UUID)
	require.NoError(t, err)
	assert.Equal(t, member.ID, byUUID.ID)

	_, err = ResolveMember(db, "MEM-999")
	require.ErrorIs(t, err, models.ErrNotFound)
}
