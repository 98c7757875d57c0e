package service

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/belovedchibuikem/smarthousing-pro-api-sub000/models"
)

// ResolutionMode tells callers whether an obligation lookup hit an exact
// id or fell back to the member's latest approved obligation.
type ResolutionMode int

const (
	ResolvedByID ResolutionMode = iota
	ResolvedByFallback
)

// ResolveMember finds a member by UUID, member number or staff ID, in
// that order.
func ResolveMember(db *gorm.DB, key string) (*models.Member, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, fmt.Errorf("member identifier is required: %w", models.ErrNotFound)
	}

	var m models.Member
	lookups := []string{"member_number = ?", "staff_id = ?"}
	if _, err := uuid.Parse(key); err == nil {
		lookups = append([]string{"uuid = ?"}, lookups...)
	}
	for _, cond := range lookups {
		err := db.Where(cond, key).First(&m).Error
		if err == nil {
			return &m, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}
	return nil, fmt.Errorf("member %q: %w", key, models.ErrNotFound)
}

// rowLock adds FOR UPDATE where the dialect has it. SQLite does not;
// its single-writer transaction lock covers the same race.
func rowLock(q *gorm.DB) *gorm.DB {
	if q.Dialector.Name() == "sqlite" {
		return q
	}
	return q.Clauses(clause.Locking{Strength: "UPDATE"})
}

// LoadObligation fetches one obligation by kind and id. With lock set the
// row is selected FOR UPDATE, which serializes concurrent postings
// against the same parent.
func LoadObligation(tx *gorm.DB, kind models.ObligationKind, id uint, lock bool) (models.Obligation, error) {
	q := tx
	if lock {
		q = rowLock(q)
	}

	var (
		ob  models.Obligation
		err error
	)
	switch kind {
	case models.KindLoan:
		var l models.Loan
		err = q.First(&l, id).Error
		ob = &l
	case models.KindMortgage:
		var m models.Mortgage
		err = q.First(&m, id).Error
		ob = &m
	case models.KindPlan:
		var p models.InternalMortgagePlan
		err = q.First(&p, id).Error
		ob = &p
	default:
		return nil, fmt.Errorf("unknown obligation kind %q", kind)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%s %d: %w", kind, id, models.ErrNotFound)
		}
		return nil, err
	}
	return ob, nil
}

// ResolveObligation finds the obligation a bulk-import row refers to.
// A non-empty rawID resolves by id (and must belong to the given
// member); otherwise the member's most recent approved or active
// obligation of that kind is used. The returned mode lets callers tell
// an exact match from a fallback guess.
func ResolveObligation(tx *gorm.DB, kind models.ObligationKind, rawID string, memberID uint, lock bool) (models.Obligation, ResolutionMode, error) {
	rawID = strings.TrimSpace(rawID)
	if rawID != "" {
		id, err := strconv.ParseUint(rawID, 10, 64)
		if err != nil {
			return nil, ResolvedByID, fmt.Errorf("invalid %s id %q", kind, rawID)
		}
		ob, err := LoadObligation(tx, kind, uint(id), lock)
		if err != nil {
			return nil, ResolvedByID, err
		}
		if ob.ObligationMemberID() != memberID {
			return nil, ResolvedByID, fmt.Errorf("%s %d does not belong to this member", kind, id)
		}
		return ob, ResolvedByID, nil
	}

	ob, err := latestOpenObligation(tx, kind, memberID, lock)
	if err != nil {
		return nil, ResolvedByFallback, err
	}
	return ob, ResolvedByFallback, nil
}

func latestOpenObligation(tx *gorm.DB, kind models.ObligationKind, memberID uint, lock bool) (models.Obligation, error) {
	q := tx.
		Where("member_id = ? AND status IN ?", memberID, []string{models.StatusApproved, models.StatusActive}).
		Order("created_at DESC, id DESC")
	if lock {
		q = rowLock(q)
	}

	var (
		ob  models.Obligation
		err error
	)
	switch kind {
	case models.KindLoan:
		var l models.Loan
		err = q.First(&l).Error
		ob = &l
	case models.KindMortgage:
		var m models.Mortgage
		err = q.First(&m).Error
		ob = &m
	case models.KindPlan:
		var p models.InternalMortgagePlan
		err = q.First(&p).Error
		ob = &p
	default:
		return nil, fmt.Errorf("unknown obligation kind %q", kind)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("no open %s for member %d: %w", kind, memberID, models.ErrNotFound)
		}
		return nil, err
	}
	return ob, nil
}
