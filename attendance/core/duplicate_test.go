package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"veritime.com/veritime/utils"
)

func TestCheckDuplicateSameDay(t *testing.T) {
	db := openTestDB(t)
	now := time.Date(2024, 6, 12, 9, 30, 0, 0, time.UTC)

	seedRecord(t, db, "alice", "2024-06-12", "09:05", nil, now.Add(-25*time.Minute))

	err := CheckDuplicate(db, "alice", "2024-06-12", now, time.Hour)

	var dup *DuplicateError
	assert.ErrorAs(t, err, &dup)
	assert.Contains(t, dup.Reason, "already marked today at 09:05")
}

func TestCheckDuplicateInterval(t *testing.T) {
	db := openTestDB(t)
	now := time.Date(2024, 6, 13, 0, 10, 0, 0, time.UTC)

	// Yesterday's record, created 40 minutes ago: the calendar day rolled
	// over but the interval rule still applies.
	seedRecord(t, db, "alice", "2024-06-12", "23:30", nil, now.Add(-40*time.Minute))

	var dup *DuplicateError
	assert.ErrorAs(t, CheckDuplicate(db, "alice", "2024-06-13", now, time.Hour), &dup)

	// Outside the interval the rollover is allowed.
	assert.NoError(t, CheckDuplicate(db, "alice", "2024-06-13", now.Add(time.Hour), time.Hour))
}

func TestCheckDuplicateIgnoresLaterCreation(t *testing.T) {
	db := openTestDB(t)

	// Backfilling a historical day pins the clock into the past, so the
	// user's most recent record can postdate "now" by weeks. That must not
	// read as a rapid resubmission.
	now := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)
	seedRecord(t, db, "alice", "2024-07-15", "09:00",
		utils.Ptr("17:30"), time.Date(2024, 7, 15, 9, 0, 0, 0, time.UTC))

	assert.NoError(t, CheckDuplicate(db, "alice", "2024-06-10", now, time.Hour))
}

func TestCheckDuplicateNoHistory(t *testing.T) {
	db := openTestDB(t)
	now := time.Date(2024, 6, 12, 9, 30, 0, 0, time.UTC)

	assert.NoError(t, CheckDuplicate(db, "alice", "2024-06-12", now, time.Hour))
}

func TestCheckDuplicateScopedToUser(t *testing.T) {
	db := openTestDB(t)
	now := time.Date(2024, 6, 12, 9, 30, 0, 0, time.UTC)

	seedRecord(t, db, "bob", "2024-06-12", "09:00", nil, now.Add(-5*time.Minute))

	assert.NoError(t, CheckDuplicate(db, "alice", "2024-06-12", now, time.Hour))
}
