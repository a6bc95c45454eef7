// Copyright The OpenTelemetry Authors
// SPDX-License-Identifier: Apache-2.0

package models

import (
	"database/sql"
	"strings"
)

// truncationMarker is appended by performance_schema when a statement exceeds
// performance_schema_max_sql_text_length.
const truncationMarker = "..."

// StatementEvent represents one sampled statement execution from
// performance_schema.events_statements_history_long.
type StatementEvent struct {
	// Statement identification
	CurrentSchema sql.NullString // CURRENT_SCHEMA (nullable: statements can run with no default schema)
	SQLText       sql.NullString // SQL_TEXT (raw statement text)
	DigestText    sql.NullString // IFNULL(DIGEST_TEXT, SQL_TEXT) (normalized statement text)

	// Timing
	TimerStart  sql.NullInt64   // TIMER_START, the scan watermark (nanoseconds)
	TimerWaitNS sql.NullFloat64 // MAX(TIMER_WAIT) / 1000 (nanoseconds)
	LockTimeNS  sql.NullFloat64 // LOCK_TIME / 1000 (nanoseconds)

	// Optimizer and execution counters
	RowsAffected        sql.NullInt64
	RowsSent            sql.NullInt64
	RowsExamined        sql.NullInt64
	SelectFullJoin      sql.NullInt64
	SelectFullRangeJoin sql.NullInt64
	SelectRange         sql.NullInt64
	SelectRangeCheck    sql.NullInt64
	SelectScan          sql.NullInt64
	SortMergePasses     sql.NullInt64
	SortRange           sql.NullInt64
	SortRows            sql.NullInt64
	SortScan            sql.NullInt64
	NoIndexUsed         sql.NullInt64
	NoGoodIndexUsed     sql.NullInt64
}

// GetSchema returns the schema name as a string, empty if null
func (se *StatementEvent) GetSchema() string {
	if se.CurrentSchema.Valid {
		return se.CurrentSchema.String
	}
	return ""
}

// GetSQLText returns the raw statement text as a string, empty if null
func (se *StatementEvent) GetSQLText() string {
	if se.SQLText.Valid {
		return se.SQLText.String
	}
	return ""
}

// GetDigestText returns the normalized statement text as a string, empty if null
func (se *StatementEvent) GetDigestText() string {
	if se.DigestText.Valid {
		return se.DigestText.String
	}
	return ""
}

// GetTimerStart returns the event timestamp, zero if null
func (se *StatementEvent) GetTimerStart() int64 {
	if se.TimerStart.Valid {
		return se.TimerStart.Int64
	}
	return 0
}

// IsTruncated reports whether performance_schema cut the statement text off.
// Plans cannot be captured for truncated statements; the remediation is
// raising performance_schema_max_sql_text_length.
func (se *StatementEvent) IsTruncated() bool {
	return se.SQLText.Valid && strings.HasSuffix(se.SQLText.String, truncationMarker)
}

// IsComplete reports whether every field required for plan acquisition is
// populated. The schema is intentionally excluded: statements legitimately
// run with no default schema.
func (se *StatementEvent) IsComplete() bool {
	if !se.SQLText.Valid || se.SQLText.String == "" {
		return false
	}
	if !se.DigestText.Valid || se.DigestText.String == "" {
		return false
	}
	if !se.TimerStart.Valid || !se.TimerWaitNS.Valid || !se.LockTimeNS.Valid {
		return false
	}
	for _, counter := range []sql.NullInt64{
		se.RowsAffected, se.RowsSent, se.RowsExamined,
		se.SelectFullJoin, se.SelectFullRangeJoin, se.SelectRange, se.SelectRangeCheck, se.SelectScan,
		se.SortMergePasses, se.SortRange, se.SortRows, se.SortScan,
		se.NoIndexUsed, se.NoGoodIndexUsed,
	} {
		if !counter.Valid {
			return false
		}
	}
	return true
}

// Counters flattens the event's counter bundle for inclusion in a PlanEvent.
func (se *StatementEvent) Counters() StatementCounters {
	return StatementCounters{
		LockTimeNS:          se.LockTimeNS.Float64,
		RowsAffected:        se.RowsAffected.Int64,
		RowsSent:            se.RowsSent.Int64,
		RowsExamined:        se.RowsExamined.Int64,
		SelectFullJoin:      se.SelectFullJoin.Int64,
		SelectFullRangeJoin: se.SelectFullRangeJoin.Int64,
		SelectRange:         se.SelectRange.Int64,
		SelectRangeCheck:    se.SelectRangeCheck.Int64,
		SelectScan:          se.SelectScan.Int64,
		SortMergePasses:     se.SortMergePasses.Int64,
		SortRange:           se.SortRange.Int64,
		SortRows:            se.SortRows.Int64,
		SortScan:            se.SortScan.Int64,
		NoIndexUsed:         se.NoIndexUsed.Int64,
		NoGoodIndexUsed:     se.NoGoodIndexUsed.Int64,
	}
}
