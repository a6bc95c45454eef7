// Copyright The OpenTelemetry Authors
// SPDX-License-Identifier: Apache-2.0

package queries

const (
	// StatementEventNamePrefix restricts scans to statement instrumentation.
	StatementEventNamePrefix = "statement/%"

	// SelfExplainPattern excludes statements the receiver itself generated,
	// preventing a feedback loop of explaining our own EXPLAINs.
	SelfExplainPattern = "EXPLAIN %"
)

// MaxTimerStartSQL reads the history table's current high-water mark. A NULL
// result means the table is empty or the consumer is not enabled.
const MaxTimerStartSQL = `SELECT MAX(timer_start) FROM performance_schema.events_statements_history_long`

// HistoryEventsSQL fetches statement events newer than the watermark, one row
// per distinct statement digest, biased toward the highest wait times so the
// most expensive statements are captured first.
//
// Bind order: event_name prefix, self-explain exclusion pattern, watermark,
// row limit.
const HistoryEventsSQL = `
SELECT current_schema AS current_schema,
       sql_text AS sql_text,
       IFNULL(digest_text, sql_text) AS digest_text,
       timer_start AS timer_start,
       MAX(timer_wait) / 1000 AS max_timer_wait_ns,
       lock_time / 1000 AS lock_time_ns,
       rows_affected,
       rows_sent,
       rows_examined,
       select_full_join,
       select_full_range_join,
       select_range,
       select_range_check,
       select_scan,
       sort_merge_passes,
       sort_range,
       sort_rows,
       sort_scan,
       no_index_used,
       no_good_index_used
  FROM performance_schema.events_statements_history_long
 WHERE sql_text IS NOT NULL
   AND event_name LIKE ?
   AND digest_text NOT LIKE ?
   AND timer_start > ?
 GROUP BY digest
 ORDER BY timer_wait DESC
 LIMIT ?`

// EnableHistoryConsumerSQL turns on the consumer that populates
// events_statements_history_long. Requires UPDATE on performance_schema.
const EnableHistoryConsumerSQL = `UPDATE performance_schema.setup_consumers SET enabled = 'YES' WHERE name = 'events_statements_history_long'`

// DisableSQLNotesSQL stops subsequent EXPLAINs from generating notes in the
// session diagnostics area.
const DisableSQLNotesSQL = `SET @@SESSION.sql_notes = 0`

// ExplainProcedureSQL invokes the externally provisioned explain_statement
// procedure, which explains with the privileges of its definer. The statement
// is always passed as a bound parameter, never interpolated.
const ExplainProcedureSQL = `CALL explain_statement(?)`

// GetExplainDirectSQL builds the native explain form. EXPLAIN does not accept
// a bound parameter for the statement, so interpolation is required here.
func GetExplainDirectSQL(statement string) string {
	return "EXPLAIN FORMAT=json " + statement
}

// GetUseSchemaSQL switches the session's default schema.
func GetUseSchemaSQL(schema string) string {
	return "USE `" + schema + "`"
}
