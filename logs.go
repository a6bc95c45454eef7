// Copyright The OpenTelemetry Authors
// SPDX-License-Identifier: Apache-2.0

package mysqlexecplanreceiver // import "github.com/open-telemetry/opentelemetry-collector-contrib/receiver/mysqlexecplanreceiver"

import (
	"time"

	"go.opentelemetry.io/collector/pdata/pcommon"
	"go.opentelemetry.io/collector/pdata/plog"

	"github.com/open-telemetry/opentelemetry-collector-contrib/receiver/mysqlexecplanreceiver/internal/metadata"
	"github.com/open-telemetry/opentelemetry-collector-contrib/receiver/mysqlexecplanreceiver/models"
)

const planEventName = "db.server.execution_plan"

// eventsToLogs converts one cycle's plan events into a log batch. All events
// from a cycle share one resource and scope.
func eventsToLogs(endpoint string, tags map[string]string, events []models.PlanEvent) plog.Logs {
	logs := plog.NewLogs()
	if len(events) == 0 {
		return logs
	}

	resourceLog := logs.ResourceLogs().AppendEmpty()
	resourceAttrs := resourceLog.Resource().Attributes()
	resourceAttrs.PutStr("db.system.name", "mysql")
	resourceAttrs.PutStr("server.address", endpoint)
	for key, value := range tags {
		resourceAttrs.PutStr(key, value)
	}

	scopeLog := resourceLog.ScopeLogs().AppendEmpty()
	scopeLog.Scope().SetName(metadata.ScopeName)

	now := pcommon.NewTimestampFromTime(time.Now())
	for _, event := range events {
		record := scopeLog.LogRecords().AppendEmpty()
		record.SetObservedTimestamp(now)
		record.SetTimestamp(now)
		record.SetEventName(planEventName)

		attrs := record.Attributes()
		attrs.PutStr("db.namespace", event.Schema)
		attrs.PutStr("db.query.text", event.Statement)
		attrs.PutStr("mysql.query.signature", event.QuerySignature)
		attrs.PutStr("db.query_plan", event.ObfuscatedPlan)
		attrs.PutStr("mysql.query_plan.normalized", event.NormalizedPlan)
		attrs.PutStr("mysql.query_plan.signature", event.PlanSignature)
		attrs.PutDouble("mysql.query_plan.cost", event.PlanCost)
		attrs.PutStr("mysql.statement.digest_text", event.DigestText)
		attrs.PutDouble("mysql.statement.duration_ns", event.DurationNS)

		counters := event.Counters
		attrs.PutDouble("mysql.statement.lock_time_ns", counters.LockTimeNS)
		attrs.PutInt("mysql.statement.rows_affected", counters.RowsAffected)
		attrs.PutInt("mysql.statement.rows_sent", counters.RowsSent)
		attrs.PutInt("mysql.statement.rows_examined", counters.RowsExamined)
		attrs.PutInt("mysql.statement.select_full_join", counters.SelectFullJoin)
		attrs.PutInt("mysql.statement.select_full_range_join", counters.SelectFullRangeJoin)
		attrs.PutInt("mysql.statement.select_range", counters.SelectRange)
		attrs.PutInt("mysql.statement.select_range_check", counters.SelectRangeCheck)
		attrs.PutInt("mysql.statement.select_scan", counters.SelectScan)
		attrs.PutInt("mysql.statement.sort_merge_passes", counters.SortMergePasses)
		attrs.PutInt("mysql.statement.sort_range", counters.SortRange)
		attrs.PutInt("mysql.statement.sort_rows", counters.SortRows)
		attrs.PutInt("mysql.statement.sort_scan", counters.SortScan)
		attrs.PutInt("mysql.statement.no_index_used", counters.NoIndexUsed)
		attrs.PutInt("mysql.statement.no_good_index_used", counters.NoGoodIndexUsed)
	}
	return logs
}
