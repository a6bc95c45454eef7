// Copyright The OpenTelemetry Authors
// SPDX-License-Identifier: Apache-2.0

package models

// StatementCounters is the per-statement optimizer/execution counter bundle
// carried on every emitted plan event.
type StatementCounters struct {
	LockTimeNS          float64
	RowsAffected        int64
	RowsSent            int64
	RowsExamined        int64
	SelectFullJoin      int64
	SelectFullRangeJoin int64
	SelectRange         int64
	SelectRangeCheck    int64
	SelectScan          int64
	SortMergePasses     int64
	SortRange           int64
	SortRows            int64
	SortScan            int64
	NoIndexUsed         int64
	NoGoodIndexUsed     int64
}

// PlanEvent is one enriched execution plan record, built per eligible
// statement event once a plan has been acquired. Immutable once built.
type PlanEvent struct {
	DurationNS float64
	Schema     string

	// Statement is the obfuscated SQL text.
	Statement      string
	QuerySignature string

	// Plan is the raw EXPLAIN FORMAT=json document.
	Plan          string
	PlanCost      float64
	PlanSignature string

	// Debug payload
	NormalizedPlan string
	ObfuscatedPlan string
	DigestText     string

	Counters StatementCounters
}
