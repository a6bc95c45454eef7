// Copyright The OpenTelemetry Authors
// SPDX-License-Identifier: Apache-2.0

package client

import (
	"context"

	"github.com/open-telemetry/opentelemetry-collector-contrib/receiver/mysqlexecplanreceiver/models"
)

// Client defines the database operations the plan collection engine needs.
// This interface allows for easy mocking and testing of scrapers.
type Client interface {
	// Connect establishes the database connection and pins a session so that
	// schema switches apply to subsequent explain calls.
	Connect(ctx context.Context) error

	// MaxTimerStart reads the history table's high-water mark. ok is false
	// when the table is empty or the consumer is disabled.
	MaxTimerStart(ctx context.Context) (value int64, ok bool, err error)

	// QueryStatementEvents fetches statement events newer than sinceTimerStart,
	// at most one per digest, capped at limit rows.
	QueryStatementEvents(ctx context.Context, sinceTimerStart int64, limit int) ([]models.StatementEvent, error)

	// DisableSQLNotes suppresses session notes generated by EXPLAIN.
	DisableSQLNotes(ctx context.Context) error

	// EnableHistoryConsumer turns on the events_statements_history_long consumer.
	EnableHistoryConsumer(ctx context.Context) error

	// SelectSchema sets the session's default schema.
	SelectSchema(ctx context.Context, schema string) error

	// ExplainWithProcedure explains a statement via the privileged
	// explain_statement stored procedure and returns the JSON plan.
	ExplainWithProcedure(ctx context.Context, statement string) (string, error)

	// ExplainDirect explains a statement with EXPLAIN FORMAT=json and returns
	// the JSON plan.
	ExplainDirect(ctx context.Context, statement string) (string, error)

	// Close closes the pinned session and the database connection.
	Close() error
}
