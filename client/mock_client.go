// Copyright The OpenTelemetry Authors
// SPDX-License-Identifier: Apache-2.0

package client

import (
	"context"

	"github.com/open-telemetry/opentelemetry-collector-contrib/receiver/mysqlexecplanreceiver/models"
)

// MockClient is a mock implementation of Client for testing.
// It supports both direct field assignment and function callbacks for flexibility.
type MockClient struct {
	// Direct value fields
	MaxTimer        int64
	MaxTimerOK      bool
	StatementEvents []models.StatementEvent
	ProcedurePlan   string
	DirectPlan      string

	// Error fields
	ConnectErr        error
	MaxTimerErr       error
	QueryEventsErr    error
	DisableNotesErr   error
	EnableConsumerErr error
	SelectSchemaErr   error
	ExplainProcErr    error
	ExplainDirectErr  error
	CloseErr          error

	// Function callback fields (optional, take precedence over direct fields)
	ConnectFunc               func(ctx context.Context) error
	MaxTimerStartFunc         func(ctx context.Context) (int64, bool, error)
	QueryStatementEventsFunc  func(ctx context.Context, sinceTimerStart int64, limit int) ([]models.StatementEvent, error)
	DisableSQLNotesFunc       func(ctx context.Context) error
	EnableHistoryConsumerFunc func(ctx context.Context) error
	SelectSchemaFunc          func(ctx context.Context, schema string) error
	ExplainWithProcedureFunc  func(ctx context.Context, statement string) (string, error)
	ExplainDirectFunc         func(ctx context.Context, statement string) (string, error)
	CloseFunc                 func() error

	// Call counters
	SelectSchemaCalls   int
	ExplainProcCalls    int
	ExplainDirectCalls  int
	EnableConsumerCalls int
}

var _ Client = (*MockClient)(nil)

// NewMockClient creates a new mock client for testing.
func NewMockClient() *MockClient {
	return &MockClient{}
}

func (m *MockClient) Connect(ctx context.Context) error {
	if m.ConnectFunc != nil {
		return m.ConnectFunc(ctx)
	}
	return m.ConnectErr
}

func (m *MockClient) MaxTimerStart(ctx context.Context) (int64, bool, error) {
	if m.MaxTimerStartFunc != nil {
		return m.MaxTimerStartFunc(ctx)
	}
	if m.MaxTimerErr != nil {
		return 0, false, m.MaxTimerErr
	}
	return m.MaxTimer, m.MaxTimerOK, nil
}

func (m *MockClient) QueryStatementEvents(ctx context.Context, sinceTimerStart int64, limit int) ([]models.StatementEvent, error) {
	if m.QueryStatementEventsFunc != nil {
		return m.QueryStatementEventsFunc(ctx, sinceTimerStart, limit)
	}
	if m.QueryEventsErr != nil {
		return nil, m.QueryEventsErr
	}
	return m.StatementEvents, nil
}

func (m *MockClient) DisableSQLNotes(ctx context.Context) error {
	if m.DisableSQLNotesFunc != nil {
		return m.DisableSQLNotesFunc(ctx)
	}
	return m.DisableNotesErr
}

func (m *MockClient) EnableHistoryConsumer(ctx context.Context) error {
	m.EnableConsumerCalls++
	if m.EnableHistoryConsumerFunc != nil {
		return m.EnableHistoryConsumerFunc(ctx)
	}
	return m.EnableConsumerErr
}

func (m *MockClient) SelectSchema(ctx context.Context, schema string) error {
	m.SelectSchemaCalls++
	if m.SelectSchemaFunc != nil {
		return m.SelectSchemaFunc(ctx, schema)
	}
	return m.SelectSchemaErr
}

func (m *MockClient) ExplainWithProcedure(ctx context.Context, statement string) (string, error) {
	m.ExplainProcCalls++
	if m.ExplainWithProcedureFunc != nil {
		return m.ExplainWithProcedureFunc(ctx, statement)
	}
	if m.ExplainProcErr != nil {
		return "", m.ExplainProcErr
	}
	return m.ProcedurePlan, nil
}

func (m *MockClient) ExplainDirect(ctx context.Context, statement string) (string, error) {
	m.ExplainDirectCalls++
	if m.ExplainDirectFunc != nil {
		return m.ExplainDirectFunc(ctx, statement)
	}
	if m.ExplainDirectErr != nil {
		return "", m.ExplainDirectErr
	}
	return m.DirectPlan, nil
}

func (m *MockClient) Close() error {
	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	return m.CloseErr
}
