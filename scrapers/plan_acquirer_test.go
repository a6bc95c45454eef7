// Copyright The OpenTelemetry Authors
// SPDX-License-Identifier: Apache-2.0

package scrapers

import (
	"context"
	"errors"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/open-telemetry/opentelemetry-collector-contrib/receiver/mysqlexecplanreceiver/client"
)

const testPlan = `{"query_block": {"cost_info": {"query_cost": "12.50"}}}`

func TestCanExplainStatement(t *testing.T) {
	tests := []struct {
		statement string
		want      bool
	}{
		{"SELECT * FROM users", true},
		{"  select 1", true},
		{"INSERT INTO t VALUES (1)", true},
		{"UPDATE t SET a = 1", true},
		{"DELETE FROM t", true},
		{"REPLACE INTO t VALUES (1)", true},
		{"TABLE t", true},
		{"CREATE TABLE t (a INT)", false},
		{"SHOW PROCESSLIST", false},
		{"COMMIT", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.statement, func(t *testing.T) {
			assert.Equal(t, tt.want, canExplainStatement(tt.statement))
		})
	}
}

func TestAcquirePlanPrefersProcedure(t *testing.T) {
	mockClient := client.NewMockClient()
	mockClient.ProcedurePlan = testPlan
	acquirer := NewPlanAcquirer(mockClient, zap.NewNop())

	plan, err := acquirer.AcquirePlan(context.Background(), "orders", "SELECT * FROM orders")
	require.NoError(t, err)
	assert.Equal(t, testPlan, plan)
	assert.Equal(t, 1, mockClient.ExplainProcCalls)
	assert.Equal(t, 0, mockClient.ExplainDirectCalls)
}

func TestAcquirePlanFallsBackToDirect(t *testing.T) {
	mockClient := client.NewMockClient()
	mockClient.ExplainProcErr = &mysql.MySQLError{Number: 1305, Message: "PROCEDURE explain_statement does not exist"}
	mockClient.DirectPlan = testPlan
	acquirer := NewPlanAcquirer(mockClient, zap.NewNop())

	plan, err := acquirer.AcquirePlan(context.Background(), "orders", "SELECT * FROM orders")
	require.NoError(t, err)
	assert.Equal(t, testPlan, plan)
	assert.Equal(t, 1, mockClient.ExplainProcCalls)
	assert.Equal(t, 1, mockClient.ExplainDirectCalls)

	// The working method is remembered; the failed one is not retried.
	plan, err = acquirer.AcquirePlan(context.Background(), "orders", "SELECT 1")
	require.NoError(t, err)
	assert.Equal(t, testPlan, plan)
	assert.Equal(t, 1, mockClient.ExplainProcCalls)
	assert.Equal(t, 2, mockClient.ExplainDirectCalls)
}

func TestAcquirePlanDisablesSchemaWhenAllStrategiesPermanentlyFail(t *testing.T) {
	mockClient := client.NewMockClient()
	mockClient.ExplainProcErr = &mysql.MySQLError{Number: 1370, Message: "execute command denied"}
	mockClient.ExplainDirectErr = &mysql.MySQLError{Number: 1046, Message: "no database selected"}
	acquirer := NewPlanAcquirer(mockClient, zap.NewNop())

	plan, err := acquirer.AcquirePlan(context.Background(), "orders", "SELECT * FROM orders")
	require.NoError(t, err)
	assert.Empty(t, plan)
	assert.True(t, acquirer.SchemaDisabled("orders"))

	// Disabled schemas make no further database calls.
	plan, err = acquirer.AcquirePlan(context.Background(), "orders", "SELECT 1")
	require.NoError(t, err)
	assert.Empty(t, plan)
	assert.Equal(t, 1, mockClient.SelectSchemaCalls)
	assert.Equal(t, 1, mockClient.ExplainProcCalls)
	assert.Equal(t, 1, mockClient.ExplainDirectCalls)
}

func TestAcquirePlanKeepsSchemaEnabledOnRetryableFailure(t *testing.T) {
	mockClient := client.NewMockClient()
	mockClient.ExplainProcErr = &mysql.MySQLError{Number: 1370, Message: "execute command denied"}
	mockClient.ExplainDirectErr = &mysql.MySQLError{Number: 1064, Message: "syntax error"}
	acquirer := NewPlanAcquirer(mockClient, zap.NewNop())

	plan, err := acquirer.AcquirePlan(context.Background(), "orders", "SELECT * FROM orders")
	require.NoError(t, err)
	assert.Empty(t, plan)
	assert.False(t, acquirer.SchemaDisabled("orders"))

	// Next statement gets a fresh attempt.
	mockClient.ExplainDirectErr = nil
	mockClient.DirectPlan = testPlan
	plan, err = acquirer.AcquirePlan(context.Background(), "orders", "SELECT 2")
	require.NoError(t, err)
	assert.Equal(t, testPlan, plan)
}

func TestAcquirePlanSchemaSwitchFailures(t *testing.T) {
	t.Run("unknown database disables schema", func(t *testing.T) {
		mockClient := client.NewMockClient()
		mockClient.SelectSchemaErr = &mysql.MySQLError{Number: 1049, Message: "Unknown database 'gone'"}
		acquirer := NewPlanAcquirer(mockClient, zap.NewNop())

		plan, err := acquirer.AcquirePlan(context.Background(), "gone", "SELECT 1")
		require.NoError(t, err)
		assert.Empty(t, plan)
		assert.True(t, acquirer.SchemaDisabled("gone"))
		assert.Equal(t, 0, mockClient.ExplainProcCalls)
	})

	t.Run("transient failure leaves schema enabled", func(t *testing.T) {
		mockClient := client.NewMockClient()
		mockClient.SelectSchemaErr = &mysql.MySQLError{Number: 1205, Message: "lock wait timeout"}
		acquirer := NewPlanAcquirer(mockClient, zap.NewNop())

		plan, err := acquirer.AcquirePlan(context.Background(), "orders", "SELECT 1")
		require.NoError(t, err)
		assert.Empty(t, plan)
		assert.False(t, acquirer.SchemaDisabled("orders"))
	})

	t.Run("unstructured error propagates", func(t *testing.T) {
		mockClient := client.NewMockClient()
		mockClient.SelectSchemaErr = errors.New("driver: bad connection")
		acquirer := NewPlanAcquirer(mockClient, zap.NewNop())

		_, err := acquirer.AcquirePlan(context.Background(), "orders", "SELECT 1")
		require.Error(t, err)
		assert.False(t, acquirer.SchemaDisabled("orders"))
	})
}

func TestAcquirePlanEmptySchemaSkipsUse(t *testing.T) {
	mockClient := client.NewMockClient()
	mockClient.ProcedurePlan = testPlan
	acquirer := NewPlanAcquirer(mockClient, zap.NewNop())

	plan, err := acquirer.AcquirePlan(context.Background(), "", "SELECT 1")
	require.NoError(t, err)
	assert.Equal(t, testPlan, plan)
	assert.Equal(t, 0, mockClient.SelectSchemaCalls)
}

func TestAcquirePlanSchemaStatesAreIndependent(t *testing.T) {
	mockClient := client.NewMockClient()
	mockClient.ExplainProcErr = &mysql.MySQLError{Number: 1370, Message: "execute command denied"}
	mockClient.ExplainDirectErr = &mysql.MySQLError{Number: 1046, Message: "no database selected"}
	acquirer := NewPlanAcquirer(mockClient, zap.NewNop())

	_, err := acquirer.AcquirePlan(context.Background(), "orders", "SELECT 1")
	require.NoError(t, err)
	require.True(t, acquirer.SchemaDisabled("orders"))

	// A different schema still resolves on its own.
	mockClient.ExplainProcErr = nil
	mockClient.ProcedurePlan = testPlan
	plan, err := acquirer.AcquirePlan(context.Background(), "billing", "SELECT 1")
	require.NoError(t, err)
	assert.Equal(t, testPlan, plan)
	assert.False(t, acquirer.SchemaDisabled("billing"))
}

func TestAcquirePlanDisablesSchemaWhenResolvedMethodPermanentlyFails(t *testing.T) {
	mockClient := client.NewMockClient()
	mockClient.ProcedurePlan = testPlan
	acquirer := NewPlanAcquirer(mockClient, zap.NewNop())

	_, err := acquirer.AcquirePlan(context.Background(), "orders", "SELECT 1")
	require.NoError(t, err)

	// Privileges revoked after the method was resolved.
	mockClient.ProcedurePlan = ""
	mockClient.ExplainProcErr = &mysql.MySQLError{Number: 1370, Message: "execute command denied"}

	plan, err := acquirer.AcquirePlan(context.Background(), "orders", "SELECT 2")
	require.NoError(t, err)
	assert.Empty(t, plan)
	assert.True(t, acquirer.SchemaDisabled("orders"))
	// The direct strategy is not consulted once a method has been resolved.
	assert.Equal(t, 0, mockClient.ExplainDirectCalls)
}
