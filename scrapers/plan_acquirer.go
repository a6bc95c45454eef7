// Copyright The OpenTelemetry Authors
// SPDX-License-Identifier: Apache-2.0

package scrapers

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/open-telemetry/opentelemetry-collector-contrib/receiver/mysqlexecplanreceiver/client"
)

// explainableStatements are the statement keywords EXPLAIN supports. Anything
// else is skipped before touching the database.
var explainableStatements = map[string]struct{}{
	"select":  {},
	"table":   {},
	"delete":  {},
	"insert":  {},
	"replace": {},
	"update":  {},
}

func canExplainStatement(statement string) bool {
	keyword, _, _ := strings.Cut(strings.TrimSpace(statement), " ")
	_, ok := explainableStatements[strings.ToLower(keyword)]
	return ok
}

// schemaState is the per-schema acquisition state. A schema starts
// unresolved, becomes resolved once a strategy succeeds, and becomes disabled
// when the schema is unusable or every strategy has failed non-retryably.
// Disabled is terminal until process restart.
type schemaState struct {
	disabled bool
	method   explainMethod
}

// PlanAcquirer obtains execution plans for statements, remembering per schema
// which acquisition method works. The cache only grows; entries are never
// evicted or reset across collection cycles.
type PlanAcquirer struct {
	client     client.Client
	logger     *zap.Logger
	strategies []explainStrategy
	schemas    map[string]*schemaState
}

func NewPlanAcquirer(dbClient client.Client, logger *zap.Logger) *PlanAcquirer {
	return &PlanAcquirer{
		client: dbClient,
		logger: logger,
		strategies: []explainStrategy{
			&procedureExplain{client: dbClient, logger: logger},
			&directExplain{client: dbClient, logger: logger},
		},
		schemas: make(map[string]*schemaState),
	}
}

func (a *PlanAcquirer) state(schema string) *schemaState {
	st, ok := a.schemas[schema]
	if !ok {
		st = &schemaState{}
		a.schemas[schema] = st
	}
	return st
}

// SchemaDisabled reports whether plan collection has been permanently
// disabled for the schema.
func (a *PlanAcquirer) SchemaDisabled(schema string) bool {
	st, ok := a.schemas[schema]
	return ok && st.disabled
}

func (a *PlanAcquirer) disableSchema(schema string, st *schemaState, reason string, err error) {
	st.disabled = true
	a.logger.Debug("Disabling execution plan collection for schema",
		zap.String("schema", schema),
		zap.String("reason", reason),
		zap.Error(err))
}

// AcquirePlan returns the JSON execution plan for the statement, or an empty
// string when no plan can be obtained this cycle. A disabled schema returns
// immediately without any database calls. Errors the server shape does not
// let us classify are returned to the caller.
func (a *PlanAcquirer) AcquirePlan(ctx context.Context, schema, statement string) (string, error) {
	st := a.state(schema)
	if st.disabled {
		return "", nil
	}

	if schema != "" {
		if err := a.client.SelectSchema(ctx, schema); err != nil {
			classified := classifySchemaSwitch(err)
			switch {
			case isNonRetryable(classified):
				a.disableSchema(schema, st, "schema not usable", err)
				return "", nil
			case isRetryable(classified):
				a.logger.Debug("Transient error switching to schema",
					zap.String("schema", schema), zap.Error(err))
				return "", nil
			default:
				return "", classified
			}
		}
	}

	if st.method != methodUnresolved {
		return a.attemptResolved(ctx, schema, st, statement)
	}

	allNonRetryable := len(a.strategies) > 0
	for _, strategy := range a.strategies {
		plan, err := strategy.attempt(ctx, statement)
		if err != nil {
			switch {
			case isNonRetryable(err):
				a.logger.Debug("Explain strategy ruled out for schema",
					zap.String("schema", schema),
					zap.Stringer("method", strategy.method()),
					zap.Error(err))
			case isRetryable(err):
				allNonRetryable = false
				a.logger.Debug("Explain strategy failed",
					zap.String("schema", schema),
					zap.Stringer("method", strategy.method()),
					zap.Error(err))
			default:
				return "", err
			}
			continue
		}
		if plan == "" {
			allNonRetryable = false
			continue
		}
		st.method = strategy.method()
		a.logger.Debug("Resolved execution plan strategy for schema",
			zap.String("schema", schema),
			zap.Stringer("method", st.method))
		return plan, nil
	}

	if allNonRetryable {
		a.disableSchema(schema, st, "all explain strategies failed with permanent errors", nil)
	}
	return "", nil
}

// attemptResolved runs only the schema's resolved strategy. A non-retryable
// failure of a previously working method disables the schema.
func (a *PlanAcquirer) attemptResolved(ctx context.Context, schema string, st *schemaState, statement string) (string, error) {
	for _, strategy := range a.strategies {
		if strategy.method() != st.method {
			continue
		}
		plan, err := strategy.attempt(ctx, statement)
		if err != nil {
			switch {
			case isNonRetryable(err):
				a.disableSchema(schema, st, "resolved strategy failed with permanent error", err)
				return "", nil
			case isRetryable(err):
				return "", nil
			default:
				return "", err
			}
		}
		return plan, nil
	}
	return "", nil
}
