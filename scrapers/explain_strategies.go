// Copyright The OpenTelemetry Authors
// SPDX-License-Identifier: Apache-2.0

package scrapers

import (
	"context"

	"go.uber.org/zap"

	"github.com/open-telemetry/opentelemetry-collector-contrib/receiver/mysqlexecplanreceiver/client"
)

// explainMethod identifies one way of obtaining an execution plan. Methods
// are tried in declaration order; the first to succeed for a schema becomes
// that schema's resolved method.
type explainMethod int

const (
	methodUnresolved explainMethod = iota
	methodProcedure
	methodDirect
)

func (m explainMethod) String() string {
	switch m {
	case methodProcedure:
		return "procedure"
	case methodDirect:
		return "statement"
	default:
		return "unresolved"
	}
}

type explainStrategy interface {
	method() explainMethod
	// attempt runs the strategy against the pinned session and returns the
	// JSON plan. Failures come back classified as retryable or non-retryable
	// where the server error shape allows it.
	attempt(ctx context.Context, statement string) (string, error)
}

// procedureExplain explains through the datadog.explain_statement stored
// procedure, which runs with the definer's privileges and so works for
// monitoring users without direct table access.
type procedureExplain struct {
	client client.Client
	logger *zap.Logger
}

func (p *procedureExplain) method() explainMethod { return methodProcedure }

func (p *procedureExplain) attempt(ctx context.Context, statement string) (string, error) {
	plan, err := p.client.ExplainWithProcedure(ctx, statement)
	if err != nil {
		return "", classifyProcedureExplain(err)
	}
	return plan, nil
}

// directExplain runs EXPLAIN FORMAT=json with the monitoring user's own
// privileges.
type directExplain struct {
	client client.Client
	logger *zap.Logger
}

func (d *directExplain) method() explainMethod { return methodDirect }

func (d *directExplain) attempt(ctx context.Context, statement string) (string, error) {
	plan, err := d.client.ExplainDirect(ctx, statement)
	if err != nil {
		classified := classifyDirectExplain(err)
		if isNonRetryable(classified) {
			d.logger.Warn("Cannot collect execution plans due to insufficient permission",
				zap.Error(err))
		}
		return "", classified
	}
	return plan, nil
}
