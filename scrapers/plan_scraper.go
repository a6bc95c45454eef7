// Copyright The OpenTelemetry Authors
// SPDX-License-Identifier: Apache-2.0

package scrapers

import (
	"context"

	"go.uber.org/zap"

	"github.com/open-telemetry/opentelemetry-collector-contrib/receiver/mysqlexecplanreceiver/client"
	"github.com/open-telemetry/opentelemetry-collector-contrib/receiver/mysqlexecplanreceiver/common"
	"github.com/open-telemetry/opentelemetry-collector-contrib/receiver/mysqlexecplanreceiver/models"
)

// PlanScraper runs one collection cycle: scan new statement events, acquire
// an execution plan for each explainable one, and assemble the plan events
// to emit.
type PlanScraper struct {
	client     client.Client
	logger     *zap.Logger
	scanner    *HistoryScanner
	acquirer   *PlanAcquirer
	obfuscator *common.Obfuscator
}

func NewPlanScraper(dbClient client.Client, logger *zap.Logger, rowLimit int, autoEnableHistory bool) *PlanScraper {
	return &PlanScraper{
		client:     dbClient,
		logger:     logger,
		scanner:    NewHistoryScanner(dbClient, logger, rowLimit, autoEnableHistory),
		acquirer:   NewPlanAcquirer(dbClient, logger),
		obfuscator: common.NewObfuscator(),
	}
}

// Start prepares the pinned session. sql_notes is turned off so EXPLAIN on
// statements that trigger notes does not pollute the session diagnostics.
func (p *PlanScraper) Start(ctx context.Context) error {
	if err := p.client.Connect(ctx); err != nil {
		return err
	}
	if err := p.client.DisableSQLNotes(ctx); err != nil {
		p.logger.Warn("Failed to disable sql_notes on collection session", zap.Error(err))
	}
	return nil
}

func (p *PlanScraper) Shutdown(_ context.Context) error {
	p.obfuscator.Stop()
	return p.client.Close()
}

// CollectPlans runs one scan-and-explain cycle and returns the plan events
// obtained. Events for which no plan could be acquired are skipped, not
// errored: only connectivity-level failures abort the cycle.
func (p *PlanScraper) CollectPlans(ctx context.Context) ([]models.PlanEvent, error) {
	ready, err := p.scanner.EnsureReady(ctx)
	if err != nil {
		return nil, err
	}
	if !ready {
		return nil, nil
	}
	res, err := p.scanner.Scan(ctx)
	if err != nil {
		return nil, err
	}
	if res.Truncated > 0 {
		p.logger.Warn("Some statement events had truncated SQL text and were skipped",
			zap.Int("truncated", res.Truncated),
			zap.Int("attempted", res.Truncated+len(res.Events)))
	}

	var planEvents []models.PlanEvent
	for _, event := range res.Events {
		schema := event.GetSchema()
		if p.acquirer.SchemaDisabled(schema) {
			continue
		}
		statement := event.GetSQLText()
		if !canExplainStatement(statement) {
			p.logger.Debug("Skipping statement that cannot be explained",
				zap.String("schema", schema))
			continue
		}
		plan, err := p.acquirer.AcquirePlan(ctx, schema, statement)
		if err != nil {
			return nil, err
		}
		if plan == "" {
			continue
		}
		planEvent, ok := p.buildEvent(event, plan)
		if !ok {
			continue
		}
		planEvents = append(planEvents, planEvent)
	}
	return planEvents, nil
}

// buildEvent obfuscates the statement and plan and fills in signatures and
// cost. An event that cannot be obfuscated is dropped: raw SQL never leaves
// the process.
func (p *PlanScraper) buildEvent(event models.StatementEvent, plan string) (models.PlanEvent, bool) {
	obfuscated, err := p.obfuscator.ObfuscateSQL(event.GetSQLText())
	if err != nil {
		p.logger.Debug("Failed to obfuscate statement", zap.Error(err))
		return models.PlanEvent{}, false
	}
	normalizedPlan, err := p.obfuscator.NormalizePlan(plan)
	if err != nil {
		p.logger.Debug("Failed to normalize execution plan", zap.Error(err))
		return models.PlanEvent{}, false
	}
	obfuscatedPlan, err := p.obfuscator.ObfuscatePlan(plan)
	if err != nil {
		p.logger.Debug("Failed to obfuscate execution plan", zap.Error(err))
		return models.PlanEvent{}, false
	}
	return models.PlanEvent{
		DurationNS:     event.TimerWaitNS.Float64,
		Schema:         event.GetSchema(),
		Statement:      obfuscated,
		QuerySignature: common.ComputeSignature(obfuscated),
		Plan:           plan,
		PlanCost:       parsePlanCost(plan),
		PlanSignature:  common.ComputeSignature(normalizedPlan),
		NormalizedPlan: normalizedPlan,
		ObfuscatedPlan: obfuscatedPlan,
		DigestText:     event.GetDigestText(),
		Counters:       event.Counters(),
	}, true
}
