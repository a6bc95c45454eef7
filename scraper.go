// Copyright The OpenTelemetry Authors
// SPDX-License-Identifier: Apache-2.0

package mysqlexecplanreceiver // import "github.com/open-telemetry/opentelemetry-collector-contrib/receiver/mysqlexecplanreceiver"

import (
	"context"

	"go.opentelemetry.io/collector/component"
	"go.opentelemetry.io/collector/pdata/plog"
	"go.opentelemetry.io/collector/receiver"
	"go.uber.org/zap"

	"github.com/open-telemetry/opentelemetry-collector-contrib/receiver/mysqlexecplanreceiver/client"
	"github.com/open-telemetry/opentelemetry-collector-contrib/receiver/mysqlexecplanreceiver/scrapers"
)

// execPlanScraper ties the collection engine to the scraper controller
// lifecycle.
type execPlanScraper struct {
	logger *zap.Logger
	config *Config

	planScraper *scrapers.PlanScraper
}

func newExecPlanScraper(params receiver.Settings, cfg *Config) *execPlanScraper {
	return &execPlanScraper{
		logger: params.Logger,
		config: cfg,
	}
}

func (s *execPlanScraper) start(ctx context.Context, _ component.Host) error {
	if !s.config.ExecutionPlans.Enabled {
		s.logger.Info("Execution plan collection is disabled")
		return nil
	}
	dbClient := client.NewMySQLClient(client.Config{
		Username:             s.config.Username,
		Password:             s.config.Password,
		Endpoint:             s.config.Endpoint,
		Database:             s.config.Database,
		Transport:            string(s.config.Transport),
		AllowNativePasswords: s.config.AllowNativePasswords,
	})
	s.planScraper = scrapers.NewPlanScraper(
		dbClient,
		s.logger,
		s.config.ExecutionPlans.RowLimit,
		s.config.ExecutionPlans.AutoEnableHistory,
	)
	return s.planScraper.Start(ctx)
}

func (s *execPlanScraper) shutdown(ctx context.Context) error {
	if s.planScraper == nil {
		return nil
	}
	return s.planScraper.Shutdown(ctx)
}

func (s *execPlanScraper) scrape(ctx context.Context) (plog.Logs, error) {
	if s.planScraper == nil {
		return plog.NewLogs(), nil
	}
	events, err := s.planScraper.CollectPlans(ctx)
	if err != nil {
		return plog.NewLogs(), err
	}
	s.logger.Debug("Collected execution plans", zap.Int("count", len(events)))
	return eventsToLogs(s.config.Endpoint, s.config.Tags, events), nil
}
