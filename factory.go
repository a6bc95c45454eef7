// Copyright The OpenTelemetry Authors
// SPDX-License-Identifier: Apache-2.0

package mysqlexecplanreceiver // import "github.com/open-telemetry/opentelemetry-collector-contrib/receiver/mysqlexecplanreceiver"

import (
	"context"
	"time"

	"go.opentelemetry.io/collector/component"
	"go.opentelemetry.io/collector/config/confignet"
	"go.opentelemetry.io/collector/consumer"
	"go.opentelemetry.io/collector/receiver"
	"go.opentelemetry.io/collector/scraper"
	"go.opentelemetry.io/collector/scraper/scraperhelper"

	"github.com/open-telemetry/opentelemetry-collector-contrib/receiver/mysqlexecplanreceiver/internal/metadata"
)

// NewFactory creates a factory for the MySQL execution plan receiver.
func NewFactory() receiver.Factory {
	return receiver.NewFactory(
		metadata.Type,
		createDefaultConfig,
		receiver.WithLogs(createLogsReceiver, metadata.LogsStability),
	)
}

func createDefaultConfig() component.Config {
	cfg := scraperhelper.NewDefaultControllerConfig()
	cfg.CollectionInterval = 60 * time.Second
	return &Config{
		ControllerConfig:     cfg,
		AllowNativePasswords: true,
		Username:             "root",
		AddrConfig: confignet.AddrConfig{
			Endpoint:  "localhost:3306",
			Transport: confignet.TransportTypeTCP,
		},
		ExecutionPlans: ExecutionPlansConfig{
			Enabled:           true,
			RowLimit:          500,
			AutoEnableHistory: true,
		},
	}
}

func createLogsReceiver(
	_ context.Context,
	params receiver.Settings,
	rConf component.Config,
	consumer consumer.Logs,
) (receiver.Logs, error) {
	cfg := rConf.(*Config)
	eps := newExecPlanScraper(params, cfg)

	s, err := scraper.NewLogs(
		eps.scrape,
		scraper.WithStart(eps.start),
		scraper.WithShutdown(eps.shutdown),
	)
	if err != nil {
		return nil, err
	}

	opt := scraperhelper.AddFactoryWithConfig(
		scraper.NewFactory(metadata.Type, nil,
			scraper.WithLogs(func(context.Context, scraper.Settings, component.Config) (scraper.Logs, error) {
				return s, nil
			}, metadata.LogsStability)), nil)

	return scraperhelper.NewLogsController(
		&cfg.ControllerConfig,
		params,
		consumer,
		opt,
	)
}
