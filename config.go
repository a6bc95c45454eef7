// Copyright The OpenTelemetry Authors
// SPDX-License-Identifier: Apache-2.0

package mysqlexecplanreceiver // import "github.com/open-telemetry/opentelemetry-collector-contrib/receiver/mysqlexecplanreceiver"

import (
	"errors"

	"go.opentelemetry.io/collector/config/confignet"
	"go.opentelemetry.io/collector/scraper/scraperhelper"
	"go.uber.org/multierr"
)

// Config defines the configuration for the MySQL execution plan receiver.
type Config struct {
	scraperhelper.ControllerConfig `mapstructure:",squash"`
	confignet.AddrConfig           `mapstructure:",squash"`

	Username             string `mapstructure:"username"`
	Password             string `mapstructure:"password"`
	Database             string `mapstructure:"database"`
	AllowNativePasswords bool   `mapstructure:"allow_native_passwords"`

	// Tags are added to every emitted batch as resource attributes.
	Tags map[string]string `mapstructure:"tags"`

	ExecutionPlans ExecutionPlansConfig `mapstructure:"execution_plans"`
}

// ExecutionPlansConfig controls the statement history scan and plan
// acquisition.
type ExecutionPlansConfig struct {
	// Enabled gates plan collection. When off the receiver does no database
	// work at all.
	Enabled bool `mapstructure:"enabled"`

	// RowLimit caps how many statement events one collection cycle fetches
	// from events_statements_history_long.
	RowLimit int `mapstructure:"row_limit"`

	// AutoEnableHistory makes the receiver attempt to turn on the
	// events_statements_history_long consumer itself. Requires UPDATE on
	// performance_schema.setup_consumers.
	AutoEnableHistory bool `mapstructure:"auto_enable_history"`
}

// Validate validates the configuration
func (cfg *Config) Validate() error {
	var err error

	if cfg.Endpoint == "" {
		err = multierr.Append(err, errors.New("endpoint is required"))
	}
	if cfg.Username == "" {
		err = multierr.Append(err, errors.New("username is required"))
	}
	if cfg.ControllerConfig.CollectionInterval <= 0 {
		err = multierr.Append(err, errors.New("collection_interval must be positive"))
	}
	if cfg.ExecutionPlans.RowLimit <= 0 {
		err = multierr.Append(err, errors.New("execution_plans.row_limit must be positive"))
	}

	return err
}
