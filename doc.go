// Copyright The OpenTelemetry Authors
// SPDX-License-Identifier: Apache-2.0

//go:generate mdatagen metadata.yaml

// Package mysqlexecplanreceiver implements a receiver that harvests recently
// executed statements from MySQL performance_schema, acquires their execution
// plans using the most privileged method available per schema, and emits
// enriched plan events as logs.
package mysqlexecplanreceiver // import "github.com/open-telemetry/opentelemetry-collector-contrib/receiver/mysqlexecplanreceiver"
