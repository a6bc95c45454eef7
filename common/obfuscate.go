// Copyright The OpenTelemetry Authors
// SPDX-License-Identifier: Apache-2.0

package common

import (
	"github.com/DataDog/datadog-agent/pkg/obfuscate"
)

// Obfuscator strips literal values from SQL statements and execution plans
// before they leave the process.
type Obfuscator struct {
	inner *obfuscate.Obfuscator
}

// planNormalizeSettings and planObfuscateSettings mirror the MySQL portion of
// the datadog-agent defaults behind obfuscate_sql_exec_plan (the agent's
// defaultSQLPlanNormalizeSettings / defaultSQLPlanObfuscateSettings); without
// them ObfuscateSQLExecPlan has no JSON obfuscator to run.
var planNormalizeSettings = obfuscate.JSONConfig{
	Enabled:            true,
	ObfuscateSQLValues: []string{"attached_condition"},
	KeepValues: []string{
		"access_type",
		"backward_index_scan",
		"cacheable",
		"delete",
		"dependent",
		"first_match",
		"key",
		"key_length",
		"possible_keys",
		"ref",
		"select_id",
		"table_name",
		"update",
		"used_columns",
		"used_key_parts",
		"using_MRR",
		"using_filesort",
		"using_index",
		"using_join_buffer",
		"using_temporary_table",
	},
}

var planObfuscateSettings = obfuscate.JSONConfig{
	Enabled: true,
	KeepValues: append([]string{
		"cost_info",
		"filtered",
		"rows_examined_per_join",
		"rows_examined_per_scan",
		"rows_produced_per_join",
	}, planNormalizeSettings.KeepValues...),
	ObfuscateSQLValues: planNormalizeSettings.ObfuscateSQLValues,
}

func NewObfuscator() *Obfuscator {
	return &Obfuscator{
		inner: obfuscate.NewObfuscator(obfuscate.Config{
			SQL: obfuscate.SQLConfig{
				DBMS: "mysql",
			},
			SQLExecPlan:          planObfuscateSettings,
			SQLExecPlanNormalize: planNormalizeSettings,
		}),
	}
}

// ObfuscateSQL returns the statement with literals replaced by placeholders.
func (o *Obfuscator) ObfuscateSQL(sql string) (string, error) {
	result, err := o.inner.ObfuscateSQLString(sql)
	if err != nil {
		return "", err
	}
	return result.Query, nil
}

// ObfuscatePlan removes literal values from a JSON execution plan while
// keeping its structure.
func (o *Obfuscator) ObfuscatePlan(plan string) (string, error) {
	return o.inner.ObfuscateSQLExecPlan(plan, false)
}

// NormalizePlan additionally drops cost and row estimates so that plans for
// the same query shape compare equal.
func (o *Obfuscator) NormalizePlan(plan string) (string, error) {
	return o.inner.ObfuscateSQLExecPlan(plan, true)
}

// Stop releases the obfuscator's internal cache.
func (o *Obfuscator) Stop() {
	o.inner.Stop()
}
