// Copyright The OpenTelemetry Authors
// SPDX-License-Identifier: Apache-2.0

package scrapers

import (
	"encoding/json"
	"strconv"
)

// parsePlanCost extracts query_block.cost_info.query_cost from a JSON
// execution plan. MySQL reports the cost as a string; both string and number
// encodings are accepted. Missing or malformed costs come back as 0.
func parsePlanCost(plan string) float64 {
	var doc struct {
		QueryBlock struct {
			CostInfo struct {
				QueryCost any `json:"query_cost"`
			} `json:"cost_info"`
		} `json:"query_block"`
	}
	if err := json.Unmarshal([]byte(plan), &doc); err != nil {
		return 0
	}
	switch cost := doc.QueryBlock.CostInfo.QueryCost.(type) {
	case string:
		parsed, err := strconv.ParseFloat(cost, 64)
		if err != nil {
			return 0
		}
		return parsed
	case float64:
		return cost
	default:
		return 0
	}
}
