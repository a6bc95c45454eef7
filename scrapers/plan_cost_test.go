// Copyright The OpenTelemetry Authors
// SPDX-License-Identifier: Apache-2.0

package scrapers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePlanCost(t *testing.T) {
	tests := []struct {
		name string
		plan string
		want float64
	}{
		{
			name: "string cost",
			plan: `{"query_block": {"cost_info": {"query_cost": "12.50"}}}`,
			want: 12.5,
		},
		{
			name: "numeric cost",
			plan: `{"query_block": {"cost_info": {"query_cost": 8.75}}}`,
			want: 8.75,
		},
		{
			name: "missing cost_info",
			plan: `{"query_block": {"select_id": 1}}`,
			want: 0,
		},
		{
			name: "missing query_block",
			plan: `{"warnings": []}`,
			want: 0,
		},
		{
			name: "unparseable cost string",
			plan: `{"query_block": {"cost_info": {"query_cost": "n/a"}}}`,
			want: 0,
		},
		{
			name: "malformed document",
			plan: `{"query_block": `,
			want: 0,
		},
		{
			name: "empty document",
			plan: ``,
			want: 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parsePlanCost(tt.plan))
		})
	}
}
