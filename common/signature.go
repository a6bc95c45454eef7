// Copyright The OpenTelemetry Authors
// SPDX-License-Identifier: Apache-2.0

package common

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// ComputeSignature returns a stable hex signature for a normalized query or
// plan, used to correlate events for the same shape across emissions.
func ComputeSignature(text string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(text))
}
