// Copyright The OpenTelemetry Authors
// SPDX-License-Identifier: Apache-2.0

package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeSignature(t *testing.T) {
	sig := ComputeSignature("SELECT * FROM users WHERE id = ?")

	assert.Len(t, sig, 16)
	assert.Regexp(t, "^[0-9a-f]{16}$", sig)
	assert.Equal(t, sig, ComputeSignature("SELECT * FROM users WHERE id = ?"),
		"signatures must be deterministic")
	assert.NotEqual(t, sig, ComputeSignature("SELECT * FROM orders WHERE id = ?"))
}
