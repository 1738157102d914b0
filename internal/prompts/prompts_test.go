// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package prompts

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIdentifierValidator(t *testing.T) {
	validate := identifierValidator(map[string]bool{"UserDTO": true})

	assert.NoError(t, validate("OrderDTO"))
	assert.NoError(t, validate("_Draft"))
	assert.ErrorContains(t, validate(""), "required")
	assert.ErrorContains(t, validate("1DTO"), "must start")
	assert.ErrorContains(t, validate("Order-DTO"), "must start")
	assert.ErrorContains(t, validate("UserDTO"), "already exists")
}

func TestNamespaceValidator(t *testing.T) {
	optional := namespaceValidator(true)
	assert.NoError(t, optional(""))
	assert.NoError(t, optional(`App\DTO\Admin`))
	assert.NoError(t, optional("App.DTO"))
	assert.Error(t, optional(`App\\DTO`))

	assert.Error(t, namespaceValidator(false)(""))
}

func TestFprintResult(t *testing.T) {
	var buf bytes.Buffer
	FprintResult(&buf, []ResultField{{Label: "Class", Value: "UserDTO"}}, "done")

	out := buf.String()
	assert.Contains(t, out, "Class:")
	assert.Contains(t, out, "UserDTO")
	assert.Contains(t, out, "done")
}
