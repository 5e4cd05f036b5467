// Copyright (c) GraphFlow Authors.
// Licensed under the MIT License.

// Package testutil holds shared test helpers and mocks.
package testutil
