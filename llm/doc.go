// Copyright (c) GraphFlow Authors.
// Licensed under the MIT License.

/*
Package llm defines the unified LLM provider contract used by agents.

A Provider exposes three operations: single-prompt completion, multi-turn
chat, and text embedding. Concrete adapters live under providers/; the
middleware subpackage provides composable provider decorators such as
rate limiting. Provider failures are surfaced as types.Error with the
PROVIDER_ERROR code and are never retried by the framework.
*/
package llm
