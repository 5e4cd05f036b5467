// Copyright (c) GraphFlow Authors.
// Licensed under the MIT License.

/*
Package agent implements the core actor of the GraphFlow framework.

An Agent owns a Role, a registry of named capability handlers, and optional
collaborators (an LLM provider, a memory store, a knowledge graph). Incoming
tasks are routed by type: an exact capability match wins, otherwise the
agent's generic processor handles the whole task.

Agents are built three ways:

  - New with functional options, for direct construction
  - Builder, for fluent call-chain construction
  - Factory, for template-based construction (researcher, assistant,
    executor, and other specialized variants)
*/
package agent
