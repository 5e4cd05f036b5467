// Copyright (c) GraphFlow Authors.
// Licensed under the MIT License.

/*
Package memory provides key/value memory stores for agents.

Store is the collaborator contract the framework core depends on. Three
implementations ship with the module:

  - InMemoryStore — mutex-guarded map with optional TTL and max-entries
    eviction; suitable for local development and tests
  - RedisStore    — go-redis backed store with JSON-encoded values
  - SQLStore      — gorm/sqlite backed store for single-node persistence

The core never assumes eviction or TTL semantics; those are properties of
the chosen backend.
*/
package memory
