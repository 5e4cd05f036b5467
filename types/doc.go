// Copyright (c) GraphFlow Authors.
// Licensed under the MIT License.

/*
Package types provides the shared type contracts of the GraphFlow framework.

types is the lowest-level public package and depends on nothing else in the
module. It defines the structured error model used by every other package:

  - Error / ErrorCode — structured errors with a cause chain and a
    retryable marker
  - GetErrorCode / IsErrorCode — error-kind inspection helpers that work
    through wrapped chains
*/
package types
