// Package jsonschema compiles JSON Schema documents (drafts 4, 6, 7, 2019-09,
// and 2020-12) into executable validators. A Compiler builds the schema
// resource graph, resolves $ref/$dynamicRef/$recursiveRef targets, and emits
// per-node step programs that the runtime executes with full evaluated-
// property/item tracking for unevaluatedProperties and unevaluatedItems.
//
// Compiled validators are immutable and safe for concurrent use; every
// validation call owns its own tracker and dynamic scope.
//
// Credit to https://github.com/santhosh-tekuri/jsonschema for format validators.
package jsonschema
