// Package results is the execution state store for multi-stage pipeline
// runs. Each stage invocation records its outcome as a StageResult (success
// flag, message, named artifacts); the Store accumulates results across
// invocations, reconciling reruns of the same stage/sub-stage identity with
// a deterministic deep merge in which the newer run wins on conflicting
// values while keys unique to either side survive.
//
// The store persists in three formats: a YAML tree and a JSON record, both
// write-oriented views of the rendered snapshot for reporting and CI
// archiving, and a binary msgpack snapshot that round-trips the live store
// exactly (entry order, identities, artifact kinds) so the next pipeline
// invocation can reload it and continue upserting. A missing or empty
// snapshot file loads as an empty store; anything else that is not a
// snapshot is rejected with ErrCorruptSnapshot.
//
// The store is single-writer and process-local: one invocation loads the
// snapshot, upserts synchronously, and writes it back. Concurrent writers
// against the same snapshot path are last-writer-wins.
package results
