// Package resolver implements the incremental key remapping engine.
//
// The resolver owns a bounded queue of raw symbols that have been typed
// but not yet classified. On every batch of input it runs an online
// longest-match scan against the mapping table: a pending prefix can be
// a complete match (the mapped output is spliced into the queue), an
// ambiguous prefix (a longer mapping could still match, so the resolver
// waits), or no match at all (the leading symbol resolves literally).
// Resolved symbols are dispatched in order to the active mode's handler.
//
// Ambiguity never blocks forever: each non-timeout submission rearms a
// single-shot disambiguation timer, and when it fires the pending prefix
// is forced to resolve on the best match found so far.
package resolver
