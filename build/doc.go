// Package build implements the offline index build pipeline: synthesize
// posting text, embed it in concurrent batches, and assemble the vector
// index and id map sequentially in posting-store order.
//
// A build is a one-shot, full-corpus operation. There is no incremental
// insert or delete; catalog changes require a full rebuild, and a failed
// build publishes nothing. Builds against the same target artifacts must
// be serialized by the caller.
package build
