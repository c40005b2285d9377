// Package catalog provides the immutable posting-store snapshot and the
// CSV ingestion path that feeds it. Snapshots are built offline, owned by
// the serving process as read-only state, and replaced wholesale when the
// catalog changes.
package catalog
