// Package storage defines the durable catalog repository contract and its
// binary serialization. The badger sub-package provides the BadgerDB
// implementation used by the seeding and build pipelines.
package storage
