// Package registry provides the duration, repetition and acquisition
// lookups that back dynamic operation strategies.
//
// Tables and registries are plain injected values; nothing in this
// package is process global. A circuit built against one duration table
// re-resolves its timing whenever the table changes, because operation
// strategies consult the table on every call.
package registry
