// Package cache memoizes evaluation results on disk, keyed by a SHA256 hash
// of the evaluated input.
//
// Entries are JSON files under ~/.esgready/cache/ with a TTL (default one
// hour). The cache holds nothing that cannot be recomputed: deleting the
// directory at any time only costs a re-evaluation.
package cache
