// Package pexels provides a client for the Pexels REST API along with the
// response plumbing the CLI is built on: transparent pagination into a single
// aggregated document, normalization of list responses into a stable
// {data, meta} envelope, and dot-path field projection with wildcard and
// shorthand-group support.
//
// API responses are handled as schemaless JSON documents
// (map[string]interface{}) throughout, so upstream additions never break the
// client.
package pexels
