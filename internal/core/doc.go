// Package core provides the conversion service shared by the HTTP server
// and the command-line tool.
//
// The package wraps the tabular codec with everything a deployed converter
// needs and stays independent of any transport.
//
// # Service
//
// [Service] is the entry point. Every call takes a slot from a
// [ConversionLimiter], runs the conversion, logs the outcome and records a
// [history.Entry]:
//
//	svc := core.NewService(history.NewMemoryStore(500), core.Options{
//	    Comma:         ';',
//	    MaxConcurrent: 8,
//	})
//	res, err := svc.Decode(ctx, text, core.Source{Name: "upload.csv"})
//
// Per-request overrides travel in [Source]: a non-zero Comma or a non-nil
// Strict replaces the service default for that call only.
//
// # Concurrency
//
// At most Options.MaxConcurrent conversions run at once. Callers wait up to
// Options.MaxWaitTime for a slot and then get [ErrTooManyConversions].
// [Service.WaitForConversions] blocks until in-flight work drains and is used
// during graceful shutdown.
//
// # History retention
//
// [Service.StartPruneScheduler] deletes entries older than the retention
// window on a ticker.
//
// # Error Handling
//
// Technical errors are mapped to user-facing messages with support codes by
// [MapError]:
//
//   - ARG001, CSV001, SHP001, ENC001: conversion errors from the codec
//   - INP001-INP002: input size and empty input
//   - CNV001-CNV003: busy, cancelled, timed out
//   - HST001, FN001: unknown history entry or function
//
// Request metadata for history entries (client IP, user agent) is attached
// to the context with [ContextWithIPAddress] and [ContextWithUserAgent].
package core
