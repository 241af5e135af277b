// Package orchestrator wires the loader, frontend parser, plan builder and
// renderer into a single Generate call. Missing dependencies fall back to the
// built-in implementations so callers can start from orchestrator.New().
package orchestrator
