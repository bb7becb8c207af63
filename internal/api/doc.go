// Package api hosts the operational HTTP server exposed while a crawl runs.
// Notable routes:
//   - GET /healthz and /readyz for liveness and readiness probes.
//   - GET /metrics for Prometheus scraping.
//   - GET /ledger for a read-only snapshot of per-task crawl progress.
package api
