// Package web serves the tracker's HTTP surface.
//
// Routes:
//   - GET /health     component status for probes
//   - GET /api/stats  retained run state as JSON
//   - GET /ws         websocket stream for overlays
package web
