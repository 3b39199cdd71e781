// Package server exposes the limb multiplier and the verification sweeps over
// HTTP, with Prometheus metrics, security headers and CORS.
//
// Endpoints:
//   - GET /multiply?a=&b=&width=  trace of one limb multiplication
//   - GET /verify?suite=&algo=&count=&seed=  digest comparison of a sweep
//   - GET /health  liveness check
//   - GET /metrics  Prometheus exposition
package server
