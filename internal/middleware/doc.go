// Package middleware provides the ambient HTTP middleware applied around
// the authentication and authorization gates: request IDs, structured
// request logging, security headers, per-IP login rate limiting, and
// Prometheus instrumentation.
//
// None of these middlewares make authorization decisions; that is the
// job of the auth and rbac packages.
package middleware
