// Package api wires the gateway's route table and owns the login
// boundary.
//
// # Route Map
//
//	GET    /               service banner
//	GET    /health         liveness
//	GET    /metrics        Prometheus metrics
//	POST   /auth/login     credential exchange for a bearer token
//	GET    /auth/users     seeded users, secrets stripped
//	GET    /api/public     no gates
//	GET    /api/guest      authenticate + role in {guest,user,admin}
//	GET    /api/user       authenticate + role in {user,admin}
//	GET    /api/admin      authenticate + role in {admin}
//	POST   /api/admin/users        authenticate + permission manage_users
//	DELETE /api/admin/users/{id}   authenticate + permission delete
//	GET    /api/reports    authenticate + minimum role user
//	GET    /api/protected  authenticate only
//
// # Login
//
// Login verifies the supplied password against the stored bcrypt hash.
// An unknown username burns a comparison against a fixed dummy hash so
// the two failure modes are indistinguishable by timing and share one
// response: 401 "Invalid username or password".
package api
