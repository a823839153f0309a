// Package store provides credential persistence for the gateway.
//
// The store is a read-only collaborator from the core's point of view:
// the login boundary resolves a username to a (subject id, role,
// password hash) record and nothing in the request pipeline ever writes.
//
// The SQLite implementation creates its schema on open and seeds three
// development accounts (admin, user, guest) with bcrypt-hashed passwords.
// Seeding is idempotent, so an existing database is never modified.
package store
