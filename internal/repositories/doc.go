// Package repositories implements SQLite persistence for the platform.
//
// Key Implementations:
//   - [CollectionRepository] : JSON documents keyed by storage key (hero slides, videos, profile, ...)
//   - [CredentialRepository] : bcrypt password hashes for the password verifier, keyed by email
//
// Values are stored as opaque text. Decoding and default substitution happen in the store package,
// so a malformed row is never rewritten here.
package repositories
