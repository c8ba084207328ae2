// Package auth implements the session gate in front of the application shell.
//
// The [Gate] moves LoggedOut → LoggingIn → LoggedIn and back to LoggedOut on logout.
// Credentials are checked by a [Verifier]:
//   - [DelayVerifier] : waits a fixed delay and accepts any complete submission
//   - [PasswordVerifier] : bcrypt hashes kept in the credentials table
//
// On success a fresh [models.UserProfile] is synthesized and written with the auth flag.
package auth
