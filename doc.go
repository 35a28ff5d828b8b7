// Package courseauth implements the credential lifecycle for the coursebook
// platform: registration with email-verified one-time codes, password login
// issuing signed bearer tokens, and OTP-gated password reset.
//
// The package is designed for concurrent server workloads: Engine methods are
// safe to call from multiple goroutines after initialization through
// [Builder.Build].
//
// # Architecture boundaries
//
// courseauth is the public surface. It exposes [Engine], [Builder], [Config],
// the [AccountStore] and [Notifier] collaborator contracts, and the sentinel
// error set. Token signing lives in the token subpackage, argon2id hashing in
// password, SMTP delivery in mailer, and the HTTP bearer guard in middleware.
//
// # State model
//
// An account moves from unverified to verified exactly once, by consuming a
// pending one-time code. A code is bound to a single account, expires at an
// absolute timestamp, and is consumed atomically: the store's conditional
// consume clears it in the same transaction that applies the resulting
// mutation, so two racing consumers cannot both succeed.
//
// Issued tokens are stateless. Logout is a client-side concern: a discarded
// token stays valid until its embedded expiry, because the engine keeps no
// revocation state.
package courseauth
