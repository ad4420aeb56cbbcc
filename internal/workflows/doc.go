// Package workflows provides high-level orchestration for dotenvage commands.
//
// Workflows coordinate the secrets, envfile, loader, configs and audit
// packages to implement one user-facing command each, independent of CLI
// concerns like flag parsing, spinners and output formatting. The cmd
// package parses flags, calls a workflow and formats its result.
//
// # Available Workflows
//
//   - Keygen: generates an age identity and saves it
//   - PublicKey: shows the recipient of the discovered identity
//   - Encrypt: encrypts sensitive values in env files in place
//   - Set: writes one variable, encrypting it when sensitive
//   - Get, List, Dump, Names: read the layered environment or one file
//   - Paths: shows dimensions and the files layered discovery picked
//   - Log: reads the audit trail
//
// Read workflows take a Scope. With Scope.File set they read that file
// only; otherwise they run layered discovery in Scope.Dir.
//
// # Error Handling
//
// Workflows return sentinel errors from the internal/errors package so the
// CLI layer can choose messages with errors.Is:
//
//	_, err := workflows.Get(ctx, opts)
//	if errors.Is(err, kerrors.ErrVarNotFound) {
//	    // Name is not set in any loaded file
//	}
package workflows
