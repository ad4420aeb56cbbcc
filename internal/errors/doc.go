// Package errors provides typed error values for dotenvage.
//
// Sentinel errors let callers branch on failure kinds with errors.Is()
// rather than string matching. Internal packages wrap them with context
// using fmt.Errorf and the %w verb, so the sentinel survives the wrapping.
//
// # Error Categories
//
//   - Key errors: discovery and parsing of the age identity (ErrKeyNotFound, ErrInvalidIdentity)
//   - Crypto errors: wrapping and unwrapping values (ErrEncryptFailed, ErrDecryptFailed)
//   - File errors: env file access (ErrFileRead, ErrMalformedEntry)
//   - Resolution errors: layered lookups (ErrVarNotFound)
//
// # Usage
//
// Return errors from internal packages:
//
//	if identity == nil {
//	    return nil, fmt.Errorf("%w: no source yielded a key", errors.ErrKeyNotFound)
//	}
//
// Handle errors in the CLI layer:
//
//	value, err := workflows.Get(ctx, opts)
//	if errors.Is(err, kerrors.ErrKeyNotFound) {
//	    // suggest running dotenvage keygen
//	}
//
// ErrMalformedEntry is never returned by the loader. Malformed lines are
// reported as warnings and skipped.
package errors
