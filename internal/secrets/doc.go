// Package secrets encrypts and decrypts individual env values with age.
//
// # Wire Format
//
// An encrypted value is a single ASCII token:
//
//	ENC[AGE:b64:<standard base64 of the binary age ciphertext>]
//
// The ciphertext uses one X25519 recipient. Encryption is randomized, so
// encrypting the same plaintext twice yields different tokens. Decrypt
// passes any value that is not exactly this shape through unchanged, and
// fails loudly when a value has the shape but cannot be decrypted.
//
// # Key Discovery
//
// Discover tries each source in turn and stops at the first that yields
// an identity:
//
//  1. DOTENVAGE_AGE_KEY
//  2. AGE_KEY
//  3. EKG_AGE_KEY
//  4. the key file for AGE_KEY_NAME, taken from the environment or from
//     .env.local / .env (as AGE_KEY_NAME or *_AGE_KEY_NAME), resolved
//     through config.toml or to <state>/<name>.key
//  5. <state>/dotenvage/dotenvage.key
//
// Missing files and empty variables are skipped. A malformed identity is
// reported as ErrInvalidIdentity. When all sources are exhausted the
// error is ErrKeyNotFound.
//
// # Sensitive Names
//
// ShouldEncrypt classifies variable names (never values) so that commands
// like `set` and `encrypt --auto` know which entries to protect.
//
// # Key Material Handling
//
// Identity values render as a redacted placeholder through fmt. Destroy
// releases the manager's identity; the age library keeps the key in an
// unexported field, so its bytes cannot be wiped.
package secrets
