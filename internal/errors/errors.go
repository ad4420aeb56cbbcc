package errors

import "errors"

// Key errors indicate an identity could not be found, parsed or stored.
var (
	// ErrKeyNotFound indicates every key discovery source was exhausted.
	ErrKeyNotFound = errors.New("age identity not found")

	// ErrInvalidIdentity indicates an identity string or key file is malformed.
	ErrInvalidIdentity = errors.New("invalid age identity")

	// ErrKeySaveFailed indicates the identity could not be written to disk.
	ErrKeySaveFailed = errors.New("failed to save age identity")

	// ErrKeyExists indicates a key file already exists at the target path.
	ErrKeyExists = errors.New("key file already exists")

	// ErrManagerClosed indicates the secret manager's identity was destroyed.
	ErrManagerClosed = errors.New("secret manager has been destroyed")
)

// Cryptographic errors indicate failures while wrapping or unwrapping values.
var (
	// ErrEncryptFailed indicates a value could not be encrypted.
	ErrEncryptFailed = errors.New("failed to encrypt value")

	// ErrDecryptFailed indicates a wrapped ciphertext could not be decrypted.
	ErrDecryptFailed = errors.New("failed to decrypt value")
)

// File errors indicate issues with env file discovery or access.
var (
	// ErrFileRead indicates an existing env file could not be read.
	ErrFileRead = errors.New("failed to read env file")

	// ErrMalformedEntry indicates a line in an env file could not be parsed.
	ErrMalformedEntry = errors.New("malformed env entry")

	// ErrNoFilesFound indicates no files matched the provided patterns.
	ErrNoFilesFound = errors.New("no matching files found")

	// ErrFileNotFound indicates a specific file could not be located.
	ErrFileNotFound = errors.New("file not found")
)

// Resolution errors indicate issues while computing the merged environment.
var (
	// ErrVarNotFound indicates a variable is not present in the merged environment.
	ErrVarNotFound = errors.New("variable not found")

	// ErrNoFixedPoint indicates dimension discovery did not converge.
	ErrNoFixedPoint = errors.New("dimension discovery did not converge")
)
