// Package audit records a trail of mutating dotenvage operations.
//
// keygen, encrypt and set each append one JSON object per line to
// audit.jsonl in the user's state directory. Entries carry a timestamp, a
// random ID, the operation, and the files and variable names touched.
// Values, plaintext or encrypted, are never recorded.
//
// # Failure Handling
//
// Logging is best-effort. A failure to write the log never fails the
// operation that triggered it.
//
// # Reading Logs
//
// ReadEntries parses the log for `dotenvage log`. Malformed lines are
// skipped so that a partial write does not hide the rest of the history.
package audit
