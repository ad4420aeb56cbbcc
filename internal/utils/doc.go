// Package utils provides small helpers shared by the dotenvage commands.
//
// # I/O Utilities
//
//   - ReadStdin: reads piped data from standard input
//   - ReadValue: reads one value, dropping a trailing newline
//
// # Terminal Utilities
//
//   - ReadSecret: prompts for a value without echo
//   - IsTerminal, IsOutputTerminal: terminal detection
//
// # String Utilities
//
//   - FormatPaths: formats file paths for human-readable output
//   - SplitAssignment: parses NAME=value arguments
//   - SplitList: flattens comma separated flag values
package utils
