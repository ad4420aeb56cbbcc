// Package envfile reads and writes dotenv files.
//
// Parse is deliberately forgiving: a line it cannot understand becomes a
// Warning and parsing continues with the next line. Callers decide whether
// to surface warnings.
//
// Writes go through Upsert, which replaces assignments in place so that
// comments and ordering survive commands like `set` and `encrypt`.
// Individual assignments are rendered with godotenv.
package envfile
