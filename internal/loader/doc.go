// Package loader merges layered env files into one environment.
//
// # Discovery
//
// Which files apply depends on dimensions (environment, os, arch, user,
// variant) that may themselves be set inside env files. The loader
// therefore runs in rounds: generate candidates from the known dimensions,
// read the candidates not read before, merge, and look for carrier
// variables such as NODE_ENV or VARIANT that make a new dimension known.
// A dimension is never changed once known, so discovery reaches a fixed
// point after at most one round per dimension plus one.
//
// When a round adds nothing and the environment is still unknown, it is
// set to "local" and discovery continues.
//
// # Precedence
//
// The merged environment is rebuilt every round by applying files in
// candidate order, so a more specific file always wins regardless of the
// round in which it was found. Files within a round are read concurrently.
//
// # Decryption
//
// Encrypted values stay encrypted during discovery and cannot set a
// dimension. Resolve decrypts every value at the end and fails with a
// DecryptError naming the variable and file when one cannot be decrypted.
// Inspect skips that step and never needs a key.
//
// # Usage
//
//	l := loader.New(loader.Options{})
//	res, err := l.Resolve(ctx, ".")
//	if err != nil {
//	    return err
//	}
//	dbURL, _ := res.Vars.Get("DATABASE_URL")
package loader
