// Package layers decides which env files apply to the current context.
//
// A context is described by up to five dimensions, in canonical order:
// environment, os, arch, user and variant. Each known dimension contributes
// a lowercase token, and every non-empty combination of known tokens names
// a candidate file:
//
//	.env
//	.env.production
//	.env.linux
//	.env.production.linux
//	.env.pr-42
//
// Later candidates are more specific and take precedence. Seed reads the
// dimensions from the process environment and the host runtime; Derive
// fills in the rest from variables found in already loaded files.
package layers
