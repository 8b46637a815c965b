// Package relcmd implements the release commands.
//
// The central operation is Bump: validate the requested version, read the
// current version from the canonical source of truth, check the git working
// tree, stage every tracked file's rewrite in memory, verify the staged
// contents, and only then write to disk (and optionally commit). Staging
// before writing gives all-or-nothing semantics: either every tracked file
// ends up on the new version or none is touched.
package relcmd
