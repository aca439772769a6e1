// Package xsdnorm canonicalizes XML Schema documents into a
// deterministic, diff-friendly form, so that semantically-equivalent
// schemas produce identical text regardless of authoring order.
//
// # Pipeline
//
// Each document runs through a fixed sequence of structural rewrites
// over its element tree:
//
//  1. Node-level rules, applied pre-order to every element:
//     [RemoveAnnotations], [StripText], [SortByNameAttr],
//     [SortAttributes].
//
//  2. A whole-tree pass sorting every sibling group by qualified tag
//     name ([SortByTag]).
//
//  3. Re-indentation with two-space steps and a UTF-8 XML declaration,
//     applied at serialization time.
//
// The pipeline is idempotent: normalizing already-normalized output
// produces byte-identical text.
//
// # Usage
//
// Create an Engine and run it against an input file or directory:
//
//	e, err := xsdnorm.New(xsdnorm.WithRecursive(true))
//	if err != nil { ... }
//	defer e.Close()
//
//	stats, err := e.Run(context.Background(), "schemas/", "normalized/")
//
// Discovery considers only files with the .xsd extension when the input
// is a directory. Output mirrors the input's directory structure; inputs
// nested inside the output root are skipped to avoid self-overwrite.
//
// # Change Detection
//
// With [WithCache], the Engine records each input's content hash in a
// SQLite database and skips files whose hash and destination are
// unchanged on later runs. [WithForce] overrides the cache.
package xsdnorm
