// Package mython implements an interpreter for Mython, a small
// indentation-sensitive, dynamically typed scripting language:
//   - Classes with single inheritance, methods, and instance fields.
//   - Special methods __init__, __str__, __add__, __eq__, and __lt__.
//   - Arithmetic on integers, string concatenation, and the six comparisons.
//   - Logical operators (and/or/not), if/else, print, and return.
//   - Value kinds: None, booleans, integers, strings, classes, and instances.
//
// Blocks are delimited by two-space indentation; comments begin with `#`.
// The interpreter is an embedded library: it reads source text and writes
// print output to a caller-supplied stream, nothing else.
package mython
