// Package atri implements a small calculator scripting language.
//
// A source line is a sequence of statements separated by semicolons or
// newlines. Statements declare variables ("var x", "var x = 1"), assign them
// ("x = x + 1"), or evaluate expressions over numbers and booleans
// ("x * 2 > 3 && !done"). All arithmetic is in float64.
//
// An Interpreter evaluates lines against a Store and formats the result of
// the last statement. Reuse an Interpreter, or share a Store, to keep
// variables between lines.
package atri
