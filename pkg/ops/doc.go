// Package ops provides the arithmetic operations used to build
// symbolic graphs. All arithmetic operations are n-ary and fold
// their operands from left to right.
package ops
