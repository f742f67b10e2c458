// Package ir holds the value model for parsed php literals: the tagged
// [Value] union and the int-or-string [Key] used by array values.
package ir
