// Package debug gates trace logging on PHPLIT_DEBUG_* environment
// variables, read once at startup.
package debug

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

type debug struct {
	Tokens bool
	Parse  bool
	Decode bool
}

var d *debug

func init() {
	d = &debug{}
	d.Tokens = boolEnv("PHPLIT_DEBUG_TOKENS")
	d.Parse = boolEnv("PHPLIT_DEBUG_PARSE")
	d.Decode = boolEnv("PHPLIT_DEBUG_DECODE")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Tokens() bool {
	return d.Tokens
}
func Parse() bool {
	return d.Parse
}
func Decode() bool {
	return d.Decode
}

func Logf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format, args...)
}

func LogAny(v any) {
	d, err := json.Marshal(v)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", v)
		return
	}
	os.Stderr.Write(d)
}
