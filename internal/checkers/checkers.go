// Package checkers provides quicktest checkers shared by the bmark tests.
package checkers

import (
	"encoding/json"
	"fmt"

	qt "github.com/frankban/quicktest"
	"github.com/yalp/jsonpath"
)

// JSONPathEquals returns a checker that decodes the obtained JSON document
// ([]byte or string), evaluates path against it and compares the result with
// the expected value using qt.DeepEquals. JSON numbers decode as float64.
//
//	c.Assert(out, checkers.JSONPathEquals("$[0].name"), "proj")
func JSONPathEquals(path string) qt.Checker {
	return &jsonPathChecker{path: path}
}

type jsonPathChecker struct {
	path string
}

func (c *jsonPathChecker) ArgNames() []string {
	return []string{"json", "want"}
}

func (c *jsonPathChecker) Check(got any, args []any, note func(key string, value any)) error {
	var raw []byte
	switch v := got.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return qt.BadCheckf("obtained value must be []byte or string, got %T", got)
	}

	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("cannot decode JSON: %w", err)
	}
	value, err := jsonpath.Read(doc, c.path)
	if err != nil {
		note("path", c.path)
		return fmt.Errorf("cannot evaluate JSON path: %w", err)
	}
	note("path", c.path)
	note("value at path", value)
	return qt.DeepEquals.Check(value, args, note)
}
