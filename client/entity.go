package client

import (
	"strconv"
	"strings"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// Entities holds the JSON documents returned by earlier steps, keyed by a name such as
// "supplier", so that later steps can refer to the objects they created.
type Entities struct {
	values map[string]ldvalue.Value
}

func NewEntities() *Entities {
	return &Entities{values: make(map[string]ldvalue.Value)}
}

// Capture parses body as JSON and stores it under name. A body that is not valid JSON is
// stored as null, so a failed step still replaces whatever was captured before.
func (e *Entities) Capture(name, body string) ldvalue.Value {
	v := ldvalue.Parse([]byte(body))
	e.values[name] = v
	return v
}

// Get returns the captured value, or null if nothing was captured under that name.
func (e *Entities) Get(name string) ldvalue.Value {
	if v, ok := e.values[name]; ok {
		return v
	}
	return ldvalue.Null()
}

// ID returns the "id" property of the captured object. Integer numbers and strings
// containing an integer are accepted; anything else is undefined.
func (e *Entities) ID(name string) ldvalue.OptionalInt {
	id := e.Get(name).GetByKey("id")
	switch id.Type() {
	case ldvalue.NumberType:
		if id.IsInt() {
			return ldvalue.NewOptionalInt(id.IntValue())
		}
	case ldvalue.StringType:
		if n, err := strconv.Atoi(strings.TrimSpace(id.StringValue())); err == nil {
			return ldvalue.NewOptionalInt(n)
		}
	}
	return ldvalue.OptionalInt{}
}

// IDOrElse is like ID, but substitutes fallback when there is no usable id.
func (e *Entities) IDOrElse(name string, fallback int) int {
	return e.ID(name).OrElse(fallback)
}
