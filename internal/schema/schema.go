package schema

import (
	"encoding/json"
	"fmt"
)

// Namespace is one partial namespace record as it appears in a schema
// document. Multiple records may share the same namespace name across
// files; they are merged into a single record before emission.
type Namespace struct {
	Namespace   string           `json:"namespace"`
	Description string           `json:"description,omitempty"`
	Functions   []*Function      `json:"functions,omitempty"`
	Events      []*Function      `json:"events,omitempty"`
	Types       []*Type          `json:"types,omitempty"`
	Properties  map[string]*Type `json:"properties,omitempty"`
}

// Function describes a schema function or event.
type Function struct {
	Name        string  `json:"name,omitempty"`
	Type        string  `json:"type,omitempty"`
	Description string  `json:"description,omitempty"`
	Async       Async   `json:"async,omitempty"`
	Parameters  []*Type `json:"parameters,omitempty"`
	Returns     *Type   `json:"returns,omitempty"`
}

// Type describes a single typed value: a named type, a property, a
// parameter or a return value. The same shape is used in all of these
// positions; `Name` and `Optional` are only meaningful in parameter and
// property positions, `Parameters` only when the value is function-typed.
type Type struct {
	Id          string           `json:"id,omitempty"`
	Name        string           `json:"name,omitempty"`
	Type        string           `json:"type,omitempty"`
	Ref         string           `json:"$ref,omitempty"`
	Optional    bool             `json:"optional,omitempty"`
	Description string           `json:"description,omitempty"`
	Properties  map[string]*Type `json:"properties,omitempty"`
	Choices     []*Type          `json:"choices,omitempty"`
	Enum        []EnumValue      `json:"enum,omitempty"`
	Items       *Type            `json:"items,omitempty"`
	Parameters  []*Type          `json:"parameters,omitempty"`
	Functions   []*Function      `json:"functions,omitempty"`
	Events      []*Function      `json:"events,omitempty"`
	Returns     *Type            `json:"returns,omitempty"`
}

// Kind classifies a `Type` node by its authoritative discriminator.
// Exactly one kind applies to a node; `$ref` wins over everything else.
type Kind int

const (
	KindUnknown Kind = iota
	KindRef
	KindNumber
	KindString
	KindArray
	KindBool
	KindChoices
	KindFunction
	KindAny
	KindObject
)

// Kind returns the node's classification. The order of the checks is
// significant: a node carrying both a `$ref` and a `type` is a reference,
// and `choices` only apply when no primitive type matched.
func (t *Type) Kind() Kind {
	if t.Ref != "" {
		return KindRef
	}

	switch t.Type {
	case "integer", "number":
		return KindNumber
	case "string", "url":
		return KindString
	case "array":
		return KindArray
	case "boolean":
		return KindBool
	}

	if len(t.Choices) > 0 {
		return KindChoices
	}

	switch t.Type {
	case "function":
		return KindFunction
	case "any":
		return KindAny
	case "object":
		return KindObject
	}

	return KindUnknown
}

// AsFunction views a function-typed node as a `Function` so that it can
// be fed to the signature synthesizer.
func (t *Type) AsFunction() *Function {
	return &Function{
		Name:        t.Name,
		Type:        t.Type,
		Description: t.Description,
		Parameters:  t.Parameters,
		Returns:     t.Returns,
	}
}

// Async selects the asynchronous convention of a function: absent
// (synchronous), a bare `true`, or the name of a callback parameter
// whose first nested parameter describes the eventual resolved value.
type Async struct {
	Flag     bool
	Callback string
}

func (a *Async) UnmarshalJSON(data []byte) error {
	var flag bool
	if err := json.Unmarshal(data, &flag); err == nil {
		a.Flag = flag
		return nil
	}

	var callback string
	if err := json.Unmarshal(data, &callback); err == nil {
		a.Callback = callback
		return nil
	}

	return fmt.Errorf(`invalid "async" value %s`, string(data))
}

func (a Async) MarshalJSON() ([]byte, error) {
	if a.Callback != "" {
		return json.Marshal(a.Callback)
	}
	return json.Marshal(a.Flag)
}

// IsAsync reports whether any asynchronous convention is in effect.
func (a Async) IsAsync() bool {
	return a.Flag || a.Callback != ""
}

// key returns a stable token identifying the convention, used when
// deduplicating merged functions and events.
func (a Async) key() string {
	if a.Callback != "" {
		return a.Callback
	}
	if a.Flag {
		return "true"
	}
	return "false"
}

// EnumValue is one enum member. Schema files encode members either as a
// bare string or as an object carrying a `name` and a description.
type EnumValue struct {
	Name        string
	Description string
}

func (v *EnumValue) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		v.Name = name
		return nil
	}

	var obj struct {
		Name        string `json:"name"`
		Description string `json:"description,omitempty"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf(`invalid enum value %s`, string(data))
	}

	v.Name = obj.Name
	v.Description = obj.Description
	return nil
}

func (v EnumValue) MarshalJSON() ([]byte, error) {
	if v.Description == "" {
		return json.Marshal(v.Name)
	}
	return json.Marshal(struct {
		Name        string `json:"name"`
		Description string `json:"description,omitempty"`
	}{v.Name, v.Description})
}
