// Package shape classifies a field's declared type as required, optional or
// repeated. Classification is purely syntactic: it matches the surface form
// Name[T] against the configured wrapper names and never resolves types, so a
// user type that happens to share a wrapper's name is treated as that wrapper.
package shape

import (
	"encoding/json"
	"fmt"

	"github.com/goliatone/go-buildergen/pkg/schema"
)

// Kind enumerates the three field shapes.
type Kind int

const (
	Required Kind = iota
	Optional
	Repeated
)

func (k Kind) String() string {
	switch k {
	case Required:
		return "required"
	case Optional:
		return "optional"
	case Repeated:
		return "repeated"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// MarshalJSON encodes the kind by name.
func (k Kind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// UnmarshalJSON decodes a kind name.
func (k *Kind) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	switch name {
	case "required":
		*k = Required
	case "optional":
		*k = Optional
	case "repeated":
		*k = Repeated
	default:
		return fmt.Errorf("shape: unknown kind %q", name)
	}
	return nil
}

// Shape is the classification of one declared type. Elem is the wrapped type
// for Optional and Repeated and the declared type itself for Required.
type Shape struct {
	Kind Kind
	Elem schema.TypeExpr
}

const (
	DefaultOptionalWrapper = schema.DefaultOptionalWrapper
	DefaultRepeatedWrapper = schema.DefaultRepeatedWrapper
)

// Classifier holds the wrapper names that mark optional and repeated fields.
type Classifier struct {
	OptionalWrapper string
	RepeatedWrapper string
}

// NewClassifier returns a Classifier, falling back to the default wrapper
// names for empty arguments.
func NewClassifier(optional, repeated string) Classifier {
	if optional == "" {
		optional = DefaultOptionalWrapper
	}
	if repeated == "" {
		repeated = DefaultRepeatedWrapper
	}
	return Classifier{OptionalWrapper: optional, RepeatedWrapper: repeated}
}

// Classify maps a declared type to exactly one shape. Only a single level of
// wrapping is recognised; the wrapped argument is returned untouched.
func (c Classifier) Classify(declared schema.TypeExpr) Shape {
	named, ok := declared.(schema.Named)
	if !ok || len(named.Args) != 1 {
		return Shape{Kind: Required, Elem: declared}
	}
	switch named.Name {
	case c.OptionalWrapper:
		return Shape{Kind: Optional, Elem: named.Args[0]}
	case c.RepeatedWrapper:
		return Shape{Kind: Repeated, Elem: named.Args[0]}
	default:
		return Shape{Kind: Required, Elem: declared}
	}
}
