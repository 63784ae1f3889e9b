package prefabs

import (
	"errors"
	"fmt"
)

// ErrUnknownAction is returned by codecs for names outside their alphabet.
var ErrUnknownAction = errors.New("prefabs: unknown action")

// ActionCodec maps action values to and from their asset-file names.
type ActionCodec[T comparable] interface {
	ParseAction(name string) (T, error)
	FormatAction(action T) string
}

// StringCodec uses the name itself as the action.
type StringCodec[T ~string] struct{}

func (StringCodec[T]) ParseAction(name string) (T, error) {
	if name == "" {
		return "", fmt.Errorf("%w: empty name", ErrUnknownAction)
	}
	return T(name), nil
}

func (StringCodec[T]) FormatAction(action T) string {
	return string(action)
}

// EnumCodec accepts a closed set of names.
type EnumCodec[T comparable] struct {
	byName map[string]T
	byVal  map[T]string
}

func NewEnumCodec[T comparable](names map[string]T) *EnumCodec[T] {
	c := &EnumCodec[T]{
		byName: make(map[string]T, len(names)),
		byVal:  make(map[T]string, len(names)),
	}
	for name, v := range names {
		c.byName[name] = v
		c.byVal[v] = name
	}
	return c
}

func (c *EnumCodec[T]) ParseAction(name string) (T, error) {
	v, ok := c.byName[name]
	if !ok {
		var zero T
		return zero, fmt.Errorf("%w: %q", ErrUnknownAction, name)
	}
	return v, nil
}

func (c *EnumCodec[T]) FormatAction(action T) string {
	if name, ok := c.byVal[action]; ok {
		return name
	}
	return fmt.Sprintf("%#v", action)
}
