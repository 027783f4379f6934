package we

import (
	"reflect"
	"strings"

	"github.com/iancoleman/strcase"
)

type Named interface {
	TypeName() string
}

// NameOf renders a value's type as "package:kebab-name", e.g. "counter:counter".
func NameOf(value any) string {
	if typed, ok := value.(Named); ok {
		return typed.TypeName()
	}

	segments := typeSegments(value)
	for i, segment := range segments {
		segments[i] = strcase.ToKebab(segment)
	}

	namespace := segments[0]
	name := strings.Join(segments[1:], "-")

	return namespace + ":" + name
}

func typeSegments(value any) []string {
	split := strings.Split(reflect.TypeOf(value).String(), ".")
	segments := make([]string, len(split))
	for i, segment := range split {
		segments[i] = strings.TrimLeft(segment, "*")
	}

	return segments
}
