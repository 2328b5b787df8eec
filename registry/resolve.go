package registry

import (
	"fmt"
	"strings"
)

// getReferencedType resolves a field's raw type name against the set of
// fully-qualified message/enum names collected during the registry's
// first pass. prefix is the fully-qualified name of the message the
// field is declared in, used to walk outward through enclosing
// packages the way protoc itself resolves relative references.
//
// Ref: https://github.com/protocolbuffers/protobuf/blob/main/src/google/protobuf/descriptor.proto
func getReferencedType(typeName, prefix string, names map[string]bool) (string, error) {
	if strings.HasPrefix(typeName, ".") {
		return getFullyQualifiedType(typeName, names)
	}
	if names[typeName] {
		return typeName, nil
	}
	if result, ok := splitNameAndCheck(typeName, prefix, names); ok {
		return result, nil
	}
	return "", fmt.Errorf("unable to resolve type name: %s", typeName)
}

// splitNameAndCheck walks prefix outward one package/message level at a
// time, trying typeName against each level in turn.
func splitNameAndCheck(typeName, prefix string, names map[string]bool) (string, bool) {
	prefixSplit := strings.Split(prefix, ".")
	for len(prefixSplit) > 0 && prefixSplit[0] != "" {
		candidate := strings.Join(prefixSplit, ".") + "." + typeName
		if names[candidate] {
			return candidate, true
		}
		prefixSplit = prefixSplit[:len(prefixSplit)-1]
	}
	return "", false
}

func getFullyQualifiedType(typeName string, names map[string]bool) (string, error) {
	typeName = strings.TrimPrefix(typeName, ".")
	if names[typeName] {
		return typeName, nil
	}
	return "", fmt.Errorf("unable to resolve fully qualified type name: %s", typeName)
}
