package journey

import "fmt"

// Type classifies a recorded journey. Types are ordered by restrictiveness:
// every cycle is also a circuit and a path, every circuit is a trail, and
// every trail or path is a walk.
type Type string

const (
	TypeInvalid Type = "invalid"
	TypeWalk    Type = "walk"
	TypeTrail   Type = "trail"
	TypePath    Type = "path"
	TypeCircuit Type = "circuit"
	TypeCycle   Type = "cycle"
)

// AllTypes lists every member of the enumeration. Config tables keyed by
// Type are validated against this list.
func AllTypes() []Type {
	return []Type{TypeInvalid, TypeWalk, TypeTrail, TypePath, TypeCircuit, TypeCycle}
}

// ParseType converts config/transport input into a Type.
func ParseType(s string) (Type, error) {
	switch Type(s) {
	case TypeWalk, TypeTrail, TypePath, TypeCircuit, TypeCycle, TypeInvalid:
		return Type(s), nil
	}
	return TypeInvalid, fmt.Errorf("unknown journey type %q", s)
}

// satisfiedBy maps a target type to the set of classifications that fulfil
// it. Satisfaction is monotone: a more restrictive actual type always
// fulfils a less restrictive target.
var satisfiedBy = map[Type]map[Type]bool{
	TypeWalk:    {TypeWalk: true, TypeTrail: true, TypePath: true, TypeCircuit: true, TypeCycle: true},
	TypeTrail:   {TypeTrail: true, TypePath: true, TypeCircuit: true, TypeCycle: true},
	TypePath:    {TypePath: true, TypeCycle: true},
	TypeCircuit: {TypeCircuit: true},
	TypeCycle:   {TypeCycle: true},
	TypeInvalid: {TypeInvalid: true},
}

// Satisfies reports whether a journey classified as actual fulfils the
// given target. A walk target is fulfilled by anything. An unrecognized
// target is treated as walk-equivalent rather than failing the mission
// flow.
func Satisfies(actual, target Type) bool {
	if target == TypeWalk {
		return true
	}
	set, ok := satisfiedBy[target]
	if !ok {
		return true
	}
	return set[actual]
}
