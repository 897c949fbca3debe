package dataset

import (
	"fmt"
	"strings"
)

// Type is one of the 16 MBTI personality-type columns.
type Type int

// Declaration order matches the column order of the source header.
const (
	INFJ Type = iota
	ISFJ
	INTP
	ISFP
	ENTP
	INFP
	ENTJ
	ISTP
	INTJ
	ESFP
	ESTJ
	ENFP
	ESTP
	ISTJ
	ENFJ
	ESFJ
)

// NumTypes is the number of type columns every row carries.
const NumTypes = 16

var typeLabels = [NumTypes]string{
	"INFJ", "ISFJ", "INTP", "ISFP", "ENTP", "INFP", "ENTJ", "ISTP",
	"INTJ", "ESFP", "ESTJ", "ENFP", "ESTP", "ISTJ", "ENFJ", "ESFJ",
}

// String returns the four-letter label.
func (t Type) String() string {
	if !t.Valid() {
		return fmt.Sprintf("Type(%d)", int(t))
	}
	return typeLabels[t]
}

// Valid reports whether t is one of the 16 known types.
func (t Type) Valid() bool { return t >= 0 && int(t) < NumTypes }

// MarshalText lets types render as their label in JSON.
func (t Type) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownType, int(t))
	}
	return []byte(typeLabels[t]), nil
}

func (t *Type) UnmarshalText(b []byte) error {
	v, err := ParseType(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// AllTypes returns the 16 types in declaration order.
func AllTypes() []Type {
	out := make([]Type, NumTypes)
	for i := range out {
		out[i] = Type(i)
	}
	return out
}

// Labels returns the 16 labels in declaration order.
func Labels() []string {
	out := make([]string, NumTypes)
	copy(out, typeLabels[:])
	return out
}

// ParseType resolves a label such as "INFJ". Matching is case-sensitive.
func ParseType(s string) (Type, error) {
	s = strings.TrimSpace(s)
	for i, l := range typeLabels {
		if l == s {
			return Type(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownType, s)
}
