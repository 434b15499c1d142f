package enums

import "fmt"

// AttributeKey routes an attribute group's values onto a variation field.
type AttributeKey string

const (
	AttributeKeyColor    AttributeKey = "color"
	AttributeKeySize     AttributeKey = "size"
	AttributeKeyMaterial AttributeKey = "material"
	AttributeKeyCustom   AttributeKey = "custom"
)

var validAttributeKeys = []AttributeKey{
	AttributeKeyColor,
	AttributeKeySize,
	AttributeKeyMaterial,
	AttributeKeyCustom,
}

// String implements fmt.Stringer.
func (v AttributeKey) String() string {
	return string(v)
}

// IsValid reports whether the value is a known AttributeKey.
func (v AttributeKey) IsValid() bool {
	for _, candidate := range validAttributeKeys {
		if candidate == v {
			return true
		}
	}
	return false
}

// ParseAttributeKey converts raw input into an AttributeKey.
func ParseAttributeKey(value string) (AttributeKey, error) {
	for _, candidate := range validAttributeKeys {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid attribute key %q", value)
}
