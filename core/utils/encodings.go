package utils

import (
	"encoding/base64"
	"fmt"
)

// EncodeScenario encodes a scenario shorthand to URL-safe base64
func EncodeScenario(scenario string) string {
	return base64.URLEncoding.EncodeToString([]byte(scenario))
}

// DecodeScenario decodes a base64 encoded scenario shorthand
func DecodeScenario(encoded string) (string, error) {
	decoded, err := base64.URLEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("failed to decode scenario: %v", err)
	}
	return string(decoded), nil
}
