package render

import (
	"encoding/json"
	"fmt"
)

// PropsScriptID is the id of the script element carrying hydration props.
const PropsScriptID = "__HATCH_PROPS__"

// MarshalProps encodes props for the bootstrap script element. The result
// never contains a raw <, >, &, U+2028 or U+2029.
func MarshalProps(props any) (string, error) {
	data, err := json.Marshal(props)
	if err != nil {
		return "", fmt.Errorf("encode props: %w", err)
	}
	return escapeScriptJSON(data), nil
}

// MarshalPropsIndent is like MarshalProps but indents the JSON, for
// readable page source during development.
func MarshalPropsIndent(props any) (string, error) {
	data, err := json.MarshalIndent(props, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode props: %w", err)
	}
	return escapeScriptJSON(data), nil
}
