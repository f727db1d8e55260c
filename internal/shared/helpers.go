// Package shared provides common naming helpers used across multiple
// packages in the robot-models codebase.
package shared

import (
	"strings"
	"unicode"
)

// ShortName strips any namespace qualification from a model name,
// accepting both "ns::Name" and "ns.Name" forms.
func ShortName(name string) string {
	if idx := strings.LastIndex(name, "::"); idx >= 0 {
		name = name[idx+2:]
	}
	if idx := strings.LastIndex(name, "."); idx >= 0 {
		name = name[idx+1:]
	}
	return name
}

// InstanceName derives the default service instance name from a model
// name: the short name with a lowered first rune, e.g. "ImageProvider"
// becomes "imageProvider".
func InstanceName(modelName string) string {
	short := ShortName(modelName)
	if short == "" {
		return short
	}
	runes := []rune(short)
	runes[0] = unicode.ToLower(runes[0])
	return string(runes)
}

// CamelJoin joins a service instance name with an abstract port name,
// capitalizing each underscore-separated segment of the port name:
// CamelJoin("left", "image_out") yields "leftImageOut".
func CamelJoin(instanceName string, portName string) string {
	var builder strings.Builder
	builder.WriteString(instanceName)
	for _, segment := range strings.Split(portName, "_") {
		if segment == "" {
			continue
		}
		runes := []rune(segment)
		runes[0] = unicode.ToUpper(runes[0])
		builder.WriteString(string(runes))
	}
	return builder.String()
}
