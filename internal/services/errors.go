package services

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

var (
	ErrExternalTool  = errors.New("external tool error")
	ErrValidation    = errors.New("validation error")
	ErrConfiguration = errors.New("configuration error")
	ErrNotFound      = errors.New("not found")
	ErrTimeout       = errors.New("timeout")
)

// Wrap builds an error message that includes tool context while tagging it
// with the provided marker for later classification. The marker should be one
// of the exported sentinel errors above. Deadline and missing-binary errors
// are retagged as ErrTimeout and ErrConfiguration.
func Wrap(marker error, tool, operation, message string, err error) error {
	detail := buildDetail(tool, operation, message)
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		marker = ErrTimeout
	case errors.Is(err, exec.ErrNotFound):
		marker = ErrConfiguration
	case marker == nil:
		marker = ErrExternalTool
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// Hint returns operator guidance for a wrapped tool error, or "" when none
// applies.
func Hint(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrConfiguration):
		return "install the tool or point [tools] in the config at it; `autosplit check` lists what is missing"
	case errors.Is(err, ErrTimeout):
		return "raise tools.timeout_seconds for very long containers"
	case errors.Is(err, ErrValidation):
		return "check the chapter numbers passed to the split"
	case errors.Is(err, ErrNotFound):
		return "confirm the path and that the container carries chapters"
	case errors.Is(err, ErrExternalTool):
		return "rerun with --verbose to see the tool output"
	default:
		return ""
	}
}

func buildDetail(tool, operation, message string) string {
	parts := make([]string, 0, 3)
	if tool = strings.TrimSpace(tool); tool != "" {
		parts = append(parts, tool)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "tool failure"
	}
	return strings.Join(parts, ": ")
}
