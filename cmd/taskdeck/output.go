package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/taskdeck/taskdeck/internal/domain"
)

// mapErrorToExitCode maps an error to the appropriate exit code
func mapErrorToExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	if isConfigError(err) {
		return ExitConfigError
	}

	var domainErr *domain.DomainError
	if errors.As(err, &domainErr) && domainErr.Code == domain.ErrCodeNotFound {
		return ExitUserNotFound
	}
	return ExitGeneralError
}

// printError prints an error message
func printError(w io.Writer, err error, jsonOutput bool) {
	if jsonOutput {
		writeJSON(w, map[string]interface{}{
			"error": map[string]interface{}{
				"message": err.Error(),
			},
		})
		return
	}

	fmt.Fprintf(w, "Error: %s\n", err.Error())
}

// printSuccess prints a success message, with extra fields in JSON mode.
func printSuccess(w io.Writer, message string, fields map[string]interface{}, jsonOutput bool) {
	if jsonOutput {
		out := map[string]interface{}{"message": message}
		for k, v := range fields {
			out[k] = v
		}
		writeJSON(w, out)
		return
	}

	fmt.Fprintln(w, message)
}

func writeJSON(w io.Writer, v interface{}) {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.Encode(v)
}
