// Package validation provides the input error taxonomy and common validation
// utilities shared by the calculators.
package validation

import (
	"fmt"
	"strings"

	"github.com/iwvelando/bizcalc/pkg/constants"
)

var supportedOutputFormats = []string{
	constants.OutputFormatPretty,
	constants.OutputFormatCSV,
	constants.OutputFormatJSON,
	constants.OutputFormatYAML,
}

// ValidateOutputFormat checks if the output format is one of the supported formats.
func ValidateOutputFormat(format string) error {
	for _, supported := range supportedOutputFormats {
		if format == supported {
			return nil
		}
	}
	return fmt.Errorf("expected output format of %s, got %s",
		strings.Join(supportedOutputFormats, ", "), format)
}

// ValidateRange returns a warning when value lies outside [min, max]. A zero
// range (min == max == 0) disables the check.
func ValidateRange(field string, value, min, max float64) string {
	if min == 0 && max == 0 {
		return ""
	}
	if value < min || value > max {
		return fmt.Sprintf("%s of %g is outside the expected range [%g, %g]", field, value, min, max)
	}
	return ""
}
