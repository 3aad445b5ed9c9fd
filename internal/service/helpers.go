package service

import (
	"fmt"
	"strings"
)

func formatValidationErrors(what string, errs []error) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s validation failed (%d errors):", what, len(errs))
	for _, e := range errs {
		b.WriteString("\n  - ")
		b.WriteString(e.Error())
	}
	return fmt.Errorf("%s", b.String())
}
