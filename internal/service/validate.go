package service

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Field rules for the registration desk inputs. Names accept any letter
// script plus spaces, apostrophes, and hyphens, but must start and end with a
// letter. Company names allow the punctuation that shows up in real trade
// names. The email pattern is the usual permissive one; consecutive dots are
// rejected separately because RE2 has no lookahead.
var (
	namePattern = regexp.MustCompile(`^[\p{L}][\p{L} '’-]*[\p{L}]$`)

	companyNamePattern = regexp.MustCompile(`^[A-Za-z0-9\s&@!'’.-]+$`)

	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
)

func validatePersonName(field, value string) []string {
	var errs []string
	value = strings.TrimSpace(value)
	if value == "" {
		return []string{field + " is required"}
	}
	if n := utf8.RuneCountInString(value); n < 2 || n > 50 {
		errs = append(errs, fmt.Sprintf("%s must be between 2 and 50 characters", field))
	}
	if !namePattern.MatchString(value) {
		errs = append(errs, field+" may only contain letters, spaces, apostrophes, and hyphens")
	}
	return errs
}

func validateCompanyName(field, value string) []string {
	var errs []string
	value = strings.TrimSpace(value)
	if value == "" {
		return []string{field + " is required"}
	}
	if n := utf8.RuneCountInString(value); n < 2 || n > 50 {
		errs = append(errs, fmt.Sprintf("%s must be between 2 and 50 characters", field))
	}
	if !companyNamePattern.MatchString(value) {
		errs = append(errs, field+" contains invalid characters")
	}
	return errs
}

func validateEmail(field, value string) []string {
	var errs []string
	value = strings.TrimSpace(value)
	if value == "" {
		return []string{field + " is required"}
	}
	if utf8.RuneCountInString(value) > 100 {
		errs = append(errs, field+" must not exceed 100 characters")
	}
	if !emailPattern.MatchString(value) || strings.Contains(value, "..") {
		errs = append(errs, field+" must be a valid email address")
	}
	return errs
}
