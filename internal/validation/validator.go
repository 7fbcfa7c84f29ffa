package validation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	numberPattern  = regexp.MustCompile(`^(0[xX][0-9a-fA-F]+|0[bB][01]+|0[oO][0-7]+|[0-9]+)$`)
	decimalPattern = regexp.MustCompile(`^[0-9]+$`)
	signedPattern  = regexp.MustCompile(`^[-+]?[0-9]+$`)
)

// ParseNumber parses a decimal, 0x hex, 0b binary or 0o octal literal.
func ParseNumber(input string, max uint64) (uint64, error) {
	input = SanitizeInput(input)
	if input == "" {
		return 0, fmt.Errorf("value cannot be empty")
	}

	if !numberPattern.MatchString(input) {
		return 0, fmt.Errorf("invalid number %q (use decimal, 0x.., 0b.. or 0o..)", input)
	}

	// Leading zeros stay decimal; only an explicit 0o prefix means octal.
	base := 0
	if decimalPattern.MatchString(input) {
		base = 10
	}

	v, err := strconv.ParseUint(input, base, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q: %w", input, err)
	}

	if v > max {
		return 0, fmt.Errorf("value %s exceeds maximum 0x%x", input, max)
	}

	return v, nil
}

// ParsePolynomial accepts the full degree-8 polynomial (0x11d) or its low
// byte (0x1d) with x^8 implied.
func ParsePolynomial(input string) (uint16, error) {
	v, err := ParseNumber(input, 0x1FF)
	if err != nil {
		return 0, fmt.Errorf("invalid polynomial: %w", err)
	}

	poly := uint16(v)
	if poly <= 0xFF {
		poly |= 0x100
	}

	if poly&1 == 0 {
		return 0, fmt.Errorf("polynomial 0x%x is divisible by x and cannot be primitive", poly)
	}

	return poly, nil
}

func ParseElement(input string) (byte, error) {
	v, err := ParseNumber(input, 0xFF)
	if err != nil {
		return 0, fmt.Errorf("invalid field element: %w", err)
	}
	return byte(v), nil
}

func ParseGenerator(input string) (byte, error) {
	g, err := ParseElement(input)
	if err != nil {
		return 0, err
	}
	if g < 2 {
		return 0, fmt.Errorf("generator must be at least 2 (got %d)", g)
	}
	return g, nil
}

func ParseExponent(input string) (int, error) {
	input = SanitizeInput(input)
	if !signedPattern.MatchString(input) {
		return 0, fmt.Errorf("invalid exponent %q", input)
	}

	n, err := strconv.Atoi(input)
	if err != nil {
		return 0, fmt.Errorf("invalid exponent %q: %w", input, err)
	}

	return n, nil
}

func ValidateTableFormat(format string) error {
	switch format {
	case "hex", "go", "json":
		return nil
	}
	return fmt.Errorf("unknown format %q (expected hex, go or json)", format)
}

func SanitizeInput(input string) string {
	input = strings.TrimSpace(input)
	return strings.ReplaceAll(input, "_", "")
}
