package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// SplitCSV splits a comma separated form value, trimming blanks and dropping empty entries.
func SplitCSV(value string) []string {
	out := []string{}
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func ParseIntList(value string) ([]int, error) {
	parts := SplitCSV(value)
	out := make([]int, 0, len(parts))
	for _, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid integer %q", part)
		}
		out = append(out, n)
	}
	return out, nil
}

func ParseFloatList(value string) ([]float64, error) {
	parts := SplitCSV(value)
	out := make([]float64, 0, len(parts))
	for _, part := range parts {
		f, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", part)
		}
		out = append(out, f)
	}
	return out, nil
}

// LikeEscape is the escape character used with EscapeLike patterns.
const LikeEscape = "!"

// EscapeLike makes %, _ and the escape character itself match literally
// in a LIKE ... ESCAPE '!' clause.
func EscapeLike(s string) string {
	return strings.NewReplacer(
		LikeEscape, LikeEscape+LikeEscape,
		"%", LikeEscape+"%",
		"_", LikeEscape+"_",
	).Replace(s)
}

func InvoiceNumber(orderID uint) string {
	return fmt.Sprintf("INV-%06d", orderID)
}

func IsEmail(contact string) bool {
	return strings.Contains(contact, "@")
}
