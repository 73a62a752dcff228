package entities

import (
	"fmt"
	"strings"
)

// MissingInputError reports that no source table was supplied
type MissingInputError struct {
	Source string
	Detail string
}

func (e *MissingInputError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("no input found in %s", e.Source)
	}
	return fmt.Sprintf("no input found in %s: %s", e.Source, e.Detail)
}

// MissingColumnError reports that none of the acceptable columns exist in a table
type MissingColumnError struct {
	Alternatives []string
	Available    []string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("%s found. Available columns: %s", describeAlternatives(e.Alternatives), quoteJoin(e.Available))
}

func describeAlternatives(names []string) string {
	switch len(names) {
	case 0:
		return "required column not"
	case 1:
		return fmt.Sprintf("'%s' not", names[0])
	case 2:
		return fmt.Sprintf("neither '%s' nor '%s'", names[0], names[1])
	default:
		return fmt.Sprintf("none of %s", quoteJoin(names))
	}
}

func quoteJoin(names []string) string {
	quoted := make([]string, len(names))
	for i, name := range names {
		quoted[i] = "'" + name + "'"
	}
	return strings.Join(quoted, ", ")
}

// EmptyResultError reports that no rows survived filtering
type EmptyResultError struct {
	InputRows          int
	MissingGroupKey    int
	InvalidReceiptDate int
}

func (e *EmptyResultError) Error() string {
	return fmt.Sprintf(
		"no groups to report: %d input rows, %d without a group key, %d with an unparseable receipt date",
		e.InputRows, e.MissingGroupKey, e.InvalidReceiptDate,
	)
}
