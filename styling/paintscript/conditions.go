package paintscript

import (
	"strconv"
	"strings"

	"github.com/jamesrr39/goutil/errorsx"
)

type condition interface {
	isCondition()
}

// exactCondition is written "[value = "...todo..."]" in a script.
type exactCondition struct {
	Value string
}

func (exactCondition) isCondition() {}

// rangeCondition is written "[from <= value <= to]" in a script.
type rangeCondition struct {
	From, To float64
}

func (rangeCondition) isCondition() {}

const (
	conditionExactPrefix  = "value="
	conditionRangeSubject = "<=value<="
)

// parseCondition understands the two rule condition forms. text is the
// condition with the surrounding brackets removed and whitespace outside
// strings already stripped by the lexer.
func parseCondition(text string) (condition, errorsx.Error) {
	if strings.HasPrefix(text, conditionExactPrefix) {
		value, err := unquote(strings.TrimPrefix(text, conditionExactPrefix))
		if err != nil {
			return nil, err
		}

		return exactCondition{Value: value}, nil
	}

	idx := strings.Index(text, conditionRangeSubject)
	if idx == -1 {
		return nil, errorsx.Errorf("couldn't understand condition %q (expected [value = \"...\"] or [from <= value <= to])", text)
	}

	from, parseErr := strconv.ParseFloat(text[:idx], 64)
	if parseErr != nil {
		return nil, errorsx.Errorf("couldn't understand the 'from' bound in condition %q", text)
	}

	to, parseErr := strconv.ParseFloat(text[idx+len(conditionRangeSubject):], 64)
	if parseErr != nil {
		return nil, errorsx.Errorf("couldn't understand the 'to' bound in condition %q", text)
	}

	return rangeCondition{From: from, To: to}, nil
}

func unquote(text string) (string, errorsx.Error) {
	unquoted, err := strconv.Unquote(text)
	if err != nil {
		return "", errorsx.Errorf("expected a quoted string but got %q", text)
	}

	return unquoted, nil
}
