package valuesparquet

import (
	"strconv"
	"unicode"

	"github.com/jamesrr39/goutil/errorsx"
)

// ParseWhereClause turns a textual row filter into a Filter. Clauses look
// like SQL WHERE conditions over the dataset fields:
//
//	value >= 10 and value < 100
//	key == "NO-03" or text == "closed"
//
// "and" binds tighter than "or"; grouping with parentheses is not supported.
// String literals take single or double quotes.
func ParseWhereClause(clause string) (Filter, errorsx.Error) {
	tokens, err := tokenizeWhereClause(clause)
	if err != nil {
		return nil, err
	}
	if len(tokens) == 0 {
		return nil, errorsx.Errorf("empty filter expression")
	}

	parser := &whereParser{tokens: tokens}
	filter, err := parser.parse()
	if err != nil {
		return nil, err
	}

	err = filter.Validate()
	if err != nil {
		return nil, err
	}

	return filter, nil
}

type whereTokenKind int

const (
	whereTokenWord whereTokenKind = iota + 1
	whereTokenString
	whereTokenNumber
	whereTokenOperator
)

type whereToken struct {
	kind whereTokenKind
	text string
}

func tokenizeWhereClause(clause string) ([]*whereToken, errorsx.Error) {
	var tokens []*whereToken

	runes := []rune(clause)
	i := 0
	for i < len(runes) {
		r := runes[i]
		switch {
		case unicode.IsSpace(r):
			i++
		case r == '"' || r == '\'':
			closingQuote := i + 1
			for closingQuote < len(runes) && runes[closingQuote] != r {
				closingQuote++
			}
			if closingQuote == len(runes) {
				return nil, errorsx.Errorf("unterminated string literal in %q", clause)
			}
			tokens = append(tokens, &whereToken{whereTokenString, string(runes[i+1 : closingQuote])})
			i = closingQuote + 1
		case r == '=' || r == '<' || r == '>' || r == '!':
			end := i
			for end < len(runes) && (runes[end] == '=' || runes[end] == '<' || runes[end] == '>' || runes[end] == '!') {
				end++
			}
			tokens = append(tokens, &whereToken{whereTokenOperator, string(runes[i:end])})
			i = end
		case r == '-' || r == '.' || unicode.IsDigit(r):
			end := i + 1
			for end < len(runes) && (runes[end] == '.' || unicode.IsDigit(runes[end])) {
				end++
			}
			tokens = append(tokens, &whereToken{whereTokenNumber, string(runes[i:end])})
			i = end
		case unicode.IsLetter(r) || r == '_':
			end := i + 1
			for end < len(runes) && (unicode.IsLetter(runes[end]) || unicode.IsDigit(runes[end]) || runes[end] == '_') {
				end++
			}
			tokens = append(tokens, &whereToken{whereTokenWord, string(runes[i:end])})
			i = end
		default:
			return nil, errorsx.Errorf("unexpected character %q in filter expression", string(r))
		}
	}

	return tokens, nil
}

type whereParser struct {
	tokens []*whereToken
	pos    int
}

func (p *whereParser) next() *whereToken {
	if p.pos >= len(p.tokens) {
		return nil
	}
	token := p.tokens[p.pos]
	p.pos++
	return token
}

func (p *whereParser) parse() (Filter, errorsx.Error) {
	var orChildren []Filter
	var andChildren []Filter

	for {
		comparison, err := p.parseComparison()
		if err != nil {
			return nil, err
		}
		andChildren = append(andChildren, comparison)

		connective := p.next()
		if connective == nil {
			break
		}
		if connective.kind != whereTokenWord {
			return nil, errorsx.Errorf("expected 'and' or 'or' but got %q", connective.text)
		}

		switch connective.text {
		case "and", "AND":
			// stay in the current group
		case "or", "OR":
			orChildren = append(orChildren, combineWithAnd(andChildren))
			andChildren = nil
		default:
			return nil, errorsx.Errorf("expected 'and' or 'or' but got %q", connective.text)
		}
	}

	orChildren = append(orChildren, combineWithAnd(andChildren))
	if len(orChildren) == 1 {
		return orChildren[0], nil
	}

	return &LogicalFilter{Operator: LogicalFilterOperatorOr, ChildFilters: orChildren}, nil
}

func combineWithAnd(children []Filter) Filter {
	if len(children) == 1 {
		return children[0]
	}

	return &LogicalFilter{Operator: LogicalFilterOperatorAnd, ChildFilters: children}
}

func (p *whereParser) parseComparison() (*ComparativeFilter, errorsx.Error) {
	fieldToken := p.next()
	if fieldToken == nil || fieldToken.kind != whereTokenWord {
		return nil, errorsx.Errorf("expected a field name (%q, %q or %q)", DatasetFieldKey, DatasetFieldValue, DatasetFieldText)
	}

	operatorToken := p.next()
	if operatorToken == nil || operatorToken.kind != whereTokenOperator {
		return nil, errorsx.Errorf("expected an operator after %q", fieldToken.text)
	}
	operator := ComparativeOperator(operatorToken.text)
	switch operator {
	case ComparativeOperatorEqualTo,
		ComparativeOperatorGreaterThan,
		ComparativeOperatorLessThan,
		ComparativeOperatorLessThanOrEqualTo,
		ComparativeOperatorGreaterThanOrEqualTo:
		// ok
	default:
		return nil, errorsx.Errorf("unrecognised operator: %q", operatorToken.text)
	}

	operandToken := p.next()
	if operandToken == nil {
		return nil, errorsx.Errorf("expected a number or a quoted string after %q", operatorToken.text)
	}

	var operand Operand
	switch operandToken.kind {
	case whereTokenString:
		operand = StringOperand(operandToken.text)
	case whereTokenNumber:
		number, parseErr := strconv.ParseFloat(operandToken.text, 64)
		if parseErr != nil {
			return nil, errorsx.Errorf("couldn't understand the number %q", operandToken.text)
		}
		operand = Float64Operand(number)
	default:
		return nil, errorsx.Errorf("expected a number or a quoted string but got %q", operandToken.text)
	}

	return &ComparativeFilter{
		FieldName: fieldToken.text,
		Operator:  operator,
		Operand:   operand,
	}, nil
}
