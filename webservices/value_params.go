package webservices

import (
	"strconv"

	"github.com/jamesrr39/goutil/errorsx"
	"github.com/jamesrr39/mappaint-app/mappaint"
)

const (
	valueTypeNumber = "number"
	valueTypeString = "string"
)

// parseValueParams turns the "type" and "value" query parameters into a
// value a resolver can take.
func parseValueParams(valueType, valueStr string) (mappaint.Value, errorsx.Error) {
	switch valueType {
	case valueTypeNumber:
		number, err := strconv.ParseFloat(valueStr, 64)
		if err != nil {
			return mappaint.Value{}, errorsx.Errorf("couldn't understand the number %q", valueStr)
		}

		return mappaint.NumberValue(number), nil
	case valueTypeString:
		return mappaint.StringValue(valueStr), nil
	case "":
		return mappaint.Value{}, errorsx.Errorf("missing %q parameter (expected %q or %q)", "type", valueTypeNumber, valueTypeString)
	default:
		return mappaint.Value{}, errorsx.Errorf("unknown value type %q (expected %q or %q)", valueType, valueTypeNumber, valueTypeString)
	}
}
