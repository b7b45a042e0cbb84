package models

import (
	"strconv"

	"github.com/graphql-go/graphql/language/ast"

	"github.com/Hebilicious/prisma/internal/errs"
)

// FromLiteral 把查询里的字面量转换为 ScalarValue
// 不在下面列出的字面量类型(对象, 变量等)都会返回 ErrUnsupportedLiteral
func FromLiteral(lit ast.Value) (ScalarValue, error) {
	switch l := lit.(type) {
	case nil:
		return Null{}, nil
	case *ast.BooleanValue:
		return Boolean(l.Value), nil
	case *ast.EnumValue:
		return Enum(l.Value), nil
	case *ast.FloatValue:
		f, err := strconv.ParseFloat(l.Value, 64)
		if err != nil {
			return nil, errs.NewErrInvalidLiteral(l.GetKind(), l.Value, err)
		}
		return Float(f), nil
	case *ast.IntValue:
		i, err := strconv.ParseInt(l.Value, 10, 64)
		if err != nil {
			return nil, errs.NewErrInvalidLiteral(l.GetKind(), l.Value, err)
		}
		return Int(i), nil
	case *ast.StringValue:
		return String(l.Value), nil
	case *ast.ListValue:
		vals := make([]ScalarValue, 0, len(l.Values))
		for _, elem := range l.Values {
			v, err := FromLiteral(elem)
			if err != nil {
				return nil, err
			}
			vals = append(vals, v)
		}
		return List{Values: vals, Valid: true}, nil
	default:
		return nil, errs.NewErrUnsupportedLiteralKind(lit.GetKind())
	}
}
