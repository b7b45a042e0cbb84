package sqlbuilder

import (
	"github.com/Hebilicious/prisma/models"
)

type op string

const (
	opEq        op = "="
	opNotEq     op = "!="
	opLt        op = "<"
	opGt        op = ">"
	opIn        op = "IN"
	opIsNull    op = "IS NULL"
	opIsNotNull op = "IS NOT NULL"
	opNot       op = "NOT"
	opAnd       op = "AND"
	opOr        op = "OR"
)

func (o op) String() string {
	return string(o)
}

// Expression 是一个标记接口, 代表表达式
type Expression interface {
	expr()
}

type Predicate struct {
	left  Expression
	op    op
	right Expression
}

func (Predicate) expr() {}

func Not(p Predicate) Predicate {
	return Predicate{
		op:    opNot,
		right: p,
	}
}

// C("id").Eq(models.Int(12)).And(C("name").Eq(models.String("Tom")))
func (left Predicate) And(right Predicate) Predicate {
	return Predicate{
		left:  left,
		op:    opAnd,
		right: right,
	}
}

// 两边都会加上括号
func (left Predicate) Or(right Predicate) Predicate {
	return Predicate{
		left:  left,
		op:    opOr,
		right: right,
	}
}

type value struct {
	val models.ScalarValue
}

func (value) expr() {}

type values struct {
	vals []models.ScalarValue
}

func (values) expr() {}

// RawExpr 代表的是原生表达式, ? 是参数的占位符
type RawExpr struct {
	raw  string
	args []models.ScalarValue
}

func Raw(expr string, args ...models.ScalarValue) RawExpr {
	return RawExpr{
		raw:  expr,
		args: args,
	}
}

func (RawExpr) expr() {}

func (r RawExpr) AsPredicate() Predicate {
	return Predicate{
		left: r,
	}
}
