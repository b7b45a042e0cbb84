package sqlbuilder

import (
	"github.com/Hebilicious/prisma/models"
)

// Column 是数据库的列名
type Column struct {
	table string
	name  string
}

func C(name string) Column {
	return Column{name: name}
}

// Of 使用表名限定列名
func (c Column) Of(table string) Column {
	c.table = table
	return c
}

func (Column) expr() {}

func (c Column) Eq(arg models.ScalarValue) Predicate {
	return c.compare(opEq, arg)
}

func (c Column) NotEq(arg models.ScalarValue) Predicate {
	return c.compare(opNotEq, arg)
}

func (c Column) Lt(arg models.ScalarValue) Predicate {
	return c.compare(opLt, arg)
}

func (c Column) Gt(arg models.ScalarValue) Predicate {
	return c.compare(opGt, arg)
}

func (c Column) In(args ...models.ScalarValue) Predicate {
	return Predicate{
		left:  c,
		op:    opIn,
		right: values{vals: args},
	}
}

func (c Column) IsNull() Predicate {
	return Predicate{
		left: c,
		op:   opIsNull,
	}
}

func (c Column) IsNotNull() Predicate {
	return Predicate{
		left: c,
		op:   opIsNotNull,
	}
}

func (c Column) compare(o op, arg models.ScalarValue) Predicate {
	return Predicate{
		left:  c,
		op:    o,
		right: value{val: arg},
	}
}

// OrderBy 排序
type OrderBy struct {
	col  string
	desc bool
}

func Asc(col string) OrderBy {
	return OrderBy{col: col}
}

func Desc(col string) OrderBy {
	return OrderBy{col: col, desc: true}
}
