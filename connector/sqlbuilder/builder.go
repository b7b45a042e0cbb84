// Package sqlbuilder 构造带参数的 SQL 语句, 标识符和占位符由 connector.Dialect 决定
package sqlbuilder

import (
	"strings"

	"github.com/Hebilicious/prisma/connector"
	"github.com/Hebilicious/prisma/internal/errs"
	"github.com/Hebilicious/prisma/models"
)

type builder struct {
	dialect connector.Dialect
	schema  string
	sb      strings.Builder
	args    []models.ScalarValue
}

// reset 保证 Build 可以被重复调用
func (b *builder) reset() {
	b.sb.Reset()
	b.args = nil
}

func (b *builder) quote(name string) {
	b.sb.WriteString(b.dialect.Quote(name))
}

func (b *builder) table(name string) error {
	if name == "" {
		return errs.ErrEmptyTableName
	}
	b.sb.WriteString(b.dialect.Table(b.schema, name))
	return nil
}

// addArg 写入占位符并记录参数
func (b *builder) addArg(arg models.ScalarValue) {
	if b.args == nil {
		// 很少有查询能够超过8个参数
		// INSERT除外
		b.args = make([]models.ScalarValue, 0, 8)
	}
	if arg == nil {
		arg = models.Null{}
	}
	b.args = append(b.args, arg)
	b.sb.WriteString(b.dialect.Placeholder(len(b.args)))
}

// raw 用户手写的表达式, ? 按顺序替换为方言的占位符
func (b *builder) raw(expr string, args []models.ScalarValue) {
	i := 0
	for _, r := range expr {
		if r == '?' && i < len(args) {
			b.addArg(args[i])
			i++
			continue
		}
		b.sb.WriteRune(r)
	}
}

func (b *builder) buildWhere(where []Predicate) error {
	if len(where) == 0 {
		return nil
	}
	b.sb.WriteString(" WHERE ")
	p := where[0]
	for i := 1; i < len(where); i++ {
		p = p.And(where[i])
	}
	return b.buildExpression(p)
}

func (b *builder) buildExpression(expr Expression) error {
	switch exp := expr.(type) {
	case nil:
		return nil
	case Predicate:
		// 子谓词加括号
		_, lok := exp.left.(Predicate)
		if lok {
			b.sb.WriteByte('(')
		}
		if err := b.buildExpression(exp.left); err != nil {
			return err
		}
		if lok {
			b.sb.WriteByte(')')
		}

		if exp.op != "" {
			if exp.left != nil {
				b.sb.WriteByte(' ')
			}
			b.sb.WriteString(exp.op.String())
			if exp.right != nil {
				b.sb.WriteByte(' ')
			}
		}

		_, rok := exp.right.(Predicate)
		if rok {
			b.sb.WriteByte('(')
		}
		if err := b.buildExpression(exp.right); err != nil {
			return err
		}
		if rok {
			b.sb.WriteByte(')')
		}
	case Column:
		if exp.table != "" {
			b.quote(exp.table)
			b.sb.WriteByte('.')
		}
		b.quote(exp.name)
	case value:
		b.addArg(exp.val)
	case values:
		if len(exp.vals) == 0 {
			return errs.ErrEmptyInValues
		}
		b.sb.WriteByte('(')
		for i, v := range exp.vals {
			if i > 0 {
				b.sb.WriteByte(',')
			}
			b.addArg(v)
		}
		b.sb.WriteByte(')')
	case RawExpr:
		b.sb.WriteByte('(')
		b.raw(exp.raw, exp.args)
		b.sb.WriteByte(')')
	default:
		return errs.NewErrUnsupportedExpressionType(expr)
	}
	return nil
}

func (b *builder) query() *connector.Query {
	b.sb.WriteByte(';')
	return &connector.Query{
		SQL:  b.sb.String(),
		Args: b.args,
	}
}
