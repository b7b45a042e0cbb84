package sqlbuilder

import (
	"github.com/Hebilicious/prisma/connector"
	"github.com/Hebilicious/prisma/internal/errs"
	"github.com/Hebilicious/prisma/models"
)

var _ connector.QueryBuilder = &Inserter{}

type Inserter struct {
	builder
	tableName string
	// 一定要显式指定列的顺序, 不然我们不知道数据库中默认的顺序
	columns   []string
	rows      [][]models.ScalarValue
	returning string
}

func NewInserter(d connector.Dialect) *Inserter {
	return &Inserter{
		builder: builder{dialect: d},
	}
}

func (i *Inserter) Schema(name string) *Inserter {
	i.schema = name
	return i
}

func (i *Inserter) Into(tableName string) *Inserter {
	i.tableName = tableName
	return i
}

func (i *Inserter) Columns(cols ...string) *Inserter {
	i.columns = cols
	return i
}

// Values 追加一行, 值的顺序和 Columns 一致
func (i *Inserter) Values(vals ...models.ScalarValue) *Inserter {
	i.rows = append(i.rows, vals)
	return i
}

// Returning 只在支持 RETURNING 的方言上生效
func (i *Inserter) Returning(col string) *Inserter {
	i.returning = col
	return i
}

func (i *Inserter) Build() (*connector.Query, error) {
	if len(i.rows) == 0 {
		return nil, errs.ErrInsertZeroRows
	}
	i.reset()
	i.sb.WriteString("INSERT INTO ")
	if err := i.table(i.tableName); err != nil {
		return nil, err
	}
	i.sb.WriteByte('(')
	for idx, col := range i.columns {
		if idx > 0 {
			i.sb.WriteByte(',')
		}
		i.quote(col)
	}
	i.sb.WriteByte(')')
	i.sb.WriteString(" VALUES ")
	for rowIdx, row := range i.rows {
		if len(row) != len(i.columns) {
			return nil, errs.NewErrValuesCountMismatch(len(i.columns), len(row))
		}
		if rowIdx > 0 {
			i.sb.WriteByte(',')
		}
		i.sb.WriteByte('(')
		for idx, val := range row {
			if idx > 0 {
				i.sb.WriteByte(',')
			}
			i.addArg(val)
		}
		i.sb.WriteByte(')')
	}
	if i.returning != "" && i.dialect.SupportsReturning() {
		i.sb.WriteString(" RETURNING ")
		i.quote(i.returning)
	}
	return i.query(), nil
}
