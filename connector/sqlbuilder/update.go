package sqlbuilder

import (
	"github.com/Hebilicious/prisma/connector"
	"github.com/Hebilicious/prisma/internal/errs"
	"github.com/Hebilicious/prisma/models"
)

var _ connector.QueryBuilder = &Updater{}

type assignment struct {
	col string
	val models.ScalarValue
}

type Updater struct {
	builder
	tableName string
	assigns   []assignment
	where     []Predicate
}

func NewUpdater(d connector.Dialect) *Updater {
	return &Updater{
		builder: builder{dialect: d},
	}
}

func (u *Updater) Schema(name string) *Updater {
	u.schema = name
	return u
}

func (u *Updater) Table(tableName string) *Updater {
	u.tableName = tableName
	return u
}

// Set 按调用顺序生成 SET 子句
func (u *Updater) Set(col string, val models.ScalarValue) *Updater {
	u.assigns = append(u.assigns, assignment{col: col, val: val})
	return u
}

func (u *Updater) Where(where ...Predicate) *Updater {
	u.where = where
	return u
}

func (u *Updater) Build() (*connector.Query, error) {
	if len(u.assigns) == 0 {
		return nil, errs.ErrNoUpdatedColumns
	}
	u.reset()
	u.sb.WriteString("UPDATE ")
	if err := u.table(u.tableName); err != nil {
		return nil, err
	}
	u.sb.WriteString(" SET ")
	for i, a := range u.assigns {
		if i > 0 {
			u.sb.WriteByte(',')
		}
		u.quote(a.col)
		u.sb.WriteString(" = ")
		u.addArg(a.val)
	}
	if err := u.buildWhere(u.where); err != nil {
		return nil, err
	}
	return u.query(), nil
}
