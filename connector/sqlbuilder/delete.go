package sqlbuilder

import (
	"github.com/Hebilicious/prisma/connector"
)

var _ connector.QueryBuilder = &Deleter{}

type Deleter struct {
	builder
	tableName string
	where     []Predicate
}

func NewDeleter(d connector.Dialect) *Deleter {
	return &Deleter{
		builder: builder{dialect: d},
	}
}

func (d *Deleter) Schema(name string) *Deleter {
	d.schema = name
	return d
}

func (d *Deleter) From(tableName string) *Deleter {
	d.tableName = tableName
	return d
}

func (d *Deleter) Where(where ...Predicate) *Deleter {
	d.where = where
	return d
}

func (d *Deleter) Build() (*connector.Query, error) {
	d.reset()
	d.sb.WriteString("DELETE FROM ")
	if err := d.table(d.tableName); err != nil {
		return nil, err
	}
	if err := d.buildWhere(d.where); err != nil {
		return nil, err
	}
	return d.query(), nil
}
