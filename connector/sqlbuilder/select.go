package sqlbuilder

import (
	"github.com/Hebilicious/prisma/connector"
)

var _ connector.QueryBuilder = &Selector{}

type Selector struct {
	builder
	tableName string
	// 指定 select 的列, 为空时是 *
	columns []string
	where   []Predicate
	orderBy []OrderBy
	limit   int
	offset  int
}

func NewSelector(d connector.Dialect) *Selector {
	return &Selector{
		builder: builder{dialect: d},
	}
}

func (s *Selector) Schema(name string) *Selector {
	s.schema = name
	return s
}

func (s *Selector) Select(cols ...string) *Selector {
	s.columns = cols
	return s
}

func (s *Selector) From(tableName string) *Selector {
	s.tableName = tableName
	return s
}

func (s *Selector) Where(where ...Predicate) *Selector {
	s.where = where
	return s
}

func (s *Selector) OrderBy(orderBy ...OrderBy) *Selector {
	s.orderBy = orderBy
	return s
}

func (s *Selector) Limit(limit int) *Selector {
	s.limit = limit
	return s
}

func (s *Selector) Offset(offset int) *Selector {
	s.offset = offset
	return s
}

func (s *Selector) Build() (*connector.Query, error) {
	s.reset()
	s.sb.WriteString("SELECT ")
	if len(s.columns) == 0 {
		s.sb.WriteByte('*')
	}
	for i, col := range s.columns {
		if i > 0 {
			s.sb.WriteByte(',')
		}
		s.quote(col)
	}
	s.sb.WriteString(" FROM ")
	if err := s.table(s.tableName); err != nil {
		return nil, err
	}
	if err := s.buildWhere(s.where); err != nil {
		return nil, err
	}
	if len(s.orderBy) > 0 {
		s.sb.WriteString(" ORDER BY ")
		for i, ob := range s.orderBy {
			if i > 0 {
				s.sb.WriteByte(',')
			}
			s.quote(ob.col)
			if ob.desc {
				s.sb.WriteString(" DESC")
			} else {
				s.sb.WriteString(" ASC")
			}
		}
	}
	s.sb.WriteString(s.dialect.LimitOffset(s.limit, s.offset))
	return s.query(), nil
}
