package connector

import (
	"github.com/Hebilicious/prisma/internal/errs"
	"github.com/Hebilicious/prisma/models"
)

// QueryBuilder 是语句构造器, connector 把它当成黑盒
type QueryBuilder interface {
	Build() (*Query, error)
}

// Query 是构造好的语句和按顺序排列的参数
// connector 不会检查或者修改 SQL 文本
type Query struct {
	SQL  string
	Args []models.ScalarValue
}

// RawQuery 用户手写的 SQL
type RawQuery struct {
	sql  string
	args []models.ScalarValue
}

func Raw(query string, args ...models.ScalarValue) RawQuery {
	return RawQuery{
		sql:  query,
		args: args,
	}
}

func (r RawQuery) Build() (*Query, error) {
	return &Query{
		SQL:  r.sql,
		Args: r.args,
	}, nil
}

type WriteKind uint8

const (
	WriteInsert WriteKind = iota + 1
	WriteUpdate
	WriteDelete
)

func (k WriteKind) String() string {
	switch k {
	case WriteInsert:
		return "INSERT"
	case WriteUpdate:
		return "UPDATE"
	case WriteDelete:
		return "DELETE"
	default:
		return "UNKNOWN"
	}
}

type WriteQuery struct {
	Kind    WriteKind
	Builder QueryBuilder
}

func Insert(b QueryBuilder) WriteQuery {
	return WriteQuery{Kind: WriteInsert, Builder: b}
}

func Update(b QueryBuilder) WriteQuery {
	return WriteQuery{Kind: WriteUpdate, Builder: b}
}

func Delete(b QueryBuilder) WriteQuery {
	return WriteQuery{Kind: WriteDelete, Builder: b}
}

// QueryArguments 分页和游标参数
// First 和 Last 不能同时出现, 在构造查询的时候就应该用 Validate 拦截
type QueryArguments struct {
	Skip   *uint32
	After  models.RecordID
	Before models.RecordID
	First  *uint32
	Last   *uint32
}

func (a QueryArguments) Validate() error {
	if a.First != nil && a.Last != nil {
		return errs.ErrConflictingPagination
	}
	return nil
}

// ScalarListValues 一条记录的列表字段的值
type ScalarListValues struct {
	NodeID models.RecordID
	Values []models.ScalarValue
}
