// Package core 把解码后的行组装成调用方看到的结果树
package core

import (
	"github.com/Hebilicious/prisma/connector"
	"github.com/Hebilicious/prisma/internal/errs"
	"github.com/Hebilicious/prisma/models"
)

var (
	_ ReadQueryResult = &SingleResult{}
	_ ReadQueryResult = &ManyResult{}
)

// ReadQueryResult 是 *SingleResult 或者 *ManyResult
type ReadQueryResult interface {
	ResultName() string
	// GetImplicitFields 返回引擎自己加上的字段, 展示层需要把它们去掉
	GetImplicitFields() []models.SelectedScalarField
	readQueryResult()
}

// ListField 列表字段的名字和每条记录的值
type ListField struct {
	Name   string
	Values []connector.ScalarListValues
}

type SingleResult struct {
	Name   string
	Fields []string
	// Scalars 为 nil 代表没有匹配的记录
	Scalars        *models.SingleNode
	Nested         []ReadQueryResult
	Lists          []ListField
	SelectedFields models.SelectedFields
}

func (r *SingleResult) ResultName() string { return r.Name }

func (*SingleResult) readQueryResult() {}

func (r *SingleResult) GetImplicitFields() []models.SelectedScalarField {
	return r.SelectedFields.GetImplicitFields()
}

// FindID 没有记录, 或者 id 不是标识符时返回 false
func (r *SingleResult) FindID() (models.RecordID, bool) {
	if r.Scalars == nil {
		return nil, false
	}
	v, ok := r.Scalars.Get(models.IDFieldName)
	if !ok {
		return nil, false
	}
	id, ok := v.(models.RecordID)
	return id, ok
}

type ManyResult struct {
	Name    string
	Fields  []string
	Scalars models.ManyNodes
	Nested  []ReadQueryResult
	Lists   []ListField
	// QueryArguments 裁剪多取的行时需要
	QueryArguments connector.QueryArguments
	SelectedFields models.SelectedFields
}

func (r *ManyResult) ResultName() string { return r.Name }

func (*ManyResult) readQueryResult() {}

func (r *ManyResult) GetImplicitFields() []models.SelectedScalarField {
	return r.SelectedFields.GetImplicitFields()
}

// Trim 记录一次裁剪
type Trim struct {
	Name         string
	Fetched      int
	Reversed     bool
	DroppedLeft  int
	DroppedRight int
}

// RemoveExcessRecords 删除查询时多取的一行
// 设置了 last 时行是倒序取回的, 要先反转
// first 和 last 同时设置时直接拒绝, 不修改任何数据
func (r *ManyResult) RemoveExcessRecords() (Trim, error) {
	args := r.QueryArguments
	if args.First != nil && args.Last != nil {
		return Trim{}, errs.ErrConflictingPagination
	}
	t := Trim{
		Name:    r.Name,
		Fetched: r.Scalars.Len(),
	}
	if args.Last != nil {
		r.Scalars.Reverse()
		t.Reversed = true
	}
	switch {
	case args.First != nil && r.Scalars.Len() > int(*args.First):
		r.Scalars.DropRight(1)
		t.DroppedRight = 1
	case args.Last != nil && r.Scalars.Len() > int(*args.Last):
		r.Scalars.DropLeft(1)
		t.DroppedLeft = 1
	}
	return t, nil
}

// FindIDs 按行的顺序返回所有的 id
// 只要有一行的 id 缺失或者不是标识符, 就返回 false
func (r *ManyResult) FindIDs() ([]models.RecordID, bool) {
	pos, ok := r.Scalars.Position(models.IDFieldName)
	if !ok {
		return nil, false
	}
	ids := make([]models.RecordID, 0, r.Scalars.Len())
	for _, node := range r.Scalars.Nodes {
		if pos >= len(node.Values) {
			return nil, false
		}
		id, ok := node.Values[pos].(models.RecordID)
		if !ok {
			return nil, false
		}
		ids = append(ids, id)
	}
	return ids, true
}
