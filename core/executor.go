package core

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Hebilicious/prisma/connector"
	"github.com/Hebilicious/prisma/connector/sqlbuilder"
	"github.com/Hebilicious/prisma/internal/errs"
	"github.com/Hebilicious/prisma/models"
)

// 列表字段表的列
const (
	listNodeIDColumn   = "nodeId"
	listPositionColumn = "position"
	listValueColumn    = "value"
)

// ReadQuery 描述一次读取
// Relation 不为空时是嵌套查询, 读取父记录关联的所有记录
type ReadQuery struct {
	Name     string
	Model    *models.Model
	Many     bool
	Where    []sqlbuilder.Predicate
	Args     connector.QueryArguments
	Selected models.SelectedFields
	Relation *models.RelationField
	Nested   []ReadQuery
}

// TrimHook 在裁剪分页结果之后调用
type TrimHook func(ctx context.Context, t Trim)

// LogTrims 记录每一次实际发生的裁剪
func LogTrims(logger *zap.Logger) TrimHook {
	return func(ctx context.Context, t Trim) {
		if t.DroppedLeft == 0 && t.DroppedRight == 0 {
			return
		}
		logger.Debug("裁剪分页结果",
			zap.String("name", t.Name),
			zap.Int("fetched", t.Fetched),
			zap.Bool("reversed", t.Reversed),
			zap.Int("droppedLeft", t.DroppedLeft),
			zap.Int("droppedRight", t.DroppedRight))
	}
}

type ExecutorOption func(e *ReadQueryExecutor)

// ExecutorWithSchema 表名使用 schema 作为前缀
func ExecutorWithSchema(name string) ExecutorOption {
	return func(e *ReadQueryExecutor) {
		e.schema = name
	}
}

func ExecutorWithTrimHook(hook TrimHook) ExecutorOption {
	return func(e *ReadQueryExecutor) {
		e.trimHook = hook
	}
}

// ExecutorWithConcurrency 同一层的查询最多同时执行 n 个, n <= 0 时不限制
func ExecutorWithConcurrency(n int) ExecutorOption {
	return func(e *ReadQueryExecutor) {
		if n <= 0 {
			n = -1
		}
		e.concurrency = n
	}
}

// ReadQueryExecutor 递归地执行读取并组装结果
//
// 设置了 last 的查询按 id 倒序取回 last+1 行, 设置了 first 的查询按 id 正序取回 first+1 行.
// 倒序取回的行正是 ManyResult.RemoveExcessRecords 期望的顺序, 它会先反转再裁剪.
// 嵌套查询用 fk IN (父记录的 id) 一次取回所有父记录的关联记录, 分页参数作用于这个整体.
type ReadQueryExecutor struct {
	conn        connector.Connector
	schema      string
	trimHook    TrimHook
	concurrency int
}

func NewReadQueryExecutor(conn connector.Connector, opts ...ExecutorOption) *ReadQueryExecutor {
	e := &ReadQueryExecutor{
		conn:        conn,
		trimHook:    func(context.Context, Trim) {},
		concurrency: 4,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Execute 每个查询单独获取连接, 同一层的查询并发执行
func (e *ReadQueryExecutor) Execute(ctx context.Context, queries []ReadQuery) ([]ReadQueryResult, error) {
	return e.readAll(ctx, e.conn, true, queries, nil)
}

// ExecuteInTransaction 所有的查询在同一个事务里顺序执行
func (e *ReadQueryExecutor) ExecuteInTransaction(ctx context.Context, name string,
	queries []ReadQuery) ([]ReadQueryResult, error) {
	var res []ReadQueryResult
	err := e.conn.WithTransaction(ctx, name, func(ctx context.Context, tx connector.Session) error {
		var err error
		res, err = e.readAll(ctx, tx, false, queries, nil)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (e *ReadQueryExecutor) readAll(ctx context.Context, sess connector.Session, parallel bool,
	queries []ReadQuery, parentIDs []models.RecordID) ([]ReadQueryResult, error) {
	res := make([]ReadQueryResult, len(queries))
	tasks := make([]func(ctx context.Context) error, 0, len(queries))
	for i := range queries {
		i := i
		tasks = append(tasks, func(ctx context.Context) error {
			r, err := e.read(ctx, sess, parallel, queries[i], parentIDs)
			if err != nil {
				return err
			}
			res[i] = r
			return nil
		})
	}
	if err := e.run(ctx, parallel, tasks); err != nil {
		return nil, err
	}
	return res, nil
}

// run 事务只能在一个 goroutine 里使用, 所以 parallel 为 false 时顺序执行
func (e *ReadQueryExecutor) run(ctx context.Context, parallel bool, tasks []func(ctx context.Context) error) error {
	if !parallel || len(tasks) < 2 {
		for _, task := range tasks {
			if err := task(ctx); err != nil {
				return err
			}
		}
		return nil
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)
	for _, task := range tasks {
		task := task
		g.Go(func() error {
			return task(gctx)
		})
	}
	return g.Wait()
}

func (e *ReadQueryExecutor) read(ctx context.Context, sess connector.Session, parallel bool,
	q ReadQuery, parentIDs []models.RecordID) (ReadQueryResult, error) {
	if err := q.Args.Validate(); err != nil {
		return nil, err
	}
	if q.Model == nil && q.Relation != nil {
		q.Model = q.Relation.Related
	}
	idField, ok := q.Model.FindField(models.IDFieldName)
	if !ok {
		return nil, errs.NewErrUnknownField(models.IDFieldName)
	}
	selected := q.Selected.WithImplicit(idField)

	where := q.Where
	if q.Relation != nil {
		fk, ok := findColumn(q.Model, q.Relation.ForeignKey)
		if !ok {
			return nil, errs.NewErrUnknownField(q.Relation.ForeignKey)
		}
		selected = selected.WithImplicit(fk)
		where = append(append(make([]sqlbuilder.Predicate, 0, len(where)+1), where...),
			sqlbuilder.C(fk.ColumnName()).In(scalarValues(parentIDs)...))
	}

	var nodes []models.Node
	// 没有父记录的时候不需要查询
	if q.Relation == nil || len(parentIDs) > 0 {
		var err error
		nodes, err = sess.Filter(ctx, e.selector(q, idField, selected, where), selected.TypeIdentifiers())
		if err != nil {
			return nil, err
		}
	}

	fieldNames := selected.Names()
	if !q.Many {
		return e.single(ctx, sess, parallel, q, selected, fieldNames, nodes)
	}
	return e.many(ctx, sess, parallel, q, selected, fieldNames, nodes)
}

func (e *ReadQueryExecutor) selector(q ReadQuery, idField *models.ScalarField,
	selected models.SelectedFields, where []sqlbuilder.Predicate) *sqlbuilder.Selector {
	cols := selected.Columns()
	names := make([]string, 0, len(cols))
	for _, f := range cols {
		names = append(names, f.ColumnName())
	}
	idCol := idField.ColumnName()
	args := q.Args
	// 不能修改调用方的切片
	where = where[:len(where):len(where)]
	if args.After != nil {
		where = append(where, sqlbuilder.C(idCol).Gt(args.After))
	}
	if args.Before != nil {
		where = append(where, sqlbuilder.C(idCol).Lt(args.Before))
	}

	s := sqlbuilder.NewSelector(e.conn.Dialect()).Schema(e.schema).
		Select(names...).From(q.Model.Table()).Where(where...)
	switch {
	case !q.Many:
		s = s.OrderBy(sqlbuilder.Asc(idCol)).Limit(1)
	case args.Last != nil:
		s = s.OrderBy(sqlbuilder.Desc(idCol)).Limit(int(*args.Last) + 1)
	case args.First != nil:
		s = s.OrderBy(sqlbuilder.Asc(idCol)).Limit(int(*args.First) + 1)
	default:
		s = s.OrderBy(sqlbuilder.Asc(idCol))
	}
	if args.Skip != nil {
		s = s.Offset(int(*args.Skip))
	}
	return s
}

func (e *ReadQueryExecutor) single(ctx context.Context, sess connector.Session, parallel bool, q ReadQuery,
	selected models.SelectedFields, fieldNames []string, nodes []models.Node) (ReadQueryResult, error) {
	res := &SingleResult{
		Name:           q.Name,
		Fields:         fieldNames,
		SelectedFields: selected,
	}
	if len(nodes) == 0 {
		return res, nil
	}
	res.Scalars = &models.SingleNode{Node: nodes[0], FieldNames: fieldNames}
	if len(q.Nested) == 0 && len(selected.ListFields()) == 0 {
		return res, nil
	}
	id, ok := res.FindID()
	if !ok {
		return nil, errs.NewErrMissingIDs(q.Name)
	}
	var err error
	res.Nested, res.Lists, err = e.related(ctx, sess, parallel, q, selected, []models.RecordID{id})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (e *ReadQueryExecutor) many(ctx context.Context, sess connector.Session, parallel bool, q ReadQuery,
	selected models.SelectedFields, fieldNames []string, nodes []models.Node) (ReadQueryResult, error) {
	res := &ManyResult{
		Name:           q.Name,
		Fields:         fieldNames,
		Scalars:        models.ManyNodes{Nodes: nodes, FieldNames: fieldNames},
		QueryArguments: q.Args,
		SelectedFields: selected,
	}
	trim, err := res.RemoveExcessRecords()
	if err != nil {
		return nil, err
	}
	e.trimHook(ctx, trim)
	if len(q.Nested) == 0 && len(selected.ListFields()) == 0 {
		return res, nil
	}
	ids, ok := res.FindIDs()
	if !ok {
		return nil, errs.NewErrMissingIDs(q.Name)
	}
	res.Nested, res.Lists, err = e.related(ctx, sess, parallel, q, selected, ids)
	if err != nil {
		return nil, err
	}
	return res, nil
}

// related 读取嵌套查询和列表字段
func (e *ReadQueryExecutor) related(ctx context.Context, sess connector.Session, parallel bool, q ReadQuery,
	selected models.SelectedFields, ids []models.RecordID) ([]ReadQueryResult, []ListField, error) {
	listFields := selected.ListFields()
	lists := make([]ListField, len(listFields))
	tasks := make([]func(ctx context.Context) error, 0, len(listFields)+1)
	for i, f := range listFields {
		i, f := i, f
		tasks = append(tasks, func(ctx context.Context) error {
			values, err := e.listValues(ctx, sess, q.Model, f, ids)
			if err != nil {
				return err
			}
			lists[i] = ListField{Name: f.Name, Values: values}
			return nil
		})
	}

	var nested []ReadQueryResult
	if len(q.Nested) > 0 {
		tasks = append(tasks, func(ctx context.Context) error {
			res, err := e.readAll(ctx, sess, parallel, q.Nested, ids)
			if err != nil {
				return err
			}
			nested = res
			return nil
		})
	}
	if err := e.run(ctx, parallel, tasks); err != nil {
		return nil, nil, err
	}
	return nested, lists, nil
}

// listValues 列表字段存储在 <Model>_<field> 表, 按 position 排序
func (e *ReadQueryExecutor) listValues(ctx context.Context, sess connector.Session, m *models.Model,
	f *models.ScalarField, ids []models.RecordID) ([]connector.ScalarListValues, error) {
	if len(ids) == 0 {
		return []connector.ScalarListValues{}, nil
	}
	s := sqlbuilder.NewSelector(e.conn.Dialect()).Schema(e.schema).
		Select(listNodeIDColumn, listPositionColumn, listValueColumn).
		From(m.ScalarListTable(f)).
		Where(sqlbuilder.C(listNodeIDColumn).In(scalarValues(ids)...)).
		OrderBy(sqlbuilder.Asc(listNodeIDColumn), sqlbuilder.Asc(listPositionColumn))
	nodes, err := sess.Filter(ctx, s, []models.TypeIdentifier{models.TypeID, models.TypeInt, f.TypeIdentifier})
	if err != nil {
		return nil, err
	}

	grouped := make(map[models.RecordID][]models.ScalarValue, len(ids))
	for _, node := range nodes {
		id, ok := node.Values[0].(models.RecordID)
		if !ok {
			return nil, errs.NewErrMissingIDs(m.ScalarListTable(f))
		}
		grouped[id] = append(grouped[id], node.Values[2])
	}
	res := make([]connector.ScalarListValues, 0, len(ids))
	for _, id := range ids {
		values := grouped[id]
		if values == nil {
			values = []models.ScalarValue{}
		}
		res = append(res, connector.ScalarListValues{NodeID: id, Values: values})
	}
	return res, nil
}

// findColumn 按字段名或者列名查找
func findColumn(m *models.Model, name string) (*models.ScalarField, bool) {
	if f, ok := m.FindField(name); ok {
		return f, true
	}
	for _, f := range m.Fields {
		if f.ColumnName() == name {
			return f, true
		}
	}
	return nil, false
}

func scalarValues(ids []models.RecordID) []models.ScalarValue {
	res := make([]models.ScalarValue, 0, len(ids))
	for _, id := range ids {
		res = append(res, id)
	}
	return res
}
