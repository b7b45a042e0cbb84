package connector

import (
	"context"
	"database/sql"

	"github.com/cockroachdb/errors"

	"github.com/Hebilicious/prisma/internal/errs"
	"github.com/Hebilicious/prisma/models"
)

// DefaultSessionName 不在事务中执行的语句使用的名字
const DefaultSessionName = "pool"

// preparer *sql.Conn 和 *sql.Tx 都实现了这个接口
type preparer interface {
	PrepareContext(ctx context.Context, query string) (*sql.Stmt, error)
}

type core struct {
	dialect Dialect
	mdls    []Middleware
}

func (c core) Dialect() Dialect {
	return c.dialect
}

func (c core) chain(root Handler) Handler {
	for i := len(c.mdls) - 1; i >= 0; i-- {
		root = c.mdls[i](root)
	}
	return root
}

func (c core) encodeArgs(vals []models.ScalarValue) ([]any, error) {
	args := make([]any, 0, len(vals))
	for _, v := range vals {
		arg, err := c.dialect.encode(v)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	return args, nil
}

// prepare 所有的语句都先准备再执行
func (c core) prepare(ctx context.Context, p preparer, q *Query) (*sql.Stmt, []any, error) {
	args, err := c.encodeArgs(q.Args)
	if err != nil {
		return nil, nil, err
	}
	stmt, err := p.PrepareContext(ctx, q.SQL)
	if err != nil {
		return nil, nil, errs.NewErrBackendIO(err, "准备语句")
	}
	return stmt, args, nil
}

func (c core) write(ctx context.Context, p preparer, name string, wq WriteQuery) (models.RecordID, error) {
	q, err := wq.Builder.Build()
	if err != nil {
		return nil, err
	}
	root := func(ctx context.Context, qc *QueryContext) *QueryResult {
		return c.writeHandler(ctx, p, wq.Kind, qc)
	}
	res := c.chain(root)(ctx, &QueryContext{
		Type:  wq.Kind.String(),
		Name:  name,
		Query: q,
	})
	if res.Err != nil {
		return nil, res.Err
	}
	id, _ := res.Result.(models.RecordID)
	return id, nil
}

func (c core) writeHandler(ctx context.Context, p preparer, kind WriteKind, qc *QueryContext) *QueryResult {
	stmt, args, err := c.prepare(ctx, p, qc.Query)
	if err != nil {
		return &QueryResult{Err: err}
	}
	defer func() {
		_ = stmt.Close()
	}()

	if kind == WriteInsert && c.dialect.SupportsReturning() {
		id, err := c.returningID(ctx, stmt, args)
		return &QueryResult{Result: id, Err: err}
	}

	res, err := stmt.ExecContext(ctx, args...)
	if err != nil {
		return &QueryResult{Err: errs.NewErrBackendIO(err, "执行语句")}
	}
	if kind != WriteInsert {
		return &QueryResult{}
	}
	// 后端没有报告插入的 id 时, 结果为 nil
	id, err := res.LastInsertId()
	if err != nil || id <= 0 {
		return &QueryResult{}
	}
	return &QueryResult{Result: models.IntID(id)}
}

// returningID 读取 INSERT ... RETURNING 的第一行第一列
func (c core) returningID(ctx context.Context, stmt *sql.Stmt, args []any) (models.RecordID, error) {
	rows, err := stmt.QueryContext(ctx, args...)
	if err != nil {
		return nil, errs.NewErrBackendIO(err, "执行语句")
	}
	defer func() {
		_ = rows.Close()
	}()
	cts, err := rows.ColumnTypes()
	if err != nil {
		return nil, errs.NewErrBackendIO(err, "读取列类型")
	}
	if len(cts) == 0 || !rows.Next() {
		if err = rows.Err(); err != nil {
			return nil, errs.NewErrBackendIO(err, "读取插入的 id")
		}
		return nil, nil
	}
	dests := make([]any, len(cts))
	id := &idDecoder{dialect: c.dialect, typeName: cts[0].DatabaseTypeName()}
	dests[0] = id
	for i := 1; i < len(dests); i++ {
		dests[i] = new(any)
	}
	if err = rows.Scan(dests...); err != nil {
		return nil, errs.NewErrBackendIO(err, "读取插入的 id")
	}
	val, err := id.value()
	if err != nil {
		return nil, errs.NewErrBackendIO(err, "解码插入的 id")
	}
	rid, _ := val.(models.RecordID)
	return rid, nil
}

func (c core) filter(ctx context.Context, p preparer, name string,
	qb QueryBuilder, idents []models.TypeIdentifier) ([]models.Node, error) {
	q, err := qb.Build()
	if err != nil {
		return nil, err
	}
	root := func(ctx context.Context, qc *QueryContext) *QueryResult {
		return c.filterHandler(ctx, p, idents, qc)
	}
	res := c.chain(root)(ctx, &QueryContext{
		Type:  "SELECT",
		Name:  name,
		Query: q,
	})
	if res.Err != nil {
		return nil, res.Err
	}
	nodes, _ := res.Result.([]models.Node)
	return nodes, nil
}

func (c core) filterHandler(ctx context.Context, p preparer,
	idents []models.TypeIdentifier, qc *QueryContext) *QueryResult {
	stmt, args, err := c.prepare(ctx, p, qc.Query)
	if err != nil {
		return &QueryResult{Err: err}
	}
	defer func() {
		_ = stmt.Close()
	}()
	rows, err := stmt.QueryContext(ctx, args...)
	if err != nil {
		return &QueryResult{Err: errs.NewErrBackendIO(err, "执行查询")}
	}
	defer func() {
		_ = rows.Close()
	}()
	nodes, err := DecodeRows(rows, c.dialect, idents)
	return &QueryResult{Result: nodes, Err: err}
}

// truncate 先延迟约束, 再按顺序清空每张表
// 约束的恢复放在 defer 里, 清空失败时也会执行, 否则连接会带着关闭的约束回到连接池
func (c core) truncate(ctx context.Context, p preparer, name string, s *models.Schema) (err error) {
	root := func(ctx context.Context, qc *QueryContext) *QueryResult {
		return c.writeHandler(ctx, p, WriteDelete, qc)
	}
	h := c.chain(root)
	exec := func(stmt string) error {
		return h(ctx, &QueryContext{
			Type:  "TRUNCATE",
			Name:  name,
			Query: &Query{SQL: stmt},
		}).Err
	}

	for _, stmt := range c.dialect.deferConstraints() {
		if err = exec(stmt); err != nil {
			return err
		}
	}
	defer func() {
		for _, stmt := range c.dialect.restoreConstraints() {
			if restoreErr := exec(stmt); restoreErr != nil {
				err = errors.Mark(errors.CombineErrors(err, restoreErr), errConstraintsNotRestored)
			}
		}
	}()
	for _, table := range s.TableNames() {
		if err = exec("DELETE FROM " + c.dialect.Table(s.Name, table) + ";"); err != nil {
			return err
		}
	}
	return nil
}
