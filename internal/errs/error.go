package errs

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

var (
	// ErrBackendIO 标记语句准备/执行/读取行失败
	ErrBackendIO = errors.New("connector: 后端执行失败")
	// ErrConnectorCreation 标记连接池/连接/配置问题
	ErrConnectorCreation = errors.New("connector: 无法创建连接")
	// ErrUnsupportedOperation 标记编程错误, 不应该被重试
	ErrUnsupportedOperation = errors.New("connector: 不支持的操作")
	// ErrUnsupportedLiteral 标记无法映射的字面量
	ErrUnsupportedLiteral = errors.New("models: 不支持的字面量")

	ErrConflictingPagination = errors.New("connector: first 和 last 不能同时指定")
	ErrInsertZeroRows        = errors.New("sqlbuilder: 插入0行数据")
	ErrEmptyTableName        = errors.New("sqlbuilder: 表名为空")
	ErrEmptyInValues         = errors.New("sqlbuilder: IN 的参数为空")
	ErrNoUpdatedColumns      = errors.New("sqlbuilder: 没有需要更新的列")
	ErrNoDefaultDatabase     = errors.New("config: 没有找到 default 数据库")
)

// ConversionError 值的类型不匹配
type ConversionError struct {
	From string
	To   string
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("models: 无法将 %s 转换为 %s", e.From, e.To)
}

func NewErrConversionFailure(from, to string) error {
	return &ConversionError{From: from, To: to}
}

func NewErrBackendIO(err error, op string) error {
	return errors.Mark(errors.Wrapf(err, "connector: %s 失败", op), ErrBackendIO)
}

func NewErrConnectorCreation(err error) error {
	return errors.Mark(errors.Wrap(err, "connector: 无法创建连接"), ErrConnectorCreation)
}

func NewErrUnsupportedConnector(name string) error {
	return errors.Mark(errors.Newf("connector: 不支持的连接器 %s", name), ErrConnectorCreation)
}

// NewErrUnsupportedOperation 返回的错误同时是一个 assertion failure
func NewErrUnsupportedOperation(format string, args ...any) error {
	return errors.Mark(errors.AssertionFailedf(format, args...), ErrUnsupportedOperation)
}

func NewErrUnsupportedLiteralKind(kind string) error {
	return errors.Mark(errors.Newf("models: 不支持的字面量类型 %s", kind), ErrUnsupportedLiteral)
}

func NewErrInvalidLiteral(kind, raw string, cause error) error {
	return errors.Wrapf(cause, "models: 非法的 %s 字面量 %q", kind, raw)
}

func NewErrUnsupportedIDType(typeName string) error {
	return errors.Newf("connector: 不支持的标识符列类型 %s", typeName)
}

func NewErrColumnCountMismatch(want, got int) error {
	return errors.Newf("connector: 期望 %d 列, 实际 %d 列", want, got)
}

func NewErrUnknownField(name string) error {
	return errors.Newf("models: 未知字段 %s", name)
}

func NewErrUnsupportedExpressionType(expr any) error {
	return errors.Newf("sqlbuilder: 不支持的表达式 %v", expr)
}

func NewErrMissingIDs(name string) error {
	return errors.Newf("core: %s 的结果中存在缺失或非法的 id", name)
}

// NewErrFailedToRollbackTx 回滚失败时, 业务错误作为主错误, 回滚错误作为附加信息
func NewErrFailedToRollbackTx(bizErr error, rbErr error, panicked bool) error {
	if rbErr == nil {
		return bizErr
	}
	if bizErr == nil {
		return errors.Wrapf(rbErr, "connector: 回滚事务失败, 是否 panic: %t", panicked)
	}
	return errors.WithSecondaryError(
		errors.Wrapf(bizErr, "connector: 回滚事务失败, 是否 panic: %t", panicked), rbErr)
}

func NewErrValuesCountMismatch(want, got int) error {
	return errors.Newf("sqlbuilder: 期望 %d 个值, 实际 %d 个", want, got)
}
