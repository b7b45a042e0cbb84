package connector

import (
	"github.com/cockroachdb/errors"

	"github.com/Hebilicious/prisma/internal/errs"
)

// 通过桥接的方式将内部错误导出外部, 使用 errors.Is 判断错误的种类
var (
	ErrBackendIO             = errs.ErrBackendIO
	ErrConnectorCreation     = errs.ErrConnectorCreation
	ErrUnsupportedOperation  = errs.ErrUnsupportedOperation
	ErrConflictingPagination = errs.ErrConflictingPagination
)

var (
	errEmptyDatabaseFile = errors.New("connector: databaseFile 为空")
	// errConstraintsNotRestored 连接上的约束仍然是关闭的, 这个连接不能再使用
	errConstraintsNotRestored = errors.New("connector: 没有恢复约束")
)
