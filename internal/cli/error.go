package cli

import (
	"github.com/cockroachdb/errors"
)

func newErrUnknownDatabase(name string) error {
	return errors.Newf("cli: 配置中没有数据库 %s", name)
}

func newErrUnknownFormat(format string) error {
	return errors.Newf("cli: 不支持的输出格式 %s, 只支持 text 和 json", format)
}

func newErrInvalidListField(s string) error {
	return errors.Newf("cli: 列表字段 %s 的格式应该是 Model.field", s)
}
