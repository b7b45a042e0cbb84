package models

import (
	"github.com/Hebilicious/prisma/internal/errs"
)

// ConversionError 是窄化转换失败时的错误类型
type ConversionError = errs.ConversionError

const sourceName = "ScalarValue"

func ToRecordID(v ScalarValue) (RecordID, error) {
	if id, ok := v.(RecordID); ok {
		return id, nil
	}
	return nil, errs.NewErrConversionFailure(sourceName, "RecordID")
}

func ToInt(v ScalarValue) (int64, error) {
	if i, ok := v.(Int); ok {
		return int64(i), nil
	}
	return 0, errs.NewErrConversionFailure(sourceName, "int64")
}

// ToList Null 会被转换为一个无效的列表, 而不是报错
func ToList(v ScalarValue) (List, error) {
	switch l := v.(type) {
	case List:
		return l, nil
	case Null:
		return List{}, nil
	default:
		return List{}, errs.NewErrConversionFailure(sourceName, "list")
	}
}
