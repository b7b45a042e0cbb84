package connector

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/Hebilicious/prisma/internal/errs"
	"github.com/Hebilicious/prisma/models"
)

// 文本存储的时间戳可能出现的格式, 一律按 UTC 解析
var dateTimeLayouts = []string{
	naiveTimeLayout,
	"2006-01-02T15:04:05.999999999",
	time.RFC3339Nano,
	"2006-01-02",
}

// columnDecoder 负责把一列扫描出来并转换为 models.ScalarValue
type columnDecoder interface {
	sql.Scanner
	value() (models.ScalarValue, error)
}

// DecodeRows 按照 idents 逐列解码所有的行
// idents 的长度必须和结果集的列数一致
func DecodeRows(rows *sql.Rows, d Dialect, idents []models.TypeIdentifier) ([]models.Node, error) {
	cts, err := rows.ColumnTypes()
	if err != nil {
		return nil, errs.NewErrBackendIO(err, "读取列类型")
	}
	if len(cts) != len(idents) {
		return nil, errs.NewErrColumnCountMismatch(len(idents), len(cts))
	}
	typeNames := make([]string, 0, len(cts))
	for _, ct := range cts {
		typeNames = append(typeNames, ct.DatabaseTypeName())
	}

	nodes := make([]models.Node, 0, 8)
	for rows.Next() {
		decoders := make([]columnDecoder, 0, len(idents))
		dests := make([]any, 0, len(idents))
		for i, ident := range idents {
			dec, err := newColumnDecoder(d, ident, typeNames[i])
			if err != nil {
				return nil, err
			}
			decoders = append(decoders, dec)
			dests = append(dests, dec)
		}
		if err = rows.Scan(dests...); err != nil {
			return nil, errs.NewErrBackendIO(err, "读取行")
		}
		vals := make([]models.ScalarValue, 0, len(decoders))
		for _, dec := range decoders {
			val, err := dec.value()
			if err != nil {
				return nil, errs.NewErrBackendIO(err, "解码列")
			}
			vals = append(vals, val)
		}
		nodes = append(nodes, models.Node{Values: vals})
	}
	if err = rows.Err(); err != nil {
		return nil, errs.NewErrBackendIO(err, "读取行")
	}
	return nodes, nil
}

func newColumnDecoder(d Dialect, ident models.TypeIdentifier, typeName string) (columnDecoder, error) {
	switch ident {
	case models.TypeString:
		return &stringDecoder{}, nil
	case models.TypeEnum:
		return &stringDecoder{enum: true}, nil
	case models.TypeFloat:
		return &floatDecoder{}, nil
	case models.TypeBoolean:
		return &boolDecoder{}, nil
	case models.TypeInt:
		return newIntDecoder(d.intWidth(typeName)), nil
	case models.TypeRelation:
		return &relationDecoder{}, nil
	case models.TypeJSON:
		return &jsonDecoder{}, nil
	case models.TypeUUID:
		return &uuidDecoder{}, nil
	case models.TypeDateTime:
		return &dateTimeDecoder{}, nil
	case models.TypeID:
		return &idDecoder{dialect: d, typeName: typeName}, nil
	default:
		return nil, errs.NewErrUnsupportedOperation("connector: 不支持的类型标识 %s", ident)
	}
}

type stringDecoder struct {
	sql.NullString
	enum bool
}

func (s *stringDecoder) value() (models.ScalarValue, error) {
	if !s.Valid {
		return models.Null{}, nil
	}
	if s.enum {
		return models.Enum(s.String), nil
	}
	return models.String(s.String), nil
}

type floatDecoder struct {
	sql.NullFloat64
}

func (f *floatDecoder) value() (models.ScalarValue, error) {
	if !f.Valid {
		return models.Null{}, nil
	}
	return models.Float(f.Float64), nil
}

type boolDecoder struct {
	sql.NullBool
}

func (b *boolDecoder) value() (models.ScalarValue, error) {
	if !b.Valid {
		return models.Null{}, nil
	}
	return models.Boolean(b.Bool), nil
}

// newIntDecoder 按列声明的宽度选择扫描的类型, 超出范围的值在 Scan 时报错
func newIntDecoder(width int) columnDecoder {
	switch width {
	case 2:
		return &int16Decoder{}
	case 4:
		return &int32Decoder{}
	default:
		return &int64Decoder{}
	}
}

type int16Decoder struct {
	sql.NullInt16
}

func (i *int16Decoder) value() (models.ScalarValue, error) {
	if !i.Valid {
		return models.Null{}, nil
	}
	return models.Int(i.Int16), nil
}

type int32Decoder struct {
	sql.NullInt32
}

func (i *int32Decoder) value() (models.ScalarValue, error) {
	if !i.Valid {
		return models.Null{}, nil
	}
	return models.Int(i.Int32), nil
}

type int64Decoder struct {
	sql.NullInt64
}

func (i *int64Decoder) value() (models.ScalarValue, error) {
	if !i.Valid {
		return models.Null{}, nil
	}
	return models.Int(i.Int64), nil
}

type relationDecoder struct {
	sql.NullInt64
}

func (r *relationDecoder) value() (models.ScalarValue, error) {
	if !r.Valid {
		return models.Null{}, nil
	}
	if r.Int64 < 0 {
		return nil, errs.NewErrConversionFailure("int64", "Relation")
	}
	return models.Relation(r.Int64), nil
}

// rawDecoder 保留驱动返回的原始值, []byte 需要复制
type rawDecoder struct {
	src any
}

func (r *rawDecoder) Scan(src any) error {
	if bs, ok := src.([]byte); ok {
		cp := make([]byte, len(bs))
		copy(cp, bs)
		src = cp
	}
	r.src = src
	return nil
}

type jsonDecoder struct {
	rawDecoder
}

func (j *jsonDecoder) value() (models.ScalarValue, error) {
	var data []byte
	switch v := j.src.(type) {
	case nil:
		return models.Null{}, nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		// pgx 对 json 列可能直接返回解码后的结构
		return models.JSON{Val: v}, nil
	}
	val, err := models.DecodeJSON(data)
	if err != nil {
		return nil, errors.Wrap(err, "connector: 非法的 JSON 列")
	}
	return models.JSON{Val: val}, nil
}

type uuidDecoder struct {
	rawDecoder
}

func (u *uuidDecoder) value() (models.ScalarValue, error) {
	if u.src == nil {
		return models.Null{}, nil
	}
	id, err := toUUID(u.src)
	if err != nil {
		return nil, err
	}
	return models.UUID(id), nil
}

// dateTimeDecoder 存储的时间戳不带时区, 读取的墙上时间就是 UTC 时间
type dateTimeDecoder struct {
	rawDecoder
}

func (d *dateTimeDecoder) value() (models.ScalarValue, error) {
	switch v := d.src.(type) {
	case nil:
		return models.Null{}, nil
	case time.Time:
		return models.DateTime(time.Date(v.Year(), v.Month(), v.Day(),
			v.Hour(), v.Minute(), v.Second(), v.Nanosecond(), time.UTC)), nil
	case []byte:
		return parseDateTime(string(v))
	case string:
		return parseDateTime(v)
	default:
		return nil, errs.NewErrConversionFailure(fmt.Sprintf("%T", d.src), "DateTime")
	}
}

func parseDateTime(s string) (models.ScalarValue, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateTimeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return models.NewDateTime(t), nil
		}
	}
	return nil, errors.Newf("connector: 无法解析时间戳 %q", s)
}

type idDecoder struct {
	rawDecoder
	dialect  Dialect
	typeName string
}

func (i *idDecoder) value() (models.ScalarValue, error) {
	if i.src == nil {
		return models.Null{}, nil
	}
	return i.dialect.decodeID(i.typeName, i.src)
}
