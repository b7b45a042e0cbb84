package connector

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"

	"github.com/Hebilicious/prisma/internal/errs"
	"github.com/Hebilicious/prisma/models"
)

var (
	DialectSQLite     Dialect = &sqliteDialect{}
	DialectPostgreSQL Dialect = &postgresDialect{}
	DialectMySQL      Dialect = &mysqlDialect{}
)

// naiveTimeLayout 不带时区的时间戳
const naiveTimeLayout = "2006-01-02 15:04:05.999999999"

// Dialect 屏蔽了每个后端在语句, 参数和类型上的差异
// 未导出的方法保证只有本包里的后端能实现它
type Dialect interface {
	Name() string
	// Quote 解决引号问题
	// MySQL 和 SQLite 使用反引号 `
	// PostgreSQL 使用双引号
	Quote(name string) string
	// Placeholder n 从 1 开始
	Placeholder(n int) string
	// LimitOffset 0 代表没有设置
	LimitOffset(limit, offset int) string
	// Table 表名, schema 为空时不带前缀
	Table(schema, table string) string
	// SupportsReturning 为 true 时 INSERT 的 id 通过 RETURNING 的结果读取
	SupportsReturning() bool

	// encode 把值转换成驱动接受的参数类型, List 不能作为单个参数
	encode(v models.ScalarValue) (any, error)
	// intWidth 根据列声明的类型返回整数的字节数
	intWidth(typeName string) int
	decodeID(typeName string, src any) (models.RecordID, error)
	deferConstraints() []string
	restoreConstraints() []string
}

type standardSQL struct{}

func (standardSQL) Placeholder(int) string { return "?" }

func (standardSQL) LimitOffset(limit, offset int) string {
	var sb strings.Builder
	if limit > 0 {
		sb.WriteString(" LIMIT ")
		sb.WriteString(strconv.Itoa(limit))
	}
	if offset > 0 {
		sb.WriteString(" OFFSET ")
		sb.WriteString(strconv.Itoa(offset))
	}
	return sb.String()
}

func (standardSQL) encode(v models.ScalarValue) (any, error) {
	return encodeValue(v, false)
}

func (standardSQL) intWidth(string) int { return 8 }

func (standardSQL) decodeID(_ string, src any) (models.RecordID, error) {
	return decodeTextID(src)
}

func (standardSQL) deferConstraints() []string { return nil }

func (standardSQL) restoreConstraints() []string { return nil }

func (standardSQL) SupportsReturning() bool { return false }

type sqliteDialect struct {
	standardSQL
}

// Table SQLite 的表都在连接的主库里, 不需要前缀
func (d sqliteDialect) Table(_, table string) string {
	return d.Quote(table)
}

func (sqliteDialect) Name() string { return "sqlite" }

func (sqliteDialect) Quote(name string) string { return quote(name, '`') }

// LimitOffset SQLite 的 OFFSET 必须跟在 LIMIT 后面, -1 代表不限制
func (d sqliteDialect) LimitOffset(limit, offset int) string {
	if limit == 0 && offset > 0 {
		return " LIMIT -1 OFFSET " + strconv.Itoa(offset)
	}
	return d.standardSQL.LimitOffset(limit, offset)
}

// encode SQLite 没有时间类型, 以不带时区的文本存储
func (sqliteDialect) encode(v models.ScalarValue) (any, error) {
	return encodeValue(v, true)
}

func (sqliteDialect) deferConstraints() []string {
	return []string{"PRAGMA defer_foreign_keys = ON;"}
}

type postgresDialect struct {
	standardSQL
}

func (d postgresDialect) Table(schema, table string) string {
	return qualify(d, schema, table)
}

func (postgresDialect) Name() string { return "postgresql" }

func (postgresDialect) Quote(name string) string { return quote(name, '"') }

func (postgresDialect) Placeholder(n int) string { return "$" + strconv.Itoa(n) }

func (postgresDialect) intWidth(typeName string) int {
	switch strings.ToUpper(typeName) {
	case "INT2":
		return 2
	case "INT4":
		return 4
	default:
		return 8
	}
}

// idWireTypes 标识符解码器接受的列类型
var idWireTypes = map[string]struct{}{
	"INT2": {}, "INT4": {}, "INT8": {},
	"UUID": {},
	"TEXT": {}, "VARCHAR": {}, "BPCHAR": {}, "CHAR": {}, "NAME": {}, "CITEXT": {},
}

// AcceptsID 标识符列的类型是否能被解码
func (postgresDialect) AcceptsID(typeName string) bool {
	_, ok := idWireTypes[strings.ToUpper(typeName)]
	return ok
}

// decodeID 根据列的类型决定标识符的变体, 而不是猜测值的内容
func (d postgresDialect) decodeID(typeName string, src any) (models.RecordID, error) {
	if !d.AcceptsID(typeName) {
		return nil, errs.NewErrUnsupportedIDType(typeName)
	}
	switch strings.ToUpper(typeName) {
	case "INT2", "INT4", "INT8":
		i, err := toInt64(src)
		if err != nil {
			return nil, err
		}
		return intID(i)
	case "UUID":
		u, err := toUUID(src)
		if err != nil {
			return nil, err
		}
		return models.UUIDID(u), nil
	default:
		switch v := src.(type) {
		case string:
			return models.StringID(v), nil
		case []byte:
			return models.StringID(v), nil
		default:
			return nil, errors.Newf("connector: 无法把 %T 解码为字符串标识符", src)
		}
	}
}

func (postgresDialect) deferConstraints() []string {
	return []string{"SET CONSTRAINTS ALL DEFERRED;"}
}

func (postgresDialect) SupportsReturning() bool { return true }

type mysqlDialect struct {
	standardSQL
}

func (d mysqlDialect) Table(schema, table string) string {
	return qualify(d, schema, table)
}

func (mysqlDialect) Name() string { return "mysql" }

func (mysqlDialect) Quote(name string) string { return quote(name, '`') }

// LimitOffset MySQL 没有 "不限制" 的写法, 官方推荐使用最大的无符号整数
func (d mysqlDialect) LimitOffset(limit, offset int) string {
	if limit == 0 && offset > 0 {
		return " LIMIT 18446744073709551615 OFFSET " + strconv.Itoa(offset)
	}
	return d.standardSQL.LimitOffset(limit, offset)
}

// intWidth 无符号的类型需要更宽的整数才能装下
func (mysqlDialect) intWidth(typeName string) int {
	switch strings.ToUpper(typeName) {
	case "TINYINT", "SMALLINT", "YEAR", "UNSIGNED TINYINT":
		return 2
	case "MEDIUMINT", "INT", "INTEGER", "UNSIGNED SMALLINT", "UNSIGNED MEDIUMINT":
		return 4
	default:
		return 8
	}
}

func (mysqlDialect) deferConstraints() []string {
	return []string{"SET FOREIGN_KEY_CHECKS = 0;"}
}

func (mysqlDialect) restoreConstraints() []string {
	return []string{"SET FOREIGN_KEY_CHECKS = 1;"}
}

func qualify(d Dialect, schema, table string) string {
	if schema == "" {
		return d.Quote(table)
	}
	return d.Quote(schema) + "." + d.Quote(table)
}

func quote(name string, q byte) string {
	var sb strings.Builder
	sb.Grow(len(name) + 2)
	sb.WriteByte(q)
	for i := 0; i < len(name); i++ {
		if name[i] == q {
			sb.WriteByte(q)
		}
		sb.WriteByte(name[i])
	}
	sb.WriteByte(q)
	return sb.String()
}

func encodeValue(v models.ScalarValue, timeAsText bool) (any, error) {
	switch val := v.(type) {
	case nil, models.Null:
		return nil, nil
	case models.String:
		return string(val), nil
	case models.Float:
		return float64(val), nil
	case models.Boolean:
		return bool(val), nil
	case models.DateTime:
		t := val.Time().UTC()
		if timeAsText {
			return t.Format(naiveTimeLayout), nil
		}
		return t, nil
	case models.Enum:
		return string(val), nil
	case models.JSON:
		bs, err := json.Marshal(val.Val)
		if err != nil {
			return nil, errors.Wrap(err, "connector: 无法编码 JSON 参数")
		}
		return string(bs), nil
	case models.Int:
		return int64(val), nil
	case models.Relation:
		return uint64ToInt64(uint64(val), "Relation")
	case models.UUID:
		return val.String(), nil
	case models.StringID:
		return string(val), nil
	case models.IntID:
		return uint64ToInt64(uint64(val), "IntID")
	case models.UUIDID:
		return val.String(), nil
	case models.List:
		return nil, errs.NewErrUnsupportedOperation("connector: 列表值不能绑定为单个参数")
	default:
		return nil, errs.NewErrUnsupportedOperation("connector: 不支持的参数类型 %T", v)
	}
}

func uint64ToInt64(v uint64, from string) (int64, error) {
	if v > math.MaxInt64 {
		return 0, errs.NewErrConversionFailure(from, "int64")
	}
	return int64(v), nil
}

// decodeTextID 面向文本的存储, 先尝试解析为 UUID, 失败了就是普通字符串
func decodeTextID(src any) (models.RecordID, error) {
	switch v := src.(type) {
	case int64:
		return intID(v)
	case string:
		return parseTextID(v), nil
	case []byte:
		if len(v) == 16 {
			if u, err := uuid.FromBytes(v); err == nil {
				return models.UUIDID(u), nil
			}
		}
		return parseTextID(string(v)), nil
	default:
		return nil, errors.Newf("connector: 无法把 %T 解码为标识符", src)
	}
}

func parseTextID(s string) models.RecordID {
	if u, err := uuid.Parse(s); err == nil {
		return models.UUIDID(u)
	}
	return models.StringID(s)
}

func intID(i int64) (models.RecordID, error) {
	if i < 0 {
		return nil, errors.Newf("connector: 整数标识符不能为负数 %d", i)
	}
	return models.IntID(i), nil
}

func toInt64(src any) (int64, error) {
	switch v := src.(type) {
	case int64:
		return v, nil
	case int32:
		return int64(v), nil
	case int16:
		return int64(v), nil
	case []byte:
		return strconv.ParseInt(string(v), 10, 64)
	case string:
		return strconv.ParseInt(v, 10, 64)
	default:
		return 0, errors.Newf("connector: 无法把 %T 解码为整数", src)
	}
}

func toUUID(src any) (uuid.UUID, error) {
	switch v := src.(type) {
	case string:
		return uuid.Parse(v)
	case [16]byte:
		return uuid.UUID(v), nil
	case []byte:
		if len(v) == 16 {
			return uuid.FromBytes(v)
		}
		return uuid.ParseBytes(v)
	default:
		return uuid.Nil, errors.Newf("connector: 无法把 %T 解码为 UUID", src)
	}
}
