// Package models 是与存储无关的值模型
//
// ScalarValue 是一个标记接口, 具体的值类型就是它的各个变体.
// 所有的值在构造之后都是不可变的, 可以在 goroutine 之间随意传递.
package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Kind uint8

const (
	KindString Kind = iota + 1
	KindFloat
	KindBoolean
	KindDateTime
	KindEnum
	KindJSON
	KindInt
	KindRelation
	KindNull
	KindUUID
	KindRecordID
	KindList
)

var kindNames = map[Kind]string{
	KindString:   "String",
	KindFloat:    "Float",
	KindBoolean:  "Boolean",
	KindDateTime: "DateTime",
	KindEnum:     "Enum",
	KindJSON:     "Json",
	KindInt:      "Int",
	KindRelation: "Relation",
	KindNull:     "Null",
	KindUUID:     "Uuid",
	KindRecordID: "GraphqlId",
	KindList:     "List",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// ScalarValue 代表一个查询值, 同一时刻只有一个变体生效
type ScalarValue interface {
	Kind() Kind
	String() string
	scalarValue()
}

type String string

type Float float64

type Boolean bool

// DateTime 总是 UTC
type DateTime time.Time

type Enum string

// JSON 是任意的 JSON 树, Val 是 encoding/json 解码出来的结构
type JSON struct {
	Val any
}

type Int int64

// Relation 是关联关系的链接整数
type Relation uint64

type Null struct{}

type UUID uuid.UUID

// List 可空列表
// Valid 为 false 代表没有列表值, 和空列表不是一回事
type List struct {
	Values []ScalarValue
	Valid  bool
}

func (String) Kind() Kind   { return KindString }
func (Float) Kind() Kind    { return KindFloat }
func (Boolean) Kind() Kind  { return KindBoolean }
func (DateTime) Kind() Kind { return KindDateTime }
func (Enum) Kind() Kind     { return KindEnum }
func (JSON) Kind() Kind     { return KindJSON }
func (Int) Kind() Kind      { return KindInt }
func (Relation) Kind() Kind { return KindRelation }
func (Null) Kind() Kind     { return KindNull }
func (UUID) Kind() Kind     { return KindUUID }
func (List) Kind() Kind     { return KindList }

func (String) scalarValue()   {}
func (Float) scalarValue()    {}
func (Boolean) scalarValue()  {}
func (DateTime) scalarValue() {}
func (Enum) scalarValue()     {}
func (JSON) scalarValue()     {}
func (Int) scalarValue()      {}
func (Relation) scalarValue() {}
func (Null) scalarValue()     {}
func (UUID) scalarValue()     {}
func (List) scalarValue()     {}

func (s String) String() string { return string(s) }

func (f Float) String() string { return strconv.FormatFloat(float64(f), 'g', -1, 64) }

func (b Boolean) String() string { return strconv.FormatBool(bool(b)) }

func (d DateTime) String() string { return d.Time().Format(time.RFC3339Nano) }

func (e Enum) String() string { return string(e) }

func (j JSON) String() string {
	bs, err := json.Marshal(j.Val)
	if err != nil {
		return fmt.Sprintf("%v", j.Val)
	}
	return string(bs)
}

func (i Int) String() string { return strconv.FormatInt(int64(i), 10) }

func (r Relation) String() string { return strconv.FormatUint(uint64(r), 10) }

func (Null) String() string { return "null" }

func (u UUID) String() string { return uuid.UUID(u).String() }

func (l List) String() string {
	if !l.Valid {
		return "None"
	}
	elems := make([]string, 0, len(l.Values))
	for _, v := range l.Values {
		elems = append(elems, v.String())
	}
	return "[" + strings.Join(elems, ", ") + "]"
}

func (d DateTime) Time() time.Time { return time.Time(d) }

// NewDateTime 统一转换为 UTC
func NewDateTime(t time.Time) DateTime {
	return DateTime(t.UTC())
}

func NewList(vals ...ScalarValue) List {
	if vals == nil {
		vals = []ScalarValue{}
	}
	return List{Values: vals, Valid: true}
}

func IsNull(v ScalarValue) bool {
	if v == nil {
		return true
	}
	return v.Kind() == KindNull
}
