package models

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// TypeIdentifier 描述一列期望被解码成什么类型
type TypeIdentifier uint8

const (
	TypeString TypeIdentifier = iota + 1
	TypeFloat
	TypeBoolean
	TypeEnum
	TypeJSON
	TypeDateTime
	TypeID
	TypeUUID
	TypeInt
	TypeRelation
)

var typeIdentifierNames = map[TypeIdentifier]string{
	TypeString:   "String",
	TypeFloat:    "Float",
	TypeBoolean:  "Boolean",
	TypeEnum:     "Enum",
	TypeJSON:     "Json",
	TypeDateTime: "DateTime",
	TypeID:       "GraphQLID",
	TypeUUID:     "UUID",
	TypeInt:      "Int",
	TypeRelation: "Relation",
}

func (t TypeIdentifier) String() string {
	if name, ok := typeIdentifierNames[t]; ok {
		return name
	}
	return "Unknown"
}

// ParseTypeIdentifier 大小写不敏感, 同时接受 ID 作为 GraphQLID 的别名
func ParseTypeIdentifier(s string) (TypeIdentifier, error) {
	if strings.EqualFold(s, "id") {
		return TypeID, nil
	}
	for t, name := range typeIdentifierNames {
		if strings.EqualFold(s, name) {
			return t, nil
		}
	}
	return 0, errors.Newf("models: 未知的类型 %s", s)
}
