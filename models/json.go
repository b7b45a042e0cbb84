package models

import (
	"bytes"
	"encoding/json"
	"math"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
)

// 外部序列化格式: 变体名作为唯一的 key, 例如
//
//	{"Int":5}  "Null"  {"List":null}  {"GraphqlId":{"Uuid":"..."}}
const nullTag = "Null"

// MarshalValue 按照外部序列化格式编码, 对所有变体都是无损的
func MarshalValue(v ScalarValue) ([]byte, error) {
	tagged, err := toTagged(v)
	if err != nil {
		return nil, err
	}
	return json.Marshal(tagged)
}

func toTagged(v ScalarValue) (any, error) {
	switch val := v.(type) {
	case nil, Null:
		return nullTag, nil
	case String:
		return map[string]any{KindString.String(): string(val)}, nil
	case Float:
		f := float64(val)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return map[string]any{KindFloat.String(): nonFiniteName(f)}, nil
		}
		return map[string]any{KindFloat.String(): f}, nil
	case Boolean:
		return map[string]any{KindBoolean.String(): bool(val)}, nil
	case DateTime:
		return map[string]any{KindDateTime.String(): val.Time().Format(time.RFC3339Nano)}, nil
	case Enum:
		return map[string]any{KindEnum.String(): string(val)}, nil
	case JSON:
		return map[string]any{KindJSON.String(): val.Val}, nil
	case Int:
		return map[string]any{KindInt.String(): int64(val)}, nil
	case Relation:
		return map[string]any{KindRelation.String(): uint64(val)}, nil
	case UUID:
		return map[string]any{KindUUID.String(): val.String()}, nil
	case StringID:
		return map[string]any{KindRecordID.String(): map[string]any{"String": string(val)}}, nil
	case IntID:
		return map[string]any{KindRecordID.String(): map[string]any{"Int": uint64(val)}}, nil
	case UUIDID:
		return map[string]any{KindRecordID.String(): map[string]any{"Uuid": val.String()}}, nil
	case List:
		if !val.Valid {
			return map[string]any{KindList.String(): nil}, nil
		}
		elems := make([]any, 0, len(val.Values))
		for _, elem := range val.Values {
			t, err := toTagged(elem)
			if err != nil {
				return nil, err
			}
			elems = append(elems, t)
		}
		return map[string]any{KindList.String(): elems}, nil
	default:
		return nil, errors.Newf("models: 无法序列化 %T", v)
	}
}

func UnmarshalValue(data []byte) (ScalarValue, error) {
	var tag string
	if err := json.Unmarshal(data, &tag); err == nil {
		if tag == nullTag {
			return Null{}, nil
		}
		return nil, errors.Newf("models: 未知的值 %q", tag)
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, errors.Wrap(err, "models: 非法的序列化值")
	}
	if len(envelope) != 1 {
		return nil, errors.Newf("models: 序列化值必须只有一个变体, 实际 %d 个", len(envelope))
	}
	for name, raw := range envelope {
		return fromTagged(name, raw)
	}
	return nil, nil
}

func fromTagged(name string, raw json.RawMessage) (ScalarValue, error) {
	var err error
	switch name {
	case "String":
		var s string
		err = json.Unmarshal(raw, &s)
		return String(s), err
	case "Float":
		return unmarshalFloat(raw)
	case "Boolean":
		var b bool
		err = json.Unmarshal(raw, &b)
		return Boolean(b), err
	case "DateTime":
		var s string
		if err = json.Unmarshal(raw, &s); err != nil {
			return nil, err
		}
		t, err := time.Parse(time.RFC3339Nano, s)
		if err != nil {
			return nil, err
		}
		return NewDateTime(t), nil
	case "Enum":
		var s string
		err = json.Unmarshal(raw, &s)
		return Enum(s), err
	case "Json":
		val, err := DecodeJSON(raw)
		return JSON{Val: val}, err
	case "Int":
		var i int64
		err = json.Unmarshal(raw, &i)
		return Int(i), err
	case "Relation":
		var r uint64
		err = json.Unmarshal(raw, &r)
		return Relation(r), err
	case "Uuid":
		u, err := unmarshalUUID(raw)
		return UUID(u), err
	case "GraphqlId":
		return unmarshalRecordID(raw)
	case "List":
		var elems []json.RawMessage
		if err = json.Unmarshal(raw, &elems); err != nil {
			return nil, err
		}
		if elems == nil {
			return List{}, nil
		}
		vals := make([]ScalarValue, 0, len(elems))
		for _, elem := range elems {
			v, err := UnmarshalValue(elem)
			if err != nil {
				return nil, err
			}
			vals = append(vals, v)
		}
		return List{Values: vals, Valid: true}, nil
	default:
		return nil, errors.Newf("models: 未知的变体 %s", name)
	}
}

// 非有限的浮点数在 JSON 中没有对应的数字, 以字符串表示
func nonFiniteName(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case f > 0:
		return "+Inf"
	default:
		return "-Inf"
	}
}

func unmarshalFloat(raw json.RawMessage) (ScalarValue, error) {
	var name string
	if err := json.Unmarshal(raw, &name); err == nil {
		switch name {
		case "NaN":
			return Float(math.NaN()), nil
		case "+Inf":
			return Float(math.Inf(1)), nil
		case "-Inf":
			return Float(math.Inf(-1)), nil
		default:
			return nil, errors.Newf("models: 非法的浮点数 %q", name)
		}
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, err
	}
	return Float(f), nil
}

// DecodeJSON 解码 JSON 文档, 数字保留为 json.Number, 超过 2^53 的整数不会丢失精度
func DecodeJSON(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var val any
	if err := dec.Decode(&val); err != nil {
		return nil, errors.Wrap(err, "models: 非法的 JSON")
	}
	if dec.More() {
		return nil, errors.New("models: JSON 文档之后还有多余的内容")
	}
	return val, nil
}

func unmarshalRecordID(raw json.RawMessage) (RecordID, error) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, err
	}
	if len(envelope) != 1 {
		return nil, errors.Newf("models: 标识符必须只有一个变体, 实际 %d 个", len(envelope))
	}
	for name, val := range envelope {
		switch name {
		case "String":
			var s string
			err := json.Unmarshal(val, &s)
			return StringID(s), err
		case "Int":
			var i uint64
			err := json.Unmarshal(val, &i)
			return IntID(i), err
		case "Uuid":
			u, err := unmarshalUUID(val)
			return UUIDID(u), err
		default:
			return nil, errors.Newf("models: 未知的标识符变体 %s", name)
		}
	}
	return nil, nil
}

func unmarshalUUID(raw json.RawMessage) (uuid.UUID, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return uuid.Nil, err
	}
	return uuid.Parse(s)
}
