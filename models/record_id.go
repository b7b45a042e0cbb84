package models

import (
	"strconv"

	"github.com/google/uuid"
)

// RecordID 是记录的主键, 三种编码之间不会隐式转换
type RecordID interface {
	ScalarValue
	recordID()
}

type StringID string

type IntID uint64

type UUIDID uuid.UUID

func (StringID) Kind() Kind { return KindRecordID }
func (IntID) Kind() Kind    { return KindRecordID }
func (UUIDID) Kind() Kind   { return KindRecordID }

func (StringID) scalarValue() {}
func (IntID) scalarValue()    {}
func (UUIDID) scalarValue()   {}

func (StringID) recordID() {}
func (IntID) recordID()    {}
func (UUIDID) recordID()   {}

func (s StringID) String() string { return string(s) }

func (i IntID) String() string { return strconv.FormatUint(uint64(i), 10) }

func (u UUIDID) String() string { return uuid.UUID(u).String() }
