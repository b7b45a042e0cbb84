package models

// IDFieldName 约定的主键字段名
const IDFieldName = "id"

type ScalarField struct {
	Name string
	// DBName 为空时使用 Name
	DBName         string
	TypeIdentifier TypeIdentifier
	// IsList 的字段存储在单独的表中, 不在模型表的列里
	IsList bool
}

func (f *ScalarField) ColumnName() string {
	if f.DBName != "" {
		return f.DBName
	}
	return f.Name
}

// RelationField 一对多的关联, ForeignKey 是关联模型上指向本模型 id 的列
type RelationField struct {
	Name       string
	Related    *Model
	ForeignKey string
}

type Model struct {
	Name string
	// TableName 为空时使用 Name
	TableName string
	Fields    []*ScalarField
	Relations []*RelationField
}

func (m *Model) Table() string {
	if m.TableName != "" {
		return m.TableName
	}
	return m.Name
}

func (m *Model) FindField(name string) (*ScalarField, bool) {
	for _, f := range m.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return nil, false
}

// ScalarListTable 列表字段的存储表, 列为 nodeId, position, value
func (m *Model) ScalarListTable(f *ScalarField) string {
	return m.Name + "_" + f.Name
}

type Schema struct {
	Name   string
	Models []*Model
}

// TableNames 返回所有模型表以及列表字段的表
func (s *Schema) TableNames() []string {
	seen := make(map[string]struct{}, len(s.Models))
	names := make([]string, 0, len(s.Models))
	add := func(name string) {
		if _, ok := seen[name]; ok {
			return
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	for _, m := range s.Models {
		add(m.Table())
		for _, f := range m.Fields {
			if f.IsList {
				add(m.ScalarListTable(f))
			}
		}
	}
	return names
}

type SelectedScalarField struct {
	Field *ScalarField
	// Implicit 代表这个字段不是调用方要的, 而是引擎为了解析关联关系加进来的
	Implicit bool
}

type SelectedFields struct {
	Scalars []SelectedScalarField
}

func NewSelectedFields(fields ...*ScalarField) SelectedFields {
	scalars := make([]SelectedScalarField, 0, len(fields))
	for _, f := range fields {
		scalars = append(scalars, SelectedScalarField{Field: f})
	}
	return SelectedFields{Scalars: scalars}
}

func (s SelectedFields) GetImplicitFields() []SelectedScalarField {
	var res []SelectedScalarField
	for _, sf := range s.Scalars {
		if sf.Implicit {
			res = append(res, sf)
		}
	}
	return res
}

func (s SelectedFields) Contains(name string) bool {
	for _, sf := range s.Scalars {
		if sf.Field.Name == name {
			return true
		}
	}
	return false
}

// WithImplicit 字段已经被选中时原样返回, 否则返回追加了隐式字段的副本
func (s SelectedFields) WithImplicit(f *ScalarField) SelectedFields {
	if s.Contains(f.Name) {
		return s
	}
	scalars := make([]SelectedScalarField, 0, len(s.Scalars)+1)
	scalars = append(scalars, s.Scalars...)
	scalars = append(scalars, SelectedScalarField{Field: f, Implicit: true})
	return SelectedFields{Scalars: scalars}
}

// Columns 只包含存储在模型表里的字段, 顺序和选择的顺序一致
func (s SelectedFields) Columns() []*ScalarField {
	res := make([]*ScalarField, 0, len(s.Scalars))
	for _, sf := range s.Scalars {
		if !sf.Field.IsList {
			res = append(res, sf.Field)
		}
	}
	return res
}

func (s SelectedFields) ListFields() []*ScalarField {
	var res []*ScalarField
	for _, sf := range s.Scalars {
		if sf.Field.IsList {
			res = append(res, sf.Field)
		}
	}
	return res
}

func (s SelectedFields) Names() []string {
	cols := s.Columns()
	names := make([]string, 0, len(cols))
	for _, f := range cols {
		names = append(names, f.Name)
	}
	return names
}

func (s SelectedFields) TypeIdentifiers() []TypeIdentifier {
	cols := s.Columns()
	idents := make([]TypeIdentifier, 0, len(cols))
	for _, f := range cols {
		idents = append(idents, f.TypeIdentifier)
	}
	return idents
}
