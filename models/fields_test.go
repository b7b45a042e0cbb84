package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testUserModel() *Model {
	return &Model{
		Name:      "User",
		TableName: "users",
		Fields: []*ScalarField{
			{Name: "id", TypeIdentifier: TypeID},
			{Name: "name", TypeIdentifier: TypeString},
			{Name: "age", DBName: "user_age", TypeIdentifier: TypeInt},
			{Name: "tags", TypeIdentifier: TypeString, IsList: true},
		},
	}
}

func Test_SelectedFields(t *testing.T) {
	m := testUserModel()
	id, _ := m.FindField("id")
	name, _ := m.FindField("name")
	tags, _ := m.FindField("tags")

	sel := NewSelectedFields(name, tags)
	assert.Empty(t, sel.GetImplicitFields())

	withID := sel.WithImplicit(id)
	assert.Equal(t, []SelectedScalarField{{Field: id, Implicit: true}}, withID.GetImplicitFields())
	assert.Equal(t, []string{"name", "id"}, withID.Names())
	assert.Equal(t, []TypeIdentifier{TypeString, TypeID}, withID.TypeIdentifiers())
	assert.Equal(t, []*ScalarField{tags}, withID.ListFields())
	// 原值不受影响
	assert.Len(t, sel.Scalars, 2)

	// 已经显式选择的字段不会变成隐式字段
	explicit := NewSelectedFields(id, name).WithImplicit(id)
	assert.Empty(t, explicit.GetImplicitFields())
}

func Test_Schema_TableNames(t *testing.T) {
	post := &Model{Name: "Post", Fields: []*ScalarField{{Name: "id", TypeIdentifier: TypeID}}}
	s := &Schema{Name: "blog", Models: []*Model{testUserModel(), post}}
	assert.Equal(t, []string{"users", "User_tags", "Post"}, s.TableNames())

	age, ok := testUserModel().FindField("age")
	assert.True(t, ok)
	assert.Equal(t, "user_age", age.ColumnName())
}
