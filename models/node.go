package models

// Node 是解码后的一行
type Node struct {
	Values []ScalarValue
}

type SingleNode struct {
	Node       Node
	FieldNames []string
}

// ManyNodes 的 FieldNames 用于在每一行中按字段名定位
type ManyNodes struct {
	Nodes      []Node
	FieldNames []string
}

// Get 按字段名取值
func (n SingleNode) Get(field string) (ScalarValue, bool) {
	return n.Node.get(n.FieldNames, field)
}

func (n Node) get(names []string, field string) (ScalarValue, bool) {
	for i, name := range names {
		if name == field {
			if i < len(n.Values) {
				return n.Values[i], true
			}
			return nil, false
		}
	}
	return nil, false
}

func (m *ManyNodes) Len() int {
	return len(m.Nodes)
}

func (m *ManyNodes) Reverse() {
	for i, j := 0, len(m.Nodes)-1; i < j; i, j = i+1, j-1 {
		m.Nodes[i], m.Nodes[j] = m.Nodes[j], m.Nodes[i]
	}
}

// DropLeft 从头部删除 n 行
func (m *ManyNodes) DropLeft(n int) {
	if n >= len(m.Nodes) {
		m.Nodes = m.Nodes[:0]
		return
	}
	m.Nodes = m.Nodes[n:]
}

// DropRight 从尾部删除 n 行
func (m *ManyNodes) DropRight(n int) {
	if n >= len(m.Nodes) {
		m.Nodes = m.Nodes[:0]
		return
	}
	m.Nodes = m.Nodes[:len(m.Nodes)-n]
}

// Position 返回字段在行中的位置
func (m *ManyNodes) Position(field string) (int, bool) {
	for i, name := range m.FieldNames {
		if name == field {
			return i, true
		}
	}
	return -1, false
}
