package cli

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/Hebilicious/prisma/models"
)

const (
	FormatText = "text"
	FormatJSON = "json"
)

// writeNodes text 格式每行的值用 tab 分隔, json 格式每行是一个数组
func writeNodes(w io.Writer, format string, nodes []models.Node) error {
	for _, node := range nodes {
		var line string
		switch format {
		case FormatText:
			vals := make([]string, 0, len(node.Values))
			for _, v := range node.Values {
				vals = append(vals, v.String())
			}
			line = strings.Join(vals, "\t")
		case FormatJSON:
			var buf bytes.Buffer
			buf.WriteByte('[')
			for i, v := range node.Values {
				if i > 0 {
					buf.WriteByte(',')
				}
				data, err := models.MarshalValue(v)
				if err != nil {
					return err
				}
				buf.Write(data)
			}
			buf.WriteByte(']')
			line = buf.String()
		default:
			return newErrUnknownFormat(format)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return errors.Wrap(err, "cli: 无法输出结果")
		}
	}
	return nil
}

func parseTypes(names []string) ([]models.TypeIdentifier, error) {
	idents := make([]models.TypeIdentifier, 0, len(names))
	for _, name := range names {
		t, err := models.ParseTypeIdentifier(strings.TrimSpace(name))
		if err != nil {
			return nil, err
		}
		idents = append(idents, t)
	}
	return idents, nil
}

// parseArgs 参数使用带标签的 JSON, 比如 {"Int":5} 或者 "Null"
func parseArgs(raw []string) ([]models.ScalarValue, error) {
	args := make([]models.ScalarValue, 0, len(raw))
	for _, r := range raw {
		v, err := models.UnmarshalValue([]byte(r))
		if err != nil {
			return nil, errors.Wrapf(err, "cli: 无法解析参数 %s", r)
		}
		args = append(args, v)
	}
	return args, nil
}
