package sqlbuilder

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Hebilicious/prisma/connector"
	"github.com/Hebilicious/prisma/internal/errs"
	"github.com/Hebilicious/prisma/models"
)

func Test_Selector_Build(t *testing.T) {
	cases := []struct {
		name    string
		builder connector.QueryBuilder

		wantQuery *connector.Query
		wantErr   error
	}{
		{
			name:    "select all",
			builder: NewSelector(connector.DialectSQLite).From("User"),
			wantQuery: &connector.Query{
				SQL: "SELECT * FROM `User`;",
			},
		},
		{
			name:    "select columns",
			builder: NewSelector(connector.DialectSQLite).Select("id", "name").From("User"),
			wantQuery: &connector.Query{
				SQL: "SELECT `id`,`name` FROM `User`;",
			},
		},
		{
			name:    "empty table",
			builder: NewSelector(connector.DialectSQLite),
			wantErr: errs.ErrEmptyTableName,
		},
		{
			name:    "where eq",
			builder: NewSelector(connector.DialectMySQL).From("User").Where(C("age").Eq(models.Int(18))),
			wantQuery: &connector.Query{
				SQL:  "SELECT * FROM `User` WHERE `age` = ?;",
				Args: []models.ScalarValue{models.Int(18)},
			},
		},
		{
			name: "where multiple",
			builder: NewSelector(connector.DialectMySQL).From("User").
				Where(C("age").Gt(models.Int(18)), C("age").Lt(models.Int(30))),
			wantQuery: &connector.Query{
				SQL:  "SELECT * FROM `User` WHERE (`age` > ?) AND (`age` < ?);",
				Args: []models.ScalarValue{models.Int(18), models.Int(30)},
			},
		},
		{
			name:    "where not",
			builder: NewSelector(connector.DialectSQLite).From("User").Where(Not(C("age").Eq(models.Int(18)))),
			wantQuery: &connector.Query{
				SQL:  "SELECT * FROM `User` WHERE NOT (`age` = ?);",
				Args: []models.ScalarValue{models.Int(18)},
			},
		},
		{
			name: "where or",
			builder: NewSelector(connector.DialectSQLite).From("User").
				Where(C("age").Eq(models.Int(18)).Or(C("name").NotEq(models.String("Tom")))),
			wantQuery: &connector.Query{
				SQL:  "SELECT * FROM `User` WHERE (`age` = ?) OR (`name` != ?);",
				Args: []models.ScalarValue{models.Int(18), models.String("Tom")},
			},
		},
		{
			name: "postgres placeholders",
			builder: NewSelector(connector.DialectPostgreSQL).Schema("blog").From("User").
				Where(C("id").In(models.IntID(1), models.IntID(2)), C("name").IsNotNull()),
			wantQuery: &connector.Query{
				SQL:  `SELECT * FROM "blog"."User" WHERE ("id" IN ($1,$2)) AND ("name" IS NOT NULL);`,
				Args: []models.ScalarValue{models.IntID(1), models.IntID(2)},
			},
		},
		{
			name:    "empty in",
			builder: NewSelector(connector.DialectSQLite).From("User").Where(C("id").In()),
			wantErr: errs.ErrEmptyInValues,
		},
		{
			name:    "is null",
			builder: NewSelector(connector.DialectSQLite).From("User").Where(C("name").IsNull()),
			wantQuery: &connector.Query{
				SQL: "SELECT * FROM `User` WHERE `name` IS NULL;",
			},
		},
		{
			name: "raw expression",
			builder: NewSelector(connector.DialectPostgreSQL).From("User").
				Where(Raw(`"age" < ? AND "age" > ?`, models.Int(30), models.Int(18)).AsPredicate()),
			wantQuery: &connector.Query{
				SQL:  `SELECT * FROM "User" WHERE ("age" < $1 AND "age" > $2);`,
				Args: []models.ScalarValue{models.Int(30), models.Int(18)},
			},
		},
		{
			name: "order limit offset",
			builder: NewSelector(connector.DialectSQLite).Select("id").From("User").
				OrderBy(Desc("id"), Asc("name")).Limit(5).Offset(2),
			wantQuery: &connector.Query{
				SQL: "SELECT `id` FROM `User` ORDER BY `id` DESC,`name` ASC LIMIT 5 OFFSET 2;",
			},
		},
		{
			name:    "offset only",
			builder: NewSelector(connector.DialectSQLite).From("User").Offset(2),
			wantQuery: &connector.Query{
				SQL: "SELECT * FROM `User` LIMIT -1 OFFSET 2;",
			},
		},
		{
			name:    "qualified column",
			builder: NewSelector(connector.DialectSQLite).From("User").Where(C("id").Of("User").Eq(models.IntID(1))),
			wantQuery: &connector.Query{
				SQL:  "SELECT * FROM `User` WHERE `User`.`id` = ?;",
				Args: []models.ScalarValue{models.IntID(1)},
			},
		},
		{
			name:    "nil argument is null",
			builder: NewSelector(connector.DialectSQLite).From("User").Where(C("name").Eq(nil)),
			wantQuery: &connector.Query{
				SQL:  "SELECT * FROM `User` WHERE `name` = ?;",
				Args: []models.ScalarValue{models.Null{}},
			},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			q, err := c.builder.Build()
			assert.Equal(t, c.wantErr, err)
			if err != nil {
				return
			}
			assert.Equal(t, c.wantQuery, q)
		})
	}
}

func Test_Selector_BuildTwice(t *testing.T) {
	s := NewSelector(connector.DialectPostgreSQL).From("User").Where(C("id").Eq(models.IntID(1)))
	first, err := s.Build()
	assert.NoError(t, err)
	second, err := s.Build()
	assert.NoError(t, err)
	assert.Equal(t, first, second)
}
