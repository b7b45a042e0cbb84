package core

import (
	"context"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Hebilicious/prisma/connector"
	"github.com/Hebilicious/prisma/connector/mocks"
	"github.com/Hebilicious/prisma/connector/sqlbuilder"
	"github.com/Hebilicious/prisma/internal/errs"
	"github.com/Hebilicious/prisma/models"
)

type blogSchema struct {
	user  *models.Model
	post  *models.Model
	posts *models.RelationField
}

func newBlogSchema() blogSchema {
	user := &models.Model{
		Name: "User",
		Fields: []*models.ScalarField{
			{Name: "id", TypeIdentifier: models.TypeID},
			{Name: "name", TypeIdentifier: models.TypeString},
			{Name: "tags", TypeIdentifier: models.TypeString, IsList: true},
		},
	}
	post := &models.Model{
		Name: "Post",
		Fields: []*models.ScalarField{
			{Name: "id", TypeIdentifier: models.TypeID},
			{Name: "title", TypeIdentifier: models.TypeString},
			{Name: "author", DBName: "authorId", TypeIdentifier: models.TypeRelation},
		},
	}
	posts := &models.RelationField{Name: "posts", Related: post, ForeignKey: "authorId"}
	user.Relations = []*models.RelationField{posts}
	return blogSchema{user: user, post: post, posts: posts}
}

func (s blogSchema) field(m *models.Model, name string) *models.ScalarField {
	f, _ := m.FindField(name)
	return f
}

func openBlog(t *testing.T, name string) *connector.DB {
	ctx := context.Background()
	db, err := connector.OpenSQLite(ctx, "file:"+name+".db?cache=shared&mode=memory", 1)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close()
	})
	for _, stmt := range []string{
		`CREATE TABLE "User" ("id" INTEGER PRIMARY KEY, "name" TEXT);`,
		`CREATE TABLE "Post" ("id" INTEGER PRIMARY KEY, "title" TEXT, "authorId" INTEGER REFERENCES "User"("id"));`,
		`CREATE TABLE "User_tags" ("nodeId" INTEGER REFERENCES "User"("id"), "position" INTEGER, "value" TEXT);`,
		`INSERT INTO "User" VALUES (1, 'u1'), (2, 'u2'), (3, 'u3'), (4, 'u4'), (5, 'u5');`,
		`INSERT INTO "Post" VALUES (1, 'p1', 4), (2, 'p2', 5), (3, 'p3', 4), (4, 'p4', 1);`,
		`INSERT INTO "User_tags" VALUES (4, 2000, 'b'), (4, 1000, 'a'), (1, 1000, 'z');`,
	} {
		_, err = db.Write(ctx, connector.Update(connector.Raw(stmt)))
		require.NoError(t, err)
	}
	return db
}

func TestReadQueryExecutor_SQLite(t *testing.T) {
	s := newBlogSchema()
	query := ReadQuery{
		Name:     "users",
		Model:    s.user,
		Many:     true,
		Args:     connector.QueryArguments{Last: uint32Ptr(2)},
		Selected: models.NewSelectedFields(s.field(s.user, "name"), s.field(s.user, "tags")),
		Nested: []ReadQuery{
			{
				Name:     "posts",
				Relation: s.posts,
				Many:     true,
				Selected: models.NewSelectedFields(s.field(s.post, "title")),
			},
		},
	}

	db := openBlog(t, "test_executor")
	var trims []Trim
	e := NewReadQueryExecutor(db, ExecutorWithTrimHook(func(ctx context.Context, tr Trim) {
		trims = append(trims, tr)
	}), ExecutorWithConcurrency(1))

	testCases := []struct {
		name string
		run  func() ([]ReadQueryResult, error)
	}{
		{
			name: "pooled",
			run: func() ([]ReadQueryResult, error) {
				return e.Execute(context.Background(), []ReadQuery{query})
			},
		},
		{
			name: "transaction",
			run: func() ([]ReadQueryResult, error) {
				return e.ExecuteInTransaction(context.Background(), "read", []ReadQuery{query})
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			trims = nil
			res, err := tc.run()
			require.NoError(t, err)
			require.Len(t, res, 1)

			users, ok := res[0].(*ManyResult)
			require.True(t, ok)
			assert.Equal(t, []string{"name", "id"}, users.Fields)
			assert.Equal(t, []models.Node{
				{Values: []models.ScalarValue{models.String("u4"), models.IntID(4)}},
				{Values: []models.ScalarValue{models.String("u5"), models.IntID(5)}},
			}, users.Scalars.Nodes)
			assert.Equal(t, []models.SelectedScalarField{
				{Field: s.field(s.user, "id"), Implicit: true},
			}, users.GetImplicitFields())

			assert.Equal(t, []ListField{{
				Name: "tags",
				Values: []connector.ScalarListValues{
					{NodeID: models.IntID(4), Values: []models.ScalarValue{models.String("a"), models.String("b")}},
					{NodeID: models.IntID(5), Values: []models.ScalarValue{}},
				},
			}}, users.Lists)

			require.Len(t, users.Nested, 1)
			posts, ok := users.Nested[0].(*ManyResult)
			require.True(t, ok)
			assert.Equal(t, "posts", posts.ResultName())
			assert.Equal(t, []string{"title", "id", "author"}, posts.Fields)
			assert.Equal(t, []models.Node{
				{Values: []models.ScalarValue{models.String("p1"), models.IntID(1), models.Relation(4)}},
				{Values: []models.ScalarValue{models.String("p2"), models.IntID(2), models.Relation(5)}},
				{Values: []models.ScalarValue{models.String("p3"), models.IntID(3), models.Relation(4)}},
			}, posts.Scalars.Nodes)

			require.NotEmpty(t, trims)
			assert.Equal(t, Trim{Name: "users", Fetched: 3, Reversed: true, DroppedLeft: 1}, trims[0])
		})
	}
}

func TestReadQueryExecutor_Single(t *testing.T) {
	s := newBlogSchema()
	db := openBlog(t, "test_executor_single")
	e := NewReadQueryExecutor(db)

	res, err := e.Execute(context.Background(), []ReadQuery{
		{
			Name:     "user",
			Model:    s.user,
			Where:    []sqlbuilder.Predicate{sqlbuilder.C("name").Eq(models.String("u1"))},
			Selected: models.NewSelectedFields(s.field(s.user, "id"), s.field(s.user, "tags")),
		},
		{
			Name:     "nobody",
			Model:    s.user,
			Where:    []sqlbuilder.Predicate{sqlbuilder.C("name").Eq(models.String("u9"))},
			Selected: models.NewSelectedFields(s.field(s.user, "name")),
		},
	})
	require.NoError(t, err)
	require.Len(t, res, 2)

	user := res[0].(*SingleResult)
	id, ok := user.FindID()
	require.True(t, ok)
	assert.Equal(t, models.IntID(1), id)
	assert.Empty(t, user.GetImplicitFields())
	assert.Equal(t, []ListField{{
		Name: "tags",
		Values: []connector.ScalarListValues{
			{NodeID: models.IntID(1), Values: []models.ScalarValue{models.String("z")}},
		},
	}}, user.Lists)

	nobody := res[1].(*SingleResult)
	assert.Nil(t, nobody.Scalars)
	_, ok = nobody.FindID()
	assert.False(t, ok)
}

func TestReadQueryExecutor_Statements(t *testing.T) {
	s := newBlogSchema()
	name := s.field(s.user, "name")
	testCases := []struct {
		name    string
		dialect connector.Dialect
		schema  string
		args    connector.QueryArguments
		wantSQL string
	}{
		{
			name:    "last over fetches in reverse",
			dialect: connector.DialectSQLite,
			args:    connector.QueryArguments{Last: uint32Ptr(2)},
			wantSQL: "SELECT `name`,`id` FROM `User` ORDER BY `id` DESC LIMIT 3;",
		},
		{
			name:    "first after cursor",
			dialect: connector.DialectPostgreSQL,
			schema:  "blog",
			args:    connector.QueryArguments{First: uint32Ptr(2), After: models.IntID(7)},
			wantSQL: `SELECT "name","id" FROM "blog"."User" WHERE "id" > $1 ORDER BY "id" ASC LIMIT 3;`,
		},
		{
			name:    "before cursor and skip",
			dialect: connector.DialectMySQL,
			args:    connector.QueryArguments{Before: models.IntID(7), Skip: uint32Ptr(1)},
			wantSQL: "SELECT `name`,`id` FROM `User` WHERE `id` < ? ORDER BY `id` ASC LIMIT 18446744073709551615 OFFSET 1;",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			conn := mocks.NewMockConnector(ctrl)
			conn.EXPECT().Dialect().Return(tc.dialect).AnyTimes()
			conn.EXPECT().
				Filter(gomock.Any(), gomock.Any(), []models.TypeIdentifier{models.TypeString, models.TypeID}).
				DoAndReturn(func(ctx context.Context, qb connector.QueryBuilder, idents []models.TypeIdentifier) ([]models.Node, error) {
					q, err := qb.Build()
					require.NoError(t, err)
					assert.Equal(t, tc.wantSQL, q.SQL)
					return nil, nil
				})

			e := NewReadQueryExecutor(conn, ExecutorWithSchema(tc.schema))
			res, err := e.Execute(context.Background(), []ReadQuery{{
				Name:     "users",
				Model:    s.user,
				Many:     true,
				Args:     tc.args,
				Selected: models.NewSelectedFields(name),
			}})
			require.NoError(t, err)
			assert.Equal(t, 0, res[0].(*ManyResult).Scalars.Len())
		})
	}
}

func TestReadQueryExecutor_Errors(t *testing.T) {
	s := newBlogSchema()
	backendErr := errors.New("disk I/O error")
	testCases := []struct {
		name  string
		query ReadQuery
		mock  func(conn *mocks.MockConnector)

		wantErr error
	}{
		{
			name: "conflicting pagination",
			query: ReadQuery{
				Name:  "users",
				Model: s.user,
				Many:  true,
				Args:  connector.QueryArguments{First: uint32Ptr(1), Last: uint32Ptr(1)},
			},
			mock:    func(conn *mocks.MockConnector) {},
			wantErr: errs.ErrConflictingPagination,
		},
		{
			name: "filter failed",
			query: ReadQuery{
				Name:     "users",
				Model:    s.user,
				Many:     true,
				Selected: models.NewSelectedFields(s.field(s.user, "name")),
			},
			mock: func(conn *mocks.MockConnector) {
				conn.EXPECT().Filter(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, backendErr)
			},
			wantErr: backendErr,
		},
		{
			name: "null id blocks list loading",
			query: ReadQuery{
				Name:     "users",
				Model:    s.user,
				Many:     true,
				Selected: models.NewSelectedFields(s.field(s.user, "tags")),
			},
			mock: func(conn *mocks.MockConnector) {
				conn.EXPECT().Filter(gomock.Any(), gomock.Any(), []models.TypeIdentifier{models.TypeID}).
					Return([]models.Node{
						{Values: []models.ScalarValue{models.IntID(1)}},
						{Values: []models.ScalarValue{models.Null{}}},
					}, nil)
			},
			wantErr: errs.NewErrMissingIDs("users"),
		},
		{
			name: "unknown foreign key",
			query: ReadQuery{
				Name:  "users",
				Model: s.user,
				Many:  true,
				Nested: []ReadQuery{{
					Name:     "posts",
					Relation: &models.RelationField{Name: "posts", Related: s.post, ForeignKey: "ownerId"},
					Many:     true,
				}},
			},
			mock: func(conn *mocks.MockConnector) {
				conn.EXPECT().Filter(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]models.Node{{Values: []models.ScalarValue{models.IntID(1)}}}, nil)
			},
			wantErr: errs.NewErrUnknownField("ownerId"),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			conn := mocks.NewMockConnector(ctrl)
			conn.EXPECT().Dialect().Return(connector.DialectSQLite).AnyTimes()
			tc.mock(conn)

			_, err := NewReadQueryExecutor(conn).Execute(context.Background(), []ReadQuery{tc.query})
			assert.True(t, errors.Is(err, tc.wantErr), "got %v", err)
		})
	}
}

func TestReadQueryExecutor_ExecuteInTransaction(t *testing.T) {
	s := newBlogSchema()
	ctrl := gomock.NewController(t)
	conn := mocks.NewMockConnector(ctrl)
	sess := mocks.NewMockSession(ctrl)
	conn.EXPECT().Dialect().Return(connector.DialectSQLite).AnyTimes()
	conn.EXPECT().WithTransaction(gomock.Any(), "read", gomock.Any()).
		DoAndReturn(func(ctx context.Context, name string, fn func(context.Context, connector.Session) error) error {
			return fn(ctx, sess)
		})
	sess.EXPECT().Filter(gomock.Any(), gomock.Any(), []models.TypeIdentifier{models.TypeString, models.TypeID}).
		Return([]models.Node{{Values: []models.ScalarValue{models.String("u1"), models.IntID(1)}}}, nil)

	res, err := NewReadQueryExecutor(conn).ExecuteInTransaction(context.Background(), "read", []ReadQuery{{
		Name:     "user",
		Model:    s.user,
		Selected: models.NewSelectedFields(s.field(s.user, "name")),
	}})
	require.NoError(t, err)
	id, ok := res[0].(*SingleResult).FindID()
	require.True(t, ok)
	assert.Equal(t, models.IntID(1), id)
}

func TestReadQueryExecutor_Unbounded(t *testing.T) {
	s := newBlogSchema()
	name := s.field(s.user, "name")
	testCases := []struct {
		name string
		n    int

		wantConcurrency int
	}{
		{name: "zero", n: 0, wantConcurrency: -1},
		{name: "negative", n: -3, wantConcurrency: -1},
		{name: "bounded", n: 2, wantConcurrency: 2},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			conn := mocks.NewMockConnector(ctrl)
			conn.EXPECT().Dialect().Return(connector.DialectSQLite).AnyTimes()
			conn.EXPECT().Filter(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil).Times(3)

			e := NewReadQueryExecutor(conn, ExecutorWithConcurrency(tc.n))
			assert.Equal(t, tc.wantConcurrency, e.concurrency)

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			queries := make([]ReadQuery, 0, 3)
			for _, qn := range []string{"a", "b", "c"} {
				queries = append(queries, ReadQuery{
					Name: qn, Model: s.user, Many: true, Selected: models.NewSelectedFields(name),
				})
			}
			res, err := e.Execute(ctx, queries)
			require.NoError(t, err)
			assert.Len(t, res, 3)
		})
	}
}

func TestLogTrims(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	hook := LogTrims(zap.New(core))
	hook(context.Background(), Trim{Name: "users", Fetched: 3})
	assert.Equal(t, 0, logs.Len())

	hook(context.Background(), Trim{Name: "users", Fetched: 5, Reversed: true, DroppedLeft: 1})
	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "users", fields["name"])
	assert.Equal(t, int64(1), fields["droppedLeft"])
	assert.Equal(t, true, fields["reversed"])
}
