//go:build integration

package integration

import (
	"context"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/Hebilicious/prisma/config"
	"github.com/Hebilicious/prisma/connector"
	"github.com/Hebilicious/prisma/models"
)

// Suite 每个后端一份, ddl 按顺序执行, 用来建表
type Suite struct {
	suite.Suite
	cfg *config.Database
	ddl []string

	db *connector.DB
}

func (s *Suite) SetupSuite() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	db, err := connector.FromConfig(ctx, s.cfg)
	require.NoError(s.T(), err)
	s.db = db
	for _, stmt := range s.ddl {
		_, err = db.Write(ctx, connector.Update(connector.Raw(stmt)))
		require.NoError(s.T(), err)
	}
}

func (s *Suite) TearDownTest() {
	err := s.db.Truncate(context.Background(), blogSchema(s.cfg.Schema))
	require.NoError(s.T(), err)
}

func (s *Suite) TearDownSuite() {
	_ = s.db.Close()
}

func blogModels() (*models.Model, *models.Model) {
	user := &models.Model{
		Name: "User",
		Fields: []*models.ScalarField{
			{Name: "id", TypeIdentifier: models.TypeID},
			{Name: "name", TypeIdentifier: models.TypeString},
			{Name: "age", TypeIdentifier: models.TypeInt},
			{Name: "createdAt", TypeIdentifier: models.TypeDateTime},
			{Name: "tags", TypeIdentifier: models.TypeString, IsList: true},
		},
	}
	post := &models.Model{
		Name: "Post",
		Fields: []*models.ScalarField{
			{Name: "id", TypeIdentifier: models.TypeID},
			{Name: "title", TypeIdentifier: models.TypeString},
			{Name: "authorId", TypeIdentifier: models.TypeRelation},
		},
	}
	user.Relations = []*models.RelationField{{Name: "posts", Related: post, ForeignKey: "authorId"}}
	return user, post
}

func blogSchema(name string) *models.Schema {
	user, post := blogModels()
	return &models.Schema{Name: name, Models: []*models.Model{user, post}}
}
