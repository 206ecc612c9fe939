package sqlite_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/vytor/killstats/internal/models"
	"github.com/vytor/killstats/internal/repository"
	"github.com/vytor/killstats/internal/repository/sqlite"
	"github.com/vytor/killstats/internal/testutil"
)

type KillRepositorySuite struct {
	suite.Suite
	db      *sql.DB
	repo    repository.KillRepository
	worldID int64
	otherID int64
	ferum   int64
	zula    int64
}

func (s *KillRepositorySuite) SetupTest() {
	ctx := context.Background()
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewKillRepository(s.db)

	worlds := sqlite.NewWorldRepository(s.db)
	bosses := sqlite.NewBossRepository(s.db)

	w, err := worlds.Create(ctx, "Lunarian")
	s.Require().NoError(err)
	s.worldID = w.ID
	o, err := worlds.Create(ctx, "Antica")
	s.Require().NoError(err)
	s.otherID = o.ID

	b, err := bosses.Create(ctx, "Ferumbras")
	s.Require().NoError(err)
	s.ferum = b.ID
	b, err = bosses.Create(ctx, "Zulazza")
	s.Require().NoError(err)
	s.zula = b.ID
}

func (s *KillRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *KillRepositorySuite) TestUpsert_LastWriteWins() {
	ctx := context.Background()

	s.Require().NoError(s.repo.Upsert(ctx, s.ferum, s.worldID, "2025-11-01", 1))
	s.Require().NoError(s.repo.Upsert(ctx, s.ferum, s.worldID, "2025-11-01", 4))

	records, err := s.repo.List(ctx, models.KillFilter{World: "Lunarian"})
	s.Require().NoError(err)
	s.Require().Len(records, 1)
	s.Assert().Equal(models.DailyKillRecord{Boss: "Ferumbras", Date: "2025-11-01", Kills: 4, World: "Lunarian"}, records[0])
}

func (s *KillRepositorySuite) TestUpsert_RejectsNegativeKills() {
	err := s.repo.Upsert(context.Background(), s.ferum, s.worldID, "2025-11-01", -1)
	s.Assert().Error(err)
}

func (s *KillRepositorySuite) TestUpsert_UnknownBoss() {
	err := s.repo.Upsert(context.Background(), 9999, s.worldID, "2025-11-01", 1)
	s.Assert().Error(err, "foreign keys are enforced")
}

func (s *KillRepositorySuite) TestList_Filters() {
	ctx := context.Background()
	s.Require().NoError(s.repo.Upsert(ctx, s.ferum, s.worldID, "2025-11-01", 1))
	s.Require().NoError(s.repo.Upsert(ctx, s.ferum, s.worldID, "2025-11-03", 2))
	s.Require().NoError(s.repo.Upsert(ctx, s.zula, s.worldID, "2025-11-02", 1))
	s.Require().NoError(s.repo.Upsert(ctx, s.zula, s.otherID, "2025-11-02", 7))

	all, err := s.repo.List(ctx, models.KillFilter{})
	s.Require().NoError(err)
	s.Assert().Len(all, 4)

	lunarian, err := s.repo.List(ctx, models.KillFilter{World: "Lunarian"})
	s.Require().NoError(err)
	s.Require().Len(lunarian, 3)
	s.Assert().Equal("Ferumbras", lunarian[0].Boss)
	s.Assert().Equal("2025-11-01", lunarian[0].Date)
	s.Assert().Equal("2025-11-03", lunarian[1].Date)
	s.Assert().Equal("Zulazza", lunarian[2].Boss)

	byBoss, err := s.repo.List(ctx, models.KillFilter{Boss: "Zulazza"})
	s.Require().NoError(err)
	s.Assert().Len(byBoss, 2)

	window, err := s.repo.List(ctx, models.KillFilter{World: "Lunarian", From: "2025-11-02", To: "2025-11-02"})
	s.Require().NoError(err)
	s.Require().Len(window, 1)
	s.Assert().Equal("Zulazza", window[0].Boss)
}

func (s *KillRepositorySuite) TestList_Empty() {
	records, err := s.repo.List(context.Background(), models.KillFilter{World: "Lunarian"})
	s.Require().NoError(err)
	s.Assert().NotNil(records)
	s.Assert().Empty(records)
}

func TestKillRepositorySuite(t *testing.T) {
	suite.Run(t, new(KillRepositorySuite))
}
