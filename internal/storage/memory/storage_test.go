package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/battleship-go2/internal/model"
	"github.com/mcoot/battleship-go2/internal/storage/storagetest"
)

type StorageSuite struct {
	storagetest.Suite
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.Store = New()
	s.Ctx = context.Background()
}

func (s *StorageSuite) TestReturnedPlayerIsACopy() {
	store := New()
	s.Require().NoError(store.SavePlayer(s.Ctx, storagetestPlayer()))

	got, err := store.GetPlayer(s.Ctx, "p")
	s.Require().NoError(err)
	got.DisplayName = "changed"

	again, err := store.GetPlayer(s.Ctx, "p")
	s.Require().NoError(err)
	s.Equal("Alice", again.DisplayName)
}

func storagetestPlayer() *model.Player {
	return &model.Player{ID: "p", DisplayName: "Alice"}
}
