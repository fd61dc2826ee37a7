package repository_test

import (
	"context"
	"errors"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/memoraid/memoraid/pkg/domain/interfaces"
	"github.com/memoraid/memoraid/pkg/domain/model"
	"github.com/memoraid/memoraid/pkg/domain/types"
	"github.com/memoraid/memoraid/pkg/repository/memory"
)

func runContributorRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("Create and Get round trip", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		userID := newPatientID()
		created, err := repo.Contributor().Create(ctx, &model.Contributor{
			UserID:            userID,
			Name:              "Maria",
			Email:             "maria@example.com",
			RelationshipType:  types.RelationshipFamily,
			RelationshipYears: 30,
		})
		gt.NoError(t, err).Required()
		gt.String(t, string(created.ID)).NotEqual("")
		gt.Bool(t, created.CreatedAt.IsZero()).False()

		got, err := repo.Contributor().Get(ctx, created.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, got.UserID).Equal(userID)
		gt.Value(t, got.Name).Equal("Maria")
		gt.Value(t, got.Email).Equal("maria@example.com")
		gt.Value(t, got.RelationshipType).Equal(types.RelationshipFamily)
		gt.Value(t, got.RelationshipYears).Equal(30)
	})

	t.Run("Get returns ErrNotFound for missing contributor", func(t *testing.T) {
		repo := newRepo(t)

		_, err := repo.Contributor().Get(context.Background(), model.NewContributorID())
		gt.Bool(t, errors.Is(err, model.ErrNotFound)).True()
	})

	t.Run("ListByUser orders by name", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		userID := newPatientID()
		for _, name := range []string{"Charlie", "Alice", "Bob"} {
			_, err := repo.Contributor().Create(ctx, &model.Contributor{
				UserID:            userID,
				Name:              name,
				Email:             name + "@example.com",
				RelationshipType:  types.RelationshipFriend,
				RelationshipYears: 5,
			})
			gt.NoError(t, err).Required()
		}

		contributors, err := repo.Contributor().ListByUser(ctx, userID)
		gt.NoError(t, err).Required()
		gt.Array(t, contributors).Length(3).Required()
		gt.Value(t, contributors[0].Name).Equal("Alice")
		gt.Value(t, contributors[1].Name).Equal("Bob")
		gt.Value(t, contributors[2].Name).Equal("Charlie")
	})
}

func TestMemoryContributorRepository(t *testing.T) {
	runContributorRepositoryTest(t, func(t *testing.T) interfaces.Repository {
		return memory.New()
	})
}

func TestFirestoreContributorRepository(t *testing.T) {
	runContributorRepositoryTest(t, newFirestoreRepository)
}
