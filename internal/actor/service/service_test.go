package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"simbahan/internal/actor/models"
	"simbahan/internal/actor/store/memory"
	"simbahan/internal/authz"
	id "simbahan/pkg/domain"
	dErrors "simbahan/pkg/domain-errors"
)

func newService(t *testing.T) (*Service, *memory.InMemoryStore) {
	t.Helper()
	store := memory.NewInMemoryStore()
	return New(store, authz.New()), store
}

func chanceryOf(t *testing.T, diocese id.Diocese) *models.Actor {
	t.Helper()
	a, err := models.NewActor(id.NewActorID(), id.RoleChanceryOffice, diocese, "", time.Now())
	require.NoError(t, err)
	return a
}

func TestProvision(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	chancery := chanceryOf(t, "tagbilaran")

	t.Run("chancery provisions secretary in own diocese", func(t *testing.T) {
		actor, err := svc.Provision(ctx, chancery, ProvisionRequest{
			Diocese: "tagbilaran",
			Parish:  "baclayon",
			Secret:  "correct-horse-battery",
		})
		require.NoError(t, err)
		assert.Equal(t, id.RoleParishSecretary, actor.Role)
		assert.True(t, actor.Active)
		assert.NoError(t, bcrypt.CompareHashAndPassword(actor.SecretHash, []byte("correct-horse-battery")))
	})

	t.Run("one active secretary per parish", func(t *testing.T) {
		_, err := svc.Provision(ctx, chancery, ProvisionRequest{
			Diocese: "tagbilaran",
			Parish:  "baclayon",
			Secret:  "another-long-secret",
		})
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeConflict))
	})

	t.Run("cross-diocese provisioning forbidden", func(t *testing.T) {
		_, err := svc.Provision(ctx, chancery, ProvisionRequest{
			Diocese: "talibon",
			Parish:  "talibon-cathedral",
			Secret:  "another-long-secret",
		})
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeForbidden))
	})

	t.Run("secretary cannot provision", func(t *testing.T) {
		secretary, err := models.NewActor(id.NewActorID(), id.RoleParishSecretary, "tagbilaran", "loboc", time.Now())
		require.NoError(t, err)
		_, err = svc.Provision(ctx, secretary, ProvisionRequest{
			Diocese: "tagbilaran",
			Parish:  "dauis",
			Secret:  "another-long-secret",
		})
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	t.Run("short secret rejected", func(t *testing.T) {
		_, err := svc.Provision(ctx, chancery, ProvisionRequest{
			Diocese: "tagbilaran",
			Parish:  "panglao",
			Secret:  "short",
		})
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	})
}

func TestDeactivate(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	chancery := chanceryOf(t, "tagbilaran")

	actor, err := svc.Provision(ctx, chancery, ProvisionRequest{
		Diocese: "tagbilaran",
		Parish:  "maribojoc",
		Secret:  "correct-horse-battery",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Deactivate(ctx, chancery, actor.ID))

	t.Run("deactivated actor cannot authenticate", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, actor.ID, "correct-horse-battery")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthenticated))
	})

	t.Run("double deactivation rejected", func(t *testing.T) {
		err := svc.Deactivate(ctx, chancery, actor.ID)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvariantViolation))
	})

	t.Run("parish slot frees up for a replacement", func(t *testing.T) {
		_, err := svc.Provision(ctx, chancery, ProvisionRequest{
			Diocese: "tagbilaran",
			Parish:  "maribojoc",
			Secret:  "replacement-secret-key",
		})
		require.NoError(t, err)
	})
}

func TestAuthenticate(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	chancery := chanceryOf(t, "tagbilaran")

	actor, err := svc.Provision(ctx, chancery, ProvisionRequest{
		Diocese: "tagbilaran",
		Parish:  "corella",
		Secret:  "correct-horse-battery",
	})
	require.NoError(t, err)

	t.Run("valid credentials", func(t *testing.T) {
		got, err := svc.Authenticate(ctx, actor.ID, "correct-horse-battery")
		require.NoError(t, err)
		assert.Equal(t, actor.ID, got.ID)
	})

	t.Run("wrong secret", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, actor.ID, "wrong")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthenticated))
	})

	t.Run("unknown actor", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, id.NewActorID(), "whatever")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthenticated))
	})
}
