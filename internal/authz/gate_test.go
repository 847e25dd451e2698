package authz

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	actormodels "simbahan/internal/actor/models"
	"simbahan/internal/church/models"
	id "simbahan/pkg/domain"
	dErrors "simbahan/pkg/domain-errors"
)

func newActor(t *testing.T, role id.Role, diocese id.Diocese, parish id.ParishID) *actormodels.Actor {
	t.Helper()
	a, err := actormodels.NewActor(id.NewActorID(), role, diocese, parish, time.Now())
	require.NoError(t, err)
	return a
}

func TestAuthorizeMatrix(t *testing.T) {
	gate := New()
	ctx := context.Background()

	baclayon := Resource{Parish: "baclayon", Diocese: "tagbilaran", Status: models.StatusPending}
	approved := Resource{Parish: "baclayon", Diocese: "tagbilaran", Status: models.StatusApproved}
	foreign := Resource{Parish: "talibon-cathedral", Diocese: "talibon", Status: models.StatusPending}

	chancery := newActor(t, id.RoleChanceryOffice, "tagbilaran", "")
	museum := newActor(t, id.RoleMuseumResearcher, "tagbilaran", "")
	secretary := newActor(t, id.RoleParishSecretary, "tagbilaran", "baclayon")

	tests := []struct {
		name     string
		actor    *actormodels.Actor
		res      Resource
		action   Action
		wantCode dErrors.Code // empty means allow
	}{
		// chancery_office
		{name: "chancery reads own diocese", actor: chancery, res: baclayon, action: ActionRead},
		{name: "chancery transitions own diocese", actor: chancery, res: baclayon, action: ActionTransition},
		{name: "chancery provisions own diocese", actor: chancery, res: Resource{Diocese: "tagbilaran"}, action: ActionProvision},
		{name: "chancery reads audit own diocese", actor: chancery, res: baclayon, action: ActionReadAudit},
		{name: "chancery cannot create churches", actor: chancery, res: baclayon, action: ActionCreate, wantCode: dErrors.CodeUnauthorized},
		{name: "chancery cross-diocese read is forbidden", actor: chancery, res: foreign, action: ActionRead, wantCode: dErrors.CodeForbidden},
		{name: "chancery cross-diocese transition is forbidden", actor: chancery, res: foreign, action: ActionTransition, wantCode: dErrors.CodeForbidden},
		{name: "chancery cross-diocese provisioning is forbidden", actor: chancery, res: Resource{Diocese: "talibon"}, action: ActionProvision, wantCode: dErrors.CodeForbidden},

		// museum_researcher
		{name: "museum reads any diocese", actor: museum, res: foreign, action: ActionRead},
		{name: "museum reads audit any diocese", actor: museum, res: foreign, action: ActionReadAudit},
		{name: "museum transitions own diocese", actor: museum, res: baclayon, action: ActionTransition},
		{name: "museum cross-diocese transition is forbidden", actor: museum, res: foreign, action: ActionTransition, wantCode: dErrors.CodeForbidden},
		{name: "museum cannot provision", actor: museum, res: Resource{Diocese: "tagbilaran"}, action: ActionProvision, wantCode: dErrors.CodeUnauthorized},
		{name: "museum cannot create churches", actor: museum, res: baclayon, action: ActionCreate, wantCode: dErrors.CodeUnauthorized},

		// parish_secretary
		{name: "secretary reads own parish", actor: secretary, res: baclayon, action: ActionRead},
		{name: "secretary creates own parish", actor: secretary, res: baclayon, action: ActionCreate},
		{name: "secretary updates own parish", actor: secretary, res: baclayon, action: ActionUpdate},
		{name: "secretary other parish is forbidden", actor: secretary, res: Resource{Parish: "dauis", Diocese: "tagbilaran"}, action: ActionUpdate, wantCode: dErrors.CodeForbidden},
		{name: "secretary cross-diocese is forbidden", actor: secretary, res: foreign, action: ActionRead, wantCode: dErrors.CodeForbidden},
		{name: "secretary cannot read audit", actor: secretary, res: baclayon, action: ActionReadAudit, wantCode: dErrors.CodeUnauthorized},
		{name: "secretary cannot provision", actor: secretary, res: Resource{Diocese: "tagbilaran"}, action: ActionProvision, wantCode: dErrors.CodeUnauthorized},

		// anonymous / public
		{name: "anonymous reads approved", actor: nil, res: approved, action: ActionRead},
		{name: "anonymous cannot read pending", actor: nil, res: baclayon, action: ActionRead, wantCode: dErrors.CodeUnauthorized},
		{name: "anonymous cannot write", actor: nil, res: approved, action: ActionUpdate, wantCode: dErrors.CodeUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := gate.Authorize(ctx, tt.actor, tt.res, tt.action)
			if tt.wantCode == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, dErrors.HasCode(err, tt.wantCode),
				"want code %s, got %v", tt.wantCode, err)
		})
	}
}

func TestAuthorizeDeactivatedActor(t *testing.T) {
	gate := New()
	chancery := newActor(t, id.RoleChanceryOffice, "tagbilaran", "")
	require.NoError(t, chancery.CanDeactivate())
	chancery.ApplyDeactivation(time.Now())

	err := gate.Authorize(context.Background(),
		chancery,
		Resource{Parish: "baclayon", Diocese: "tagbilaran"},
		ActionRead,
	)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func TestPublicRoleMatchesAnonymous(t *testing.T) {
	gate := New()
	public := newActor(t, id.RolePublic, "", "")

	approved := Resource{Parish: "baclayon", Diocese: "tagbilaran", Status: models.StatusApproved}
	assert.NoError(t, gate.Authorize(context.Background(), public, approved, ActionRead))

	pending := approved
	pending.Status = models.StatusPending
	err := gate.Authorize(context.Background(), public, pending, ActionRead)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
}
