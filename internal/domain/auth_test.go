package domain

import (
	"testing"

	"github.com/alumnet-lab/backend/internal/entity"
	"github.com/alumnet-lab/backend/internal/model"
	"github.com/alumnet-lab/backend/pkg/errorx"
	"github.com/alumnet-lab/backend/pkg/testutil"
	"github.com/alumnet-lab/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func Test_authDomain_RegisterLogin(t *testing.T) {
	s := newSuite(t)

	registered, err := s.authDomain().Register(s.ctx, &model.RegisterRequest{
		TenantHandle:   "alpha",
		Email:          "John@Example.com",
		Name:           "John",
		Password:       "secret123",
		Department:     "Math",
		GraduationYear: 2015,
	})
	require.NoError(t, err)
	require.Equal(t, "john@example.com", registered.User.Email)
	require.Equal(t, string(entity.RoleAlumni), registered.User.Role)
	require.Equal(t, s.tenant.ID, registered.User.TenantID)

	var token model.AccessToken
	require.NoError(t, xcontext.TokenEngine(s.ctx).Verify(registered.AccessToken, &token))
	require.Equal(t, registered.User.ID, token.ID)
	require.Equal(t, s.tenant.ID, token.TenantID)
	require.Equal(t, string(entity.RoleAlumni), token.Role)

	member, err := s.memberRepo.Get(s.ctx, registered.User.ID, s.tenant.ID)
	require.NoError(t, err)
	require.Equal(t, uint64(0), member.Points)

	loggedIn, err := s.authDomain().Login(s.ctx, &model.LoginRequest{
		Email:    "john@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	require.Equal(t, registered.User.ID, loggedIn.User.ID)

	_, err = s.authDomain().Login(s.ctx, &model.LoginRequest{
		Email:    "john@example.com",
		Password: "wrong-password",
	})
	requireErrorCode(t, err, errorx.Unauthenticated)

	_, err = s.authDomain().Login(s.ctx, &model.LoginRequest{
		Email:    "nobody@example.com",
		Password: "secret123",
	})
	requireErrorCode(t, err, errorx.Unauthenticated)

	user, err := s.userRepo.GetByID(s.ctx, registered.User.ID)
	require.NoError(t, err)

	me, err := s.authDomain().GetMe(s.as(*user), &model.GetMeRequest{})
	require.NoError(t, err)
	require.Equal(t, "Math", me.User.Department)
	require.Equal(t, 2015, me.User.GraduationYear)
}

func Test_authDomain_Register_Failed(t *testing.T) {
	s := newSuite(t)
	inactive := testutil.SampleTenant(t, s.ctx, entity.Tenant{Handle: "closed"})
	require.NoError(t, s.tenantRepo.UpdateByID(s.ctx, inactive.ID, map[string]any{"active": false}))

	valid := func(modify func(*model.RegisterRequest)) *model.RegisterRequest {
		req := &model.RegisterRequest{
			TenantHandle: "alpha",
			Email:        "john@example.com",
			Name:         "John",
			Password:     "secret123",
		}
		modify(req)
		return req
	}

	testCases := []struct {
		name string
		req  *model.RegisterRequest
		code errorx.Code
	}{
		{
			name: "invalid email",
			req:  valid(func(r *model.RegisterRequest) { r.Email = "john" }),
			code: errorx.BadRequest,
		},
		{
			name: "empty name",
			req:  valid(func(r *model.RegisterRequest) { r.Name = "" }),
			code: errorx.BadRequest,
		},
		{
			name: "short password",
			req:  valid(func(r *model.RegisterRequest) { r.Password = "1234567" }),
			code: errorx.BadRequest,
		},
		{
			name: "privileged role",
			req:  valid(func(r *model.RegisterRequest) { r.Role = "admin" }),
			code: errorx.PermissionDenied,
		},
		{
			name: "unknown tenant",
			req:  valid(func(r *model.RegisterRequest) { r.TenantHandle = "unknown" }),
			code: errorx.NotFound,
		},
		{
			name: "inactive tenant",
			req:  valid(func(r *model.RegisterRequest) { r.TenantHandle = "closed" }),
			code: errorx.Unavailable,
		},
		{
			name: "registered email",
			req:  valid(func(r *model.RegisterRequest) { r.Email = s.alumni.Email }),
			code: errorx.AlreadyExists,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := s.authDomain().Register(s.ctx, tc.req)
			requireErrorCode(t, err, tc.code)
		})
	}
}
