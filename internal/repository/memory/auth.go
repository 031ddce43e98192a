package memory

import (
	"context"

	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/auth"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/common"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

type authRepository struct {
	db     *DB
	tokens jwt.Service
}

func NewAuthRepository(db *DB, tokens jwt.Service) auth.Repository {
	return &authRepository{db: db, tokens: tokens}
}

// Login implements auth.Repository.
func (r *authRepository) Login(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.LoginResponse{}, err
	}

	var acc account
	err := r.db.read(func() error {
		a, ok := r.db.accountByUsername(req.Username)
		if !ok {
			return auth.ErrInvalidCredentials
		}
		acc = *a
		return nil
	})
	if err != nil {
		return auth.LoginResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword(acc.PasswordHash, []byte(req.Password)); err != nil {
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}

	token, _, err := r.tokens.GenerateAccessToken(acc.ID, acc.Username, acc.Role)
	if err != nil {
		return auth.LoginResponse{}, err
	}
	return auth.LoginResponse{
		Token: token,
		Role:  user.RoleField{Raw: string(acc.Role), Role: acc.Role},
	}, nil
}

// UserDetails implements auth.Repository. The token has already been
// verified by the router.
func (r *authRepository) UserDetails(ctx context.Context, token, username string) (user.Details, error) {
	var out user.Details
	err := r.db.read(func() error {
		a, ok := r.db.accountByUsername(username)
		if !ok {
			return user.ErrUserNotFound
		}
		out = user.Details{
			ID:                common.ID(a.ID),
			Username:          a.Username,
			Role:              user.RoleField{Raw: string(a.Role), Role: a.Role},
			EmployeeID:        common.ID(a.EmployeeID),
			HRID:              common.ID(a.HRID),
			FullName:          a.FullName,
			ReferredByAdminID: common.ID(a.ReferredByAdminID),
		}
		return nil
	})
	return out, err
}
