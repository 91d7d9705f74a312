package catalog

import (
	"context"

	"github.com/jwalitptl/hospital-admin/internal/model"
	apperrors "github.com/jwalitptl/hospital-admin/pkg/errors"
	"github.com/jwalitptl/hospital-admin/pkg/security"
)

// UserHooks hash the plain password before a user is written. An update
// without a password keeps the stored hash.
func UserHooks(hasher security.PasswordHasher) Hooks[model.User] {
	return Hooks[model.User]{
		BeforeWrite: func(_ context.Context, u *model.User, existing *model.User) error {
			if u.Password == "" {
				if existing == nil {
					return apperrors.NewValidation("password is required", nil)
				}
				u.PasswordHash = existing.PasswordHash
				return nil
			}

			hash, err := hasher.Hash(u.Password)
			if err != nil {
				if err == security.ErrPasswordTooShort {
					return apperrors.NewValidation(err.Error(), err)
				}
				return apperrors.NewInternal(err)
			}
			u.PasswordHash = hash
			u.Password = ""
			return nil
		},
	}
}
