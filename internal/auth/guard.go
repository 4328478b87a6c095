package auth

import (
	"strconv"
)

// ActorContext identifies the authenticated caller of a privileged
// operation.
type ActorContext struct {
	UserID uint
	Role   Role
}

// Guard validates presented tokens and enforces the role decision table on
// every privileged operation. It is stateless and side-effect free: the
// token's expiry is the only forced invalidation.
type Guard struct {
	service *Service
}

func NewGuard(service *Service) *Guard {
	return &Guard{service: service}
}

// Authorize validates the token and checks the role claim against the
// required capability. An unknown role in the claim is denied outright.
func (g *Guard) Authorize(token string, capability Capability) (*ActorContext, error) {
	claims, err := g.service.ValidateToken(token)
	if err != nil {
		return nil, ErrInvalidToken
	}

	id, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil {
		return nil, ErrInvalidToken
	}

	if !claims.Role.Valid() || !Allows(claims.Role, capability) {
		return nil, ErrForbidden
	}

	return &ActorContext{
		UserID: uint(id),
		Role:   claims.Role,
	}, nil
}
