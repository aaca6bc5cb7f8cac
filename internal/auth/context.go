package auth

import "context"

type Role string

const (
	RoleCustomer   Role = "customer"
	RoleRider      Role = "rider"
	RoleRestaurant Role = "restaurant"
	RoleAdmin      Role = "admin"
)

// Actor is the authenticated identity the session layer resolved for a
// request. For restaurant actors the ID is the restaurant id itself.
type Actor struct {
	ID   string
	Role Role
}

type ctxKey struct{}

func WithActor(ctx context.Context, a Actor) context.Context {
	return context.WithValue(ctx, ctxKey{}, a)
}

func ActorFromContext(ctx context.Context) (Actor, bool) {
	a, ok := ctx.Value(ctxKey{}).(Actor)
	return a, ok
}
