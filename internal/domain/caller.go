package domain

import "context"

type Role string

const (
	RoleCitizen   Role = "citizen"
	RoleResponder Role = "responder"
	RoleAdmin     Role = "admin"
)

type Caller struct {
	Role    Role
	ActorID string
}

func (c Caller) IsStaff() bool {
	return c.Role == RoleAdmin || c.Role == RoleResponder
}

type callerKey struct{}

func WithCaller(ctx context.Context, c Caller) context.Context {
	return context.WithValue(ctx, callerKey{}, c)
}

// CallerFrom returns the caller stored on ctx, defaulting to an anonymous citizen.
func CallerFrom(ctx context.Context) Caller {
	if c, ok := ctx.Value(callerKey{}).(Caller); ok {
		return c
	}
	return Caller{Role: RoleCitizen}
}
