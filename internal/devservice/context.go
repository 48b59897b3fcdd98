package devservice

import "context"

type ctxUser struct{}

func withUser(ctx context.Context, u User) context.Context {
	return context.WithValue(ctx, ctxUser{}, u)
}

func userFrom(ctx context.Context) User {
	u, _ := ctx.Value(ctxUser{}).(User)
	return u
}
