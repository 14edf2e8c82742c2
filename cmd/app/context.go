package main

import (
	"context"
	"net/http"

	"github.com/sushihentaime/bloglist/internal/userservice"
)

type contextKey string

const identityContextKey = contextKey("identity")

func (app *application) createIdentityContext(r *http.Request, identity *userservice.Identity) *http.Request {
	ctx := context.WithValue(r.Context(), identityContextKey, identity)
	return r.WithContext(ctx)
}

func (app *application) getIdentityContext(r *http.Request) *userservice.Identity {
	identity, ok := r.Context().Value(identityContextKey).(*userservice.Identity)
	if !ok {
		return nil
	}
	return identity
}
