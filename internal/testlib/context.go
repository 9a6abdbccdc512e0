// Copyright (c) 2020-present Mattermost, Inc. All Rights Reserved.
// See LICENSE.txt for license information.
//

package testlib

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Context provides the fake API with its state and logger.
//
// It is cloned before each request, allowing per-request changes such as logger annotations.
type Context struct {
	State     *State
	Logger    logrus.FieldLogger
	RequestID string
}

// Clone creates a shallow copy of context, allowing clones to apply per-request changes.
func (c *Context) Clone() *Context {
	return &Context{
		State:  c.State,
		Logger: c.Logger,
	}
}

type contextHandlerFunc func(c *Context, w http.ResponseWriter, r *http.Request)

type contextHandler struct {
	context       *Context
	handler       contextHandlerFunc
	authenticated bool
}

// ServeHTTP satisfies the Handler interface for contextHandler
func (h contextHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	context := h.context.Clone()
	context.RequestID = uuid.NewString()
	context.Logger = context.Logger.WithFields(
		logrus.Fields{
			"path":    r.URL.Path,
			"request": context.RequestID,
		})

	context.State.mu.Lock()
	defer context.State.mu.Unlock()
	context.State.requests++

	if h.authenticated && r.Header.Get("X-AUTH-TOKEN") != context.State.Token {
		context.Logger.Debug("rejecting request with a bad token")
		outputError(context, w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	h.handler(context, w, r)
}

func newContextHandler(context *Context, handler contextHandlerFunc, authenticated bool) *contextHandler {
	return &contextHandler{
		context:       context,
		handler:       handler,
		authenticated: authenticated,
	}
}
