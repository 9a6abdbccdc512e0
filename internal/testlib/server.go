// Copyright (c) 2020-present Mattermost, Inc. All Rights Reserved.
// See LICENSE.txt for license information.
//

package testlib

import (
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
)

// Server is a running fake of the translation API.
type Server struct {
	*State

	URL string
}

// NewServer starts a fake API backed by state, or by DefaultState when
// state is nil. The server is closed when the test ends.
func NewServer(tb testing.TB, state *State) *Server {
	if state == nil {
		state = DefaultState()
	}

	router := mux.NewRouter()
	Register(router, &Context{
		State:  state,
		Logger: MakeLogger(tb),
	})
	ts := httptest.NewServer(router)
	tb.Cleanup(ts.Close)

	return &Server{
		State: state,
		URL:   ts.URL,
	}
}
