// Package server provides local HTTP plumbing for the OAuth
// authorization-code flow.
//
// The CLI starts a short-lived server on the configured host and port
// (localhost:3000 by default) to receive the provider's redirect. A
// [BasicRouter] dispatches requests with optional middleware, and an
// [OAuthHandler] validates the state parameter, exchanges the code for a
// token, and delivers the result over a channel:
//
//	handler := server.NewOAuthHandler(oauthConfig, state)
//	router := server.NewBasicRouter()
//	router.Handler(handler)
//
//	srv := &http.Server{Addr: "localhost:3000", Handler: router}
//	go srv.ListenAndServe()
//
//	select {
//	case result := <-handler.Result():
//	    // result.Token or result.Error()
//	case <-time.After(2 * time.Minute):
//	    // user never completed the flow
//	}
//
// The server is meant to run only for the duration of a single
// authorization and should be shut down once a result arrives.
package server
