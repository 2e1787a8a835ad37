// Package services implements the provider clients used by the transfer
// pipeline.
//
// # Identifier Resolution
//
// [Resolve] extracts a service-native playlist ID from a raw URL, URI, or
// bare ID string. YouTube inputs are recognized by their host markers and
// resolved via the "list=" query parameter; Spotify inputs via the
// "playlist/" path segment or the "spotify:playlist:" URI prefix. Inputs
// with no recognized marker pass through as bare IDs.
//
// # YouTube Music Implementation
//
// [YouTubeService] communicates with a FastAPI proxy wrapping ytmusicapi.
// The proxy handles YouTube Music authentication complexities; the auth
// file path is forwarded via the X-Auth-File header on each request. All
// operations are synchronous HTTP calls to the proxy endpoints.
//
// # Spotify Implementation
//
// [SpotifyService] uses OAuth2 with automatic token refresh and throttles
// requests through a rate limiter. Write scopes cover playlist creation,
// track mutation, and cover-image upload.
//
// # Error Handling
//
// Services use typed errors from the shared package:
//   - [shared.ErrNotAuthenticated] : Authenticate() not called
//   - [shared.ErrTokenExpired] : OAuth token expired, reauthorization needed
//   - [shared.ErrSourceService] : YouTube Music proxy request failed
//   - [shared.ErrDestinationService] : Spotify request failed
//   - [shared.ErrInvalidIdentifier] : playlist reference could not be resolved
package services
