// Package auth issues and verifies the bearer tokens used by the API and
// hashes user passwords.
//
// Access and refresh tokens are HS256-signed JWTs that carry the user ID and
// a "type" claim, so a refresh token is never accepted as an access token.
package auth
