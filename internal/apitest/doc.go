// Package apitest runs an in-process fake of the backend REST API for tests.
//
// The fake speaks the same {success, message, data} envelope and status codes
// as the real backend, issues HS256 JWT credentials, records every request it
// receives and lets a test force the response of any route.
package apitest
