// Package microsoft provides the pieces shared by clients of the Outlook
// REST API.
//
// This package provides:
//   - OAuth2 device code sign-in and token refresh for the Microsoft identity platform
//   - Client-side request pacing
//   - Error handling for service responses
//
// The identity endpoints use the "common" tenant unless configured otherwise,
// allowing both personal Microsoft accounts and Azure AD accounts.
//
// # OAuth2 Flow
//
// A public client signs in with the device authorization grant:
//   - Device code URL: https://login.microsoftonline.com/common/oauth2/v2.0/devicecode
//   - Token URL: https://login.microsoftonline.com/common/oauth2/v2.0/token
//
// The "offline_access" scope is required for refresh tokens.
//
// # Errors
//
// Failed responses become a *ServiceError carrying the service error code,
// message, response header lines and request URL. ServiceError unwraps to a
// status sentinel such as ErrNotFound so callers can use errors.Is.
//
// # Rate Limits
//
// The service allows approximately 10,000 requests per 10 minutes per mailbox.
// RateLimiter paces requests and honours Retry-After on throttled responses,
// but never retries a failed call.
package microsoft
