/*
Package errs defines the application error codes and the CustomError type that
carries them to clients.

Codes are grouped by range: 1xxx request handling, 2xxx boards and their
content, 3xxx users and sessions, 5xxx internal failures.
*/
package errs

// 1xxx: request handling
const (
	// ErrInvalidParams indicates that request parameter validation failed.
	ErrInvalidParams = 1001

	// ErrUnsupportedMediaType indicates an unexpected Content-Type header.
	ErrUnsupportedMediaType = 1002

	// ErrInvalidJSONFormat indicates a body that is not valid JSON for the target type.
	ErrInvalidJSONFormat = 1003

	// ErrExtraContentInBody indicates trailing data after the JSON document.
	ErrExtraContentInBody = 1004

	// ErrFormParseFailed indicates a multipart or urlencoded form that could not be parsed.
	ErrFormParseFailed = 1005

	// ErrRequestEntityTooLarge indicates the body exceeded the server limit.
	ErrRequestEntityTooLarge = 1006

	// ErrRateLimitExceeded indicates the client exceeded its request rate.
	ErrRateLimitExceeded = 1007

	// ErrIdentityRequired indicates a realtime connection attempt without a display identity.
	ErrIdentityRequired = 1101
)

// 2xxx: boards, posts, comments and attachments
const (
	ErrBoardNotFound   = 2101
	ErrBoardNameExists = 2102

	ErrPostNotFound = 2201

	ErrCommentNotFound = 2301

	// ErrFileNotFound indicates an attachment id with no stored metadata.
	ErrFileNotFound = 2401

	// ErrFileSizeTooLarge indicates an upload above the configured size limit. The
	// message takes the limit in megabytes.
	ErrFileSizeTooLarge = 2402

	// ErrFileTypeInvalid indicates an upload whose sniffed content type is not accepted.
	ErrFileTypeInvalid = 2403
)

// 3xxx: users, sessions and permissions
const (
	ErrUserAlreadyExists  = 3001
	ErrInvalidCredentials = 3002
	ErrUserNotFound       = 3003
	ErrUserInactive       = 3004
	ErrOldPasswordInvalid = 3005

	// ErrUnauthorized indicates a missing or invalid access token.
	ErrUnauthorized = 3101

	// ErrForbidden indicates an authenticated caller that is neither the owner nor an admin.
	ErrForbidden = 3102
)

// 5xxx: internal failures
const (
	// ErrUnknown is the catch-all for unclassified server errors.
	ErrUnknown = 5000

	// ErrFileStorageFailed indicates the object store rejected or could not serve a request.
	ErrFileStorageFailed = 5001
)
