package errs

import "net/http"

// errorMap holds the client message and HTTP status for every known code.
// A zero Status is reported as 200 with the business code in the body.
var errorMap = map[int]CustomError{
	ErrInvalidParams:         {Code: ErrInvalidParams, Message: "Invalid request parameters.", Status: http.StatusBadRequest},
	ErrUnsupportedMediaType:  {Code: ErrUnsupportedMediaType, Message: "Unsupported request format.", Status: http.StatusUnsupportedMediaType},
	ErrInvalidJSONFormat:     {Code: ErrInvalidJSONFormat, Message: "Unsupported request format.", Status: http.StatusBadRequest},
	ErrExtraContentInBody:    {Code: ErrExtraContentInBody, Message: "Request contains unexpected data.", Status: http.StatusBadRequest},
	ErrFormParseFailed:       {Code: ErrFormParseFailed, Message: "Failed to process uploaded data.", Status: http.StatusBadRequest},
	ErrRequestEntityTooLarge: {Code: ErrRequestEntityTooLarge, Message: "Request size is too large.", Status: http.StatusRequestEntityTooLarge},
	ErrRateLimitExceeded:     {Code: ErrRateLimitExceeded, Message: "Too many requests. Please try again later.", Status: http.StatusTooManyRequests},
	ErrIdentityRequired:      {Code: ErrIdentityRequired, Message: "A username is required to join a room.", Status: http.StatusBadRequest},

	ErrBoardNotFound:    {Code: ErrBoardNotFound, Message: "Board not found.", Status: http.StatusNotFound},
	ErrBoardNameExists:  {Code: ErrBoardNameExists, Message: "A board with this name already exists.", Status: http.StatusConflict},
	ErrPostNotFound:     {Code: ErrPostNotFound, Message: "Post not found.", Status: http.StatusNotFound},
	ErrCommentNotFound:  {Code: ErrCommentNotFound, Message: "Comment not found.", Status: http.StatusNotFound},
	ErrFileNotFound:     {Code: ErrFileNotFound, Message: "File not found.", Status: http.StatusNotFound},
	ErrFileSizeTooLarge: {Code: ErrFileSizeTooLarge, Message: "File is too large (max %d MB).", Status: http.StatusRequestEntityTooLarge},
	ErrFileTypeInvalid:  {Code: ErrFileTypeInvalid, Message: "This file type is not allowed.", Status: http.StatusUnsupportedMediaType},

	ErrUserAlreadyExists:  {Code: ErrUserAlreadyExists, Message: "Username or email is already taken.", Status: http.StatusConflict},
	ErrInvalidCredentials: {Code: ErrInvalidCredentials, Message: "Incorrect username or password.", Status: http.StatusUnauthorized},
	ErrUserNotFound:       {Code: ErrUserNotFound, Message: "Account not found.", Status: http.StatusNotFound},
	ErrUserInactive:       {Code: ErrUserInactive, Message: "This account is disabled.", Status: http.StatusForbidden},
	ErrOldPasswordInvalid: {Code: ErrOldPasswordInvalid, Message: "Current password is incorrect."},
	ErrUnauthorized:       {Code: ErrUnauthorized, Message: "Please sign in to continue.", Status: http.StatusUnauthorized},
	ErrForbidden:          {Code: ErrForbidden, Message: "You do not have permission to do that.", Status: http.StatusForbidden},

	ErrUnknown:           {Code: ErrUnknown, Message: "Something went wrong. Please try again.", Status: http.StatusInternalServerError},
	ErrFileStorageFailed: {Code: ErrFileStorageFailed, Message: "File storage is unavailable. Please try again.", Status: http.StatusBadGateway},
}
