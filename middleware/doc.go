// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP cross-cutting helpers.

# Request Logging

WithLogging wraps a handler with start/completion log lines, tagging both
with a generated request UUID:

	mux.HandleFunc("POST /wardInfo", middleware.WithLogging(h.IngestWardInfo))

# JSON Helpers

  - JSONResponse: encode a payload with the right headers
  - ErrorResponse: standard error envelope
  - ValidationErrorResponse: 422 envelope naming the violated field
  - ParseJSONBody: decode and close a request body

# Client IP

GetClientIP resolves the real client address through X-Forwarded-For and
X-Real-IP before falling back to RemoteAddr.
*/
package middleware
