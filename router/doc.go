// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router wires the HTTP routes using Go 1.22+ method+path patterns.

# Routes

	GET    /health
	POST   /wardInfo
	GET    /worlds
	GET    /worlds/{worldID}/districts/{districtID}/wards/{ward}
	GET    /worlds/{worldID}/districts/{districtID}/wards/{ward}/plots/{plot}/history
	DELETE /events/{id}
	DELETE /sweepers/{id}
	GET    /

Every route is wrapped with request logging. Admin routes additionally
check the X-Admin-Key header inside their handlers.
*/
package router
