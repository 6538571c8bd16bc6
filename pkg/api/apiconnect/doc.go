// Package apiconnect binds the splitsaga.v1 services to Connect clients and
// HTTP handlers, using the JSON codec from package api.
package apiconnect
