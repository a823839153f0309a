// Package config loads and validates gateway configuration.
//
// Configuration is a YAML file. Values in the form ${VAR_NAME} are
// expanded from the environment before parsing, so secrets can live
// outside the file:
//
//	server:
//	  http_addr: ":3000"
//	auth:
//	  jwt_secret: ${JWT_SECRET}
//	  token_lifetime: 1h
//	database:
//	  path: data/gateway.db
//	logging:
//	  level: info
//	  format: text
//	rate_limit:
//	  login_per_minute: 10
//	  login_burst: 5
//
// Token lifetime defaults to one hour; issuer and audience default to
// fixed gateway constants. The JWT secret is deliberately not required
// at load time: an absent secret surfaces per request as a 500-class
// configuration failure at the authentication gate.
package config
