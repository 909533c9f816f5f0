package config

// Property keys, shared by the source and the sink unless noted
const (
	KeyEndpoint      = "endpoint"
	KeySSLEnabled    = "sslEnabled"
	KeyRetryDelay    = "retryDelay"
	KeyTrustAllCerts = "trustAllCerts"
	KeyKeyStoreType  = "keyStoreType"
	KeyKeyStorePath  = "keyStorePath"
	KeyKeyStorePass  = "keyStorePass"
	KeyInitMessage   = "initMessage"
	KeyCookies       = "cookies"
	// cookie.<id>.name and cookie.<id>.value
	KeyCookiePrefix = "cookie."

	// sink only
	KeyHost           = "host"
	KeyPort           = "port"
	KeyRequestLogging = "requestLogging"
)

const (
	DefaultRetryDelay = 30
	MinRetryDelay     = 1
	DefaultHost       = "0.0.0.0"
	DefaultPort       = 8080
)
