package config

const (
	EnvPrefix = "storefront"

	AppEnvDev  = "development"
	AppEnvProd = "production"

	EnvAppEnv          = "STOREFRONT_APP_ENV"
	EnvPort            = "STOREFRONT_APP_PORT"
	EnvUpstreamBaseURL = "STOREFRONT_UPSTREAM_BASE_URL"
	EnvRedisURL        = "STOREFRONT_REDIS_URL"
)
