package config

// EnvPrefix scopes every envconfig lookup.
const EnvPrefix = "kinmel"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

const (
	EnvDBDSN  = "KINMEL_DB_DSN"
	EnvDBHost = "KINMEL_DB_HOST"
	EnvDBUser = "KINMEL_DB_USER"
	EnvDBName = "KINMEL_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
