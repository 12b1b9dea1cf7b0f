// Package config loads client configuration with Viper.
//
// A YAML file and a .env file are located in the usual places (or passed
// explicitly), then every environment variable is bound under all of its
// dotted-key spellings, so BILLPLZ_API_KEY fills billplz.api_key and
// BILLPLZ_TRANSPORT_TIMEOUT fills billplz.transport.timeout.
//
// # Usage
//
//	var cfg struct {
//	    Billplz billplz.Config `mapstructure:"billplz"`
//	}
//	err := config.LoadConfig("billplz", &cfg, config.WithConfigFile("config.yml"))
package config
