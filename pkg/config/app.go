package config

var AppVersion = "DEVELOPMENT"

const (
	AppName = "pinmatch"
	LogFile = "pinmatch.log"
	CfgFile = "pinmatch.toml"
)
