package server

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port        string
	IdleTimeout time.Duration

	AwsRegion string

	MatchRecordsTableName         string
	ApplicationEndpointsTableName string

	JwtSecret string
}

func NewConfig() Config {
	var config Config

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs/server")
	viper.AddConfigPath(".")
	err := viper.ReadInConfig()
	if err != nil {
		panic(fmt.Errorf("fatal error config file: %s", err))
	}
	viper.AutomaticEnv()

	config.Port = viper.GetString("Server.Port")
	idleTimeout, err := time.ParseDuration(viper.GetString("Server.IdleTimeout"))
	if err != nil {
		panic(fmt.Errorf("fatal error config file: %s", err))
	}
	config.IdleTimeout = idleTimeout
	config.AwsRegion = viper.GetString("AWS_REGION")
	config.MatchRecordsTableName = viper.GetString("Tables.MatchRecords")
	config.ApplicationEndpointsTableName = viper.GetString("Tables.ApplicationEndpoints")
	config.JwtSecret = viper.GetString("Auth.JwtSecret")

	return config
}
