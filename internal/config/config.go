package config

import (
	"os"

	"github.com/go-yaml/yaml"
)

type Config struct {
	Server  Server  `yaml:"server"`
	Pinning Pinning `yaml:"pinning"`
	Ledger  Ledger  `yaml:"ledger"`
	Vision  Vision  `yaml:"vision"`
}

type Server struct {
	Listen        string `yaml:"listen"`
	PostgresDsn   string `yaml:"postgresDsn"`
	RedisAddr     string `yaml:"redisAddr"`
	RedisPassword string `yaml:"redisPassword"`
	RedisDB       int    `yaml:"redisDB"`
	MemcachedAddr string `yaml:"memcachedAddr"`
	EnableTrace   bool   `yaml:"enableTrace"`
	TraceEndpoint string `yaml:"traceEndpoint"`
	MediaDir      string `yaml:"mediaDir"`
}

type Pinning struct {
	Endpoint   string `yaml:"endpoint"`
	GatewayURL string `yaml:"gatewayUrl"`
	JWTToken   string `yaml:"jwtToken"`
}

type Ledger struct {
	Network    string `yaml:"network"` // testnet, mainnet
	AccountID  string `yaml:"accountId"`
	PrivateKey string `yaml:"privateKey"`
	TopicMemo  string `yaml:"topicMemo"`
}

// Configured reports whether ledger credentials are present. Absent
// credentials disable notarization entirely.
func (l Ledger) Configured() bool {
	return l.AccountID != "" && l.PrivateKey != ""
}

type Vision struct {
	CredentialsJSON string `yaml:"credentialsJson"`
}

func (v Vision) Configured() bool {
	return v.CredentialsJSON != ""
}

func Load(path string) (Config, error) {

	file, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer file.Close()

	var config Config
	err = yaml.NewDecoder(file).Decode(&config)
	if err != nil {
		return Config{}, err
	}

	if config.Server.Listen == "" {
		config.Server.Listen = ":8000"
	}
	if config.Server.MediaDir == "" {
		config.Server.MediaDir = "./media"
	}
	if config.Ledger.TopicMemo == "" {
		config.Ledger.TopicMemo = "GreenStamp Proof Records"
	}

	return config, nil
}
