package main

import (
	"flag"
	"os"
	"tienlen-server/internal/config"
	"tienlen-server/pkg/token"

	"gopkg.in/yaml.v2"
)

var withSecret = flag.Bool("with-secret", true, "fill jwt.secret with a random value")

func main() {
	flag.Parse()

	cfg := config.DefaultConfig()
	if *withSecret {
		secret, err := token.Generate(64)
		if err != nil {
			panic(err)
		}

		cfg.JWT.Secret = secret
	}

	if err := yaml.NewEncoder(os.Stdout).Encode(cfg); err != nil {
		panic(err)
	}
}
