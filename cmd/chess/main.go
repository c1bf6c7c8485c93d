package main

import (
	"flag"
	"log"
	"os"

	"github.com/benbeisheim/chess-backend/internal/console"
	"github.com/benbeisheim/chess-backend/internal/model"
)

var noColor = flag.Bool("nocolor", false, "disable colored board output")

func main() {
	flag.Parse()

	session := console.NewSession(model.NewGame(), os.Stdin, os.Stdout, !*noColor)
	if err := session.Run(); err != nil {
		log.Println(err)
		os.Exit(1)
	}
}
