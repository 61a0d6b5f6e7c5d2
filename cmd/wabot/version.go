package main

import (
	"context"
	"fmt"

	"github.com/a-h/wabot"
)

type VersionCommand struct {
}

func (c VersionCommand) Run(ctx context.Context) (err error) {
	fmt.Println(wabot.Version)
	return nil
}
