package ioweb

import (
	"fmt"

	"github.com/bikeq/bikeq/pkg/errcode"
	"github.com/gnames/gn"
)

func ServerStartError(addr string, err error) error {
	msg := "Cannot start HTTP server on <em>%s</em>"
	vars := []any{addr}
	return &gn.Error{
		Code: errcode.ServerStartError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("server on %s: %w", addr, err),
	}
}
