package entity

import (
	"fmt"

	"github.com/bikeq/bikeq/pkg/errcode"
	"github.com/gnames/gn"
)

// ExtractionInputError is logged when extraction breaks on unexpected
// input. It never reaches the user: extraction degrades to an empty Bag.
func ExtractionInputError(text string, cause any) error {
	msg := "Cannot extract entities from <em>%s</em>"
	vars := []any{text}
	return &gn.Error{
		Code: errcode.ExtractionInputError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("entity extraction panicked: %v", cause),
	}
}
