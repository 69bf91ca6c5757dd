// Package guard holds the request-size gate applied before any work is done
package guard

import (
	perr "verdian/internal/platform/errors"
)

// MaxMarkdownBytes is the largest accepted markdown body, counted in UTF-8 bytes
const MaxMarkdownBytes = 256 * 1024

// TooLargeMessage is what clients see when the gate trips
const TooLargeMessage = "markdown too large (max 256KB)"

// CheckMarkdown rejects documents over MaxMarkdownBytes with a PayloadTooLarge error
func CheckMarkdown(markdown string) error {
	if len(markdown) > MaxMarkdownBytes {
		return perr.WithField(perr.New(perr.ErrorCodePayloadTooLarge, TooLargeMessage), "markdown")
	}
	return nil
}
