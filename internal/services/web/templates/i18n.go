package templates

import (
	"fmt"

	"golang.org/x/text/message"
)

// Localizer prints catalog messages for the page language.
type Localizer interface {
	Sprintf(key message.Reference, args ...any) string
}

// T returns the localized message for key. Without a localizer a string key
// is returned as is, followed by its arguments.
func T(loc Localizer, key message.Reference, args ...any) string {
	keyString, ok := key.(string)
	if ok && keyString == "" {
		return ""
	}
	if loc != nil {
		return loc.Sprintf(key, args...)
	}
	if !ok {
		return ""
	}
	if len(args) > 0 {
		return keyString + " " + fmt.Sprint(args...)
	}
	return keyString
}
