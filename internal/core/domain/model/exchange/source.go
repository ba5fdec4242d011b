package exchange

import (
	"fmt"
	"strings"

	"freight/internal/pkg/errs"
)

// Source tells where a Rate came from. Anything other than API or CACHE means
// the remote lookup was degraded and the static table was used.
type Source int

const (
	UnknownSource Source = iota
	Cache
	API
	Default
)

func getSourceStrings() map[Source]string {
	return map[Source]string{
		UnknownSource: "UNKNOWN",
		Cache:         "CACHE",
		API:           "API",
		Default:       "DEFAULT",
	}
}

func ParseSource(s string) (Source, error) {
	normalized := strings.ToUpper(strings.TrimSpace(s))
	for src, str := range getSourceStrings() {
		if src != UnknownSource && str == normalized {
			return src, nil
		}
	}
	return UnknownSource, errs.NewValueIsInvalidErrorWithCause(
		"rate source is invalid",
		fmt.Errorf("%q is not one of CACHE, API, DEFAULT", s),
	)
}

func (s Source) Validate() error {
	if s != Cache && s != API && s != Default {
		return errs.NewValueIsInvalidErrorWithCause(
			"rate source is invalid",
			fmt.Errorf("%d is not a valid rate source", s),
		)
	}
	return nil
}

func (s Source) String() string {
	if str, ok := getSourceStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}
