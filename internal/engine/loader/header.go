package loader

import (
	"regexp"
	"strconv"
	"strings"

	"go.trai.ch/zerr"
	"mvdan.cc/sh/v3/shell"

	"go.trai.ch/modload/internal/core/domain"
)

// The two tagged header lines every interface file must carry. Matching is
// case-sensitive; whitespace around the value is ignored.
var (
	formatVersionRe = regexp.MustCompile(`(?m)^// modload-interface-format-version:[ \t]*([0-9.]+)[ \t]*$`)
	moduleFlagsRe   = regexp.MustCompile(`(?m)^// modload-module-flags:[ \t]*(.*)$`)
)

// ExtractVersionAndFlags scans an interface file for its format-version and
// module-flags header lines, returning the parsed version and the tokenized
// flag list. Both lines may appear anywhere in the buffer; a missing line
// makes the interface malformed.
func ExtractVersionAndFlags(data []byte) (domain.FormatVersion, []string, error) {
	var vers domain.FormatVersion

	versMatch := formatVersionRe.FindSubmatch(data)
	if versMatch == nil {
		return vers, nil, zerr.Wrap(domain.ErrMalformedInterface,
			"failed to extract format version from module interface")
	}

	flagMatch := moduleFlagsRe.FindSubmatch(data)
	if flagMatch == nil {
		return vers, nil, zerr.Wrap(domain.ErrMalformedInterface,
			"failed to extract module flags from module interface")
	}

	vers, err := parseFormatVersion(string(versMatch[1]))
	if err != nil {
		return vers, nil, err
	}

	// GNU-style tokenization: quoted strings and escapes behave as they
	// would on a shell command line.
	args, err := shell.Fields(string(flagMatch[1]), nil)
	if err != nil {
		return vers, nil, zerr.Wrap(domain.ErrMalformedInterface, err.Error())
	}

	return vers, args, nil
}

// parseFormatVersion parses a dotted version tag. Components beyond the
// minor version are tolerated and ignored.
func parseFormatVersion(s string) (domain.FormatVersion, error) {
	var v domain.FormatVersion

	parts := strings.Split(s, ".")
	if len(parts) == 0 || parts[0] == "" {
		return v, zerr.With(zerr.Wrap(domain.ErrMalformedInterface, "empty format version"), "version", s)
	}

	major, err := strconv.Atoi(parts[0])
	if err != nil {
		return v, zerr.With(zerr.Wrap(domain.ErrMalformedInterface, "invalid format version"), "version", s)
	}
	v.Major = major

	if len(parts) > 1 && parts[1] != "" {
		minor, err := strconv.Atoi(parts[1])
		if err != nil {
			return v, zerr.With(zerr.Wrap(domain.ErrMalformedInterface, "invalid format version"), "version", s)
		}
		v.Minor = minor
	}

	return v, nil
}
