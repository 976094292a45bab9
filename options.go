package server

import (
	"context"
	"net/http"
	"strconv"
)

// feedOptions narrow the feed down for a single subscriber.
type feedOptions struct {
	includes, excludes matchGroup
	opkomstOnly        bool
}

func getFeedOptions(ctx context.Context, getArray func(string) []string) (feedOptions, error) {
	var (
		opts feedOptions
		err  error
	)

	opts.opkomstOnly, err = getBool(ctx, getArray, "opkomst")
	if err != nil {
		return feedOptions{}, err
	}

	opts.includes, err = parseMatchers(getArray("inc"))
	if err != nil {
		return feedOptions{}, newErrorWithMessage(
			http.StatusBadRequest,
			"Bad inc argument: %s", err.Error(),
		)
	}

	opts.excludes, err = parseMatchers(getArray("exc"))
	if err != nil {
		return feedOptions{}, newErrorWithMessage(
			http.StatusBadRequest,
			"Bad exc argument: %s", err.Error(),
		)
	}

	return opts, nil
}

func getBool(ctx context.Context, getArray func(string) []string, key string) (bool, error) {
	bs := getArray(key)
	if len(bs) < 1 {
		return false, nil
	}

	b, err := strconv.ParseBool(bs[0])
	if err != nil {
		log(ctx).Warnf("error getting %q parameter: %s", key, err)
		return false, newErrorWithMessage(
			http.StatusBadRequest,
			"Bad argument %q for %q, should be boolean.", bs[0], key,
		)
	}

	return b, nil
}
