package domain

import (
	"net/url"

	"go.trai.ch/zerr"
)

// ParseHost validates the upstream base URL.
func ParseHost(host string) (*url.URL, error) {
	u, err := url.Parse(host)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, Classify(ErrConfigInvalid, zerr.With(zerr.Wrap(ErrInvalidHost, "cannot use upstream host"), "host", host))
	}
	return u, nil
}

// ResolveURL resolves an upstream path against host.
func ResolveURL(host, p string) (string, error) {
	base, err := ParseHost(host)
	if err != nil {
		return "", err
	}
	ref, err := url.Parse(p)
	if err != nil || p == "" {
		return "", zerr.With(zerr.Wrap(ErrInvalidPath, "cannot resolve upstream URL"), "path", p)
	}
	return base.ResolveReference(ref).String(), nil
}
