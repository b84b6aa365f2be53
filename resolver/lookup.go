package resolver

// Lookup is the outcome of resolving an artist image: either Found with a
// normalized URL or not found with the reason.
type Lookup struct {
	Found bool
	URL   string
	Err   error
}

// Found reports a resolved image URL.
func Found(url string) Lookup {
	return Lookup{Found: true, URL: url}
}

// NotFound reports that no usable image was resolved.
func NotFound(reason error) Lookup {
	if reason == nil {
		reason = errNoImage
	}
	return Lookup{Err: reason}
}
