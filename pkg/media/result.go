package media

// Result is the outcome of one best-effort synthesis task. Deferred work
// reports through this value and the caller decides what to log; failures
// never propagate past the consumer boundary.
type Result struct {
	Kind    string // "tts" or "cover"
	Path    string
	Skipped bool // target already existed, remote call short-circuited
	Err     error
}

func (r Result) Ok() bool {
	return r.Err == nil
}
