package render

import "errors"

// ErrRenderFailed indicates the rendering collaborator produced no usable output.
var ErrRenderFailed = errors.New("render failed")
